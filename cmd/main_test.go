package main

import "testing"

func TestParseFileID(t *testing.T) {
	tests := []struct {
		name     string
		arg      string
		expected int64
		wantErr  bool
	}{
		{
			name:     "plain integer",
			arg:      "7",
			expected: 7,
		},
		{
			name:     "zero",
			arg:      "0",
			expected: 0,
		},
		{
			name:    "non-integer id",
			arg:     "abc",
			wantErr: true,
		},
		{
			name:    "empty id",
			arg:     "",
			wantErr: true,
		},
		{
			name:    "float id",
			arg:     "1.5",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fileID, err := parseFileID(tt.arg)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.arg)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if fileID != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, fileID)
			}
		})
	}
}
