package app

import (
	"context"
	"testing"

	"github.com/v1k45/gogett/internal/config"
	"github.com/v1k45/gogett/internal/services/gett"
)

type mockGettClient struct {
	tokenCalls int
}

func (m *mockGettClient) AccessToken(context.Context) (string, error) {
	m.tokenCalls++
	return "mock-token", nil
}
func (m *mockGettClient) GetMe(context.Context) (*gett.UserInfo, error) {
	return &gett.UserInfo{Email: "user@example.com"}, nil
}
func (m *mockGettClient) ListShares(context.Context, *gett.ListOptions) ([]gett.Share, error) {
	return []gett.Share{}, nil
}
func (m *mockGettClient) ListSharesMap(context.Context, *gett.ListOptions) (map[string]gett.Share, error) {
	return map[string]gett.Share{}, nil
}
func (m *mockGettClient) GetShare(ctx context.Context, sharename string) (*gett.Share, error) {
	return &gett.Share{Sharename: sharename}, nil
}
func (m *mockGettClient) GetFile(ctx context.Context, sharename string, fileID int64) (*gett.File, error) {
	return &gett.File{FileID: fileID, Sharename: sharename}, nil
}
func (m *mockGettClient) CreateShare(ctx context.Context, title string) (*gett.Share, error) {
	return &gett.Share{Sharename: "mock", Title: title}, nil
}
func (m *mockGettClient) UploadFile(ctx context.Context, req gett.UploadRequest) (*gett.File, error) {
	return &gett.File{Filename: req.Filename, Sharename: "mock"}, nil
}
func (m *mockGettClient) DestroyShare(context.Context, string) error { return nil }
func (m *mockGettClient) DestroyFile(context.Context, string, int64) error { return nil }

func baseConfig() *config.Config {
	return &config.Config{
		Loglevel: "info",
		Gett: config.GettConfig{
			APIKey:   "abc",
			Email:    "user@example.com",
			Password: "secret",
		},
	}
}

func TestNewContainerDefaults(t *testing.T) {
	cfg := baseConfig()
	mock := &mockGettClient{}

	container, err := NewContainer(cfg, WithGettClient(mock))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if container.Logger == nil {
		t.Fatal("expected logger to be initialized")
	}
	if container.Gett != mock {
		t.Error("expected Gett client to be overridden with mock")
	}
	if mock.tokenCalls != 1 {
		t.Errorf("expected 1 verification call, got %d", mock.tokenCalls)
	}
}

func TestNewContainerSkipsVerification(t *testing.T) {
	cfg := baseConfig()
	mock := &mockGettClient{}

	_, err := NewContainer(cfg, WithGettClient(mock), WithLoginVerification(false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.tokenCalls != 0 {
		t.Errorf("expected no verification calls, got %d", mock.tokenCalls)
	}
}

func TestNewContainerNilConfig(t *testing.T) {
	_, err := NewContainer(nil)
	if err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestNewContainerBadCredentials(t *testing.T) {
	cfg := baseConfig()
	cfg.Gett.Password = ""

	_, err := NewContainer(cfg, WithLoginVerification(false))
	if err == nil {
		t.Fatal("expected error for missing password")
	}
}

func TestContainerOptionValidation(t *testing.T) {
	cfg := baseConfig()

	if _, err := NewContainer(cfg, WithLogger(nil)); err == nil {
		t.Error("expected error for nil logger")
	}
	if _, err := NewContainer(cfg, WithGettClient(nil)); err == nil {
		t.Error("expected error for nil client")
	}
}

func TestContainerOverrides(t *testing.T) {
	cfg := baseConfig()
	mock := &mockGettClient{}
	customLogger := buildDefaultLogger("debug")

	container, err := NewContainer(
		cfg,
		WithLogger(customLogger),
		WithGettClient(mock),
		WithLoginVerification(false),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if container.Logger != customLogger {
		t.Error("expected custom logger to be used")
	}
	if container.VerifyLogin {
		t.Error("expected login verification to be disabled")
	}
}

func TestBuildDefaultLoggerFallback(t *testing.T) {
	logger := buildDefaultLogger("not-a-level")
	if logger == nil {
		t.Fatal("expected non-nil logger")
	}
}
