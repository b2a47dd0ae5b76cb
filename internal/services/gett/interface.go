package gett

import "context"

// ClientAPI defines the methods required to interact with Ge.tt.
// It mirrors the concrete client so it can be mocked in tests.
type ClientAPI interface {
	AccessToken(ctx context.Context) (string, error)
	GetMe(ctx context.Context) (*UserInfo, error)
	ListShares(ctx context.Context, opts *ListOptions) ([]Share, error)
	ListSharesMap(ctx context.Context, opts *ListOptions) (map[string]Share, error)
	GetShare(ctx context.Context, sharename string) (*Share, error)
	GetFile(ctx context.Context, sharename string, fileID int64) (*File, error)
	CreateShare(ctx context.Context, title string) (*Share, error)
	UploadFile(ctx context.Context, req UploadRequest) (*File, error)
	DestroyShare(ctx context.Context, sharename string) error
	DestroyFile(ctx context.Context, sharename string, fileID int64) error
}
