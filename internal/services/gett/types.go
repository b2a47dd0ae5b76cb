package gett

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Share is a named container for files on the service, owned by the
// account that created it. Shares are addressed by name, never by a
// numeric id.
type Share struct {
	Sharename string `json:"sharename"`
	Title     string `json:"title"`
	Created   int64  `json:"created"`
	Files     []File `json:"files"`
	GettURL   string `json:"getturl"`

	client *Client
}

// Update changes the share's title on the service.
func (s *Share) Update(ctx context.Context, title string) error {
	if s.client == nil {
		return fmt.Errorf("share %q is not attached to a client", s.Sharename)
	}
	token, err := s.client.AccessToken(ctx)
	if err != nil {
		return err
	}
	endpoint := fmt.Sprintf("/shares/%s/update?accesstoken=%s", url.PathEscape(s.Sharename), url.QueryEscape(token))
	var updated Share
	if err := s.client.doPost(ctx, endpoint, map[string]string{"title": title}, &updated, "update share"); err != nil {
		return err
	}
	s.Title = updated.Title
	return nil
}

// Destroy removes the share and everything in it.
func (s *Share) Destroy(ctx context.Context) error {
	if s.client == nil {
		return fmt.Errorf("share %q is not attached to a client", s.Sharename)
	}
	return s.client.DestroyShare(ctx, s.Sharename)
}

// UploadSpec carries the transfer URLs the service hands out when a file
// is registered. The PUT URL accepts the raw bytes directly.
type UploadSpec struct {
	PutURL  string `json:"puturl"`
	PostURL string `json:"posturl"`
}

// File is a content entry registered under exactly one Share. Its byte
// content is transferred separately from its metadata.
type File struct {
	FileID     int64       `json:"fileid,string"`
	Filename   string      `json:"filename"`
	Sharename  string      `json:"sharename"`
	Size       int64       `json:"size"`
	Downloads  int64       `json:"downloads"`
	ReadyState string      `json:"readystate"`
	Created    int64       `json:"created"`
	GettURL    string      `json:"getturl"`
	Upload     *UploadSpec `json:"upload,omitempty"`

	client *Client
}

// IsLive returns true once the service has received the file's content.
func (f *File) IsLive() bool {
	return f.ReadyState == "uploaded"
}

// LiveURL returns the public page for the file, building it from the
// share name and id when the service did not include one.
func (f *File) LiveURL() string {
	if f.GettURL != "" {
		return f.GettURL
	}
	return fmt.Sprintf("http://ge.tt/%s/v/%d", url.PathEscape(f.Sharename), f.FileID)
}

// SendData pushes the file's bytes to the service. The PUT URL handed out
// at registration time is preferred; when it is absent the blob endpoint
// for the file's share and id is used instead.
func (f *File) SendData(ctx context.Context, data []byte) error {
	if f.client == nil {
		return fmt.Errorf("file %q is not attached to a client", f.Filename)
	}
	target := ""
	if f.Upload != nil {
		target = f.Upload.PutURL
	}
	if target == "" {
		token, err := f.client.AccessToken(ctx)
		if err != nil {
			return err
		}
		target = fmt.Sprintf("%s/files/%s/%d/blob?accesstoken=%s",
			f.client.baseURL, url.PathEscape(f.Sharename), f.FileID, url.QueryEscape(token))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, bytes.NewReader(data))
	if err != nil {
		return err
	}
	resp, err := f.client.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Op: "send data", Status: resp.StatusCode}
	}
	io.Copy(io.Discard, resp.Body)
	f.ReadyState = "uploaded"
	return nil
}

// Content fetches the file's bytes from the blob endpoint.
func (f *File) Content(ctx context.Context) ([]byte, error) {
	if f.client == nil {
		return nil, fmt.Errorf("file %q is not attached to a client", f.Filename)
	}
	target := fmt.Sprintf("%s/files/%s/%d/blob", f.client.baseURL, url.PathEscape(f.Sharename), f.FileID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Op: "download file", Status: resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}

// Destroy removes the file from its share.
func (f *File) Destroy(ctx context.Context) error {
	if f.client == nil {
		return fmt.Errorf("file %q is not attached to a client", f.Filename)
	}
	return f.client.DestroyFile(ctx, f.Sharename, f.FileID)
}

// StorageInfo reports the account's storage usage in bytes.
type StorageInfo struct {
	Used  int64 `json:"used"`
	Limit int64 `json:"limit"`
	Extra int64 `json:"extra"`
}

// UserInfo represents the account profile returned by the service.
type UserInfo struct {
	UserID   string      `json:"userid"`
	FullName string      `json:"fullname"`
	Email    string      `json:"email"`
	Storage  StorageInfo `json:"storage"`
}

// LoginResponse represents the API response for a login call. Expires is
// a unix timestamp after which the access token is no longer valid.
type LoginResponse struct {
	AccessToken  string   `json:"accesstoken"`
	RefreshToken string   `json:"refreshtoken"`
	Expires      int64    `json:"expires"`
	User         UserInfo `json:"user"`
}
