package gett

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	defaultBaseURL = "https://open.ge.tt/1"
	timeout        = 30 * time.Second
)

var emailPattern = regexp.MustCompile(`\w+@\w+`)

// ValidEmail reports whether s looks like an email address: an "@" with
// word characters on both sides.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Credentials identify a Ge.tt account. All three fields are required.
type Credentials struct {
	APIKey   string
	Email    string
	Password string
}

func (c Credentials) validate() error {
	if c.APIKey == "" {
		return &ValidationError{Param: "apikey", Reason: "is required"}
	}
	if c.Email == "" {
		return &ValidationError{Param: "email", Reason: "is required"}
	}
	if c.Password == "" {
		return &ValidationError{Param: "password", Reason: "is required"}
	}
	if !ValidEmail(c.Email) {
		return &ValidationError{Param: "email", Reason: "must be an email address"}
	}
	return nil
}

// ListOptions narrows a share listing. Skip and Limit are passed through
// to the service only when they are positive.
type ListOptions struct {
	Skip  int
	Limit int
}

// UploadRequest describes a file upload. Filename and Data are required.
// When Sharename is empty a new share is created first (titled with Title
// when given) and the file lands there.
type UploadRequest struct {
	Filename  string
	Data      []byte
	Sharename string
	Title     string
}

// Client represents a Ge.tt API client. The access token is fetched
// lazily on the first authenticated call and cached until it expires.
type Client struct {
	creds      Credentials
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger

	mu    sync.Mutex
	login *LoginResponse
}

var _ ClientAPI = (*Client)(nil)

// Option customizes the client during construction.
type Option func(*Client)

// WithBaseURL overrides the API base URL (useful in tests).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(base, "/")
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger overrides the default logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient validates the credentials and creates a new Ge.tt client.
// No network traffic happens until the first operation is called.
func NewClient(creds Credentials, opts ...Option) (*Client, error) {
	if err := creds.validate(); err != nil {
		return nil, err
	}

	c := &Client{
		creds:   creds,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logrus.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// AccessToken returns a valid access token, logging in or re-logging in
// when the cached one is missing or expired.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.login != nil && time.Now().Unix() < c.login.Expires {
		return c.login.AccessToken, nil
	}

	params := map[string]string{
		"apikey":   c.creds.APIKey,
		"email":    c.creds.Email,
		"password": c.creds.Password,
	}
	var login LoginResponse
	if err := c.doPost(ctx, "/users/login", params, &login, "login"); err != nil {
		return "", err
	}
	c.login = &login
	return login.AccessToken, nil
}

// GetMe returns the account profile for the authenticated user.
func (c *Client) GetMe(ctx context.Context) (*UserInfo, error) {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return nil, err
	}
	var user UserInfo
	if err := c.doGet(ctx, "/users/me?accesstoken="+url.QueryEscape(token), &user, "get user"); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) sharesEndpoint(ctx context.Context, opts *ListOptions) (string, error) {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return "", err
	}
	endpoint := "/shares?accesstoken=" + url.QueryEscape(token)
	if opts != nil {
		if opts.Limit > 0 {
			endpoint += fmt.Sprintf("&limit=%d", opts.Limit)
		}
		if opts.Skip > 0 {
			endpoint += fmt.Sprintf("&skip=%d", opts.Skip)
		}
	}
	return endpoint, nil
}

// ListShares returns the account's shares in the order the service
// reports them.
func (c *Client) ListShares(ctx context.Context, opts *ListOptions) ([]Share, error) {
	endpoint, err := c.sharesEndpoint(ctx, opts)
	if err != nil {
		return nil, err
	}
	var shares []Share
	if err := c.doGet(ctx, endpoint, &shares, "list shares"); err != nil {
		return nil, err
	}
	for i := range shares {
		c.attachShare(&shares[i])
	}
	return shares, nil
}

// ListSharesMap returns the same listing keyed by sharename for direct
// lookup.
func (c *Client) ListSharesMap(ctx context.Context, opts *ListOptions) (map[string]Share, error) {
	shares, err := c.ListShares(ctx, opts)
	if err != nil {
		return nil, err
	}
	rv := make(map[string]Share, len(shares))
	for _, share := range shares {
		rv[share.Sharename] = share
	}
	return rv, nil
}

// GetShare retrieves a single share by name. No authentication is needed
// for reads.
func (c *Client) GetShare(ctx context.Context, sharename string) (*Share, error) {
	if sharename == "" {
		return nil, &ValidationError{Param: "sharename", Reason: "is required"}
	}
	var share Share
	if err := c.doGet(ctx, "/shares/"+url.PathEscape(sharename), &share, "get share"); err != nil {
		return nil, err
	}
	c.attachShare(&share)
	return &share, nil
}

// GetFile retrieves a file's metadata by share name and numeric id.
func (c *Client) GetFile(ctx context.Context, sharename string, fileID int64) (*File, error) {
	if sharename == "" {
		return nil, &ValidationError{Param: "sharename", Reason: "is required"}
	}
	if fileID < 0 {
		return nil, &ValidationError{Param: "fileid", Reason: "must be a non-negative integer"}
	}
	endpoint := fmt.Sprintf("/files/%s/%d", url.PathEscape(sharename), fileID)
	var file File
	if err := c.doGet(ctx, endpoint, &file, "get file"); err != nil {
		return nil, err
	}
	if file.Sharename == "" {
		file.Sharename = sharename
	}
	file.client = c
	return &file, nil
}

// CreateShare creates a new share. An empty title is omitted from the
// request entirely.
func (c *Client) CreateShare(ctx context.Context, title string) (*Share, error) {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return nil, err
	}
	var params map[string]string
	if title != "" {
		params = map[string]string{"title": title}
	}
	var share Share
	endpoint := "/shares/create?accesstoken=" + url.QueryEscape(token)
	if err := c.doPost(ctx, endpoint, params, &share, "create share"); err != nil {
		return nil, err
	}
	c.attachShare(&share)
	return &share, nil
}

// UploadFile runs the three-phase upload: resolve a share, register the
// file under it, then push the bytes. Each phase feeds the next and the
// first failure stops the pipeline. There is no rollback: a failed byte
// transfer leaves an empty file record on the service.
func (c *Client) UploadFile(ctx context.Context, req UploadRequest) (*File, error) {
	if req.Filename == "" {
		return nil, &ValidationError{Param: "filename", Reason: "is required"}
	}
	if req.Data == nil {
		return nil, &ValidationError{Param: "data", Reason: "is required"}
	}

	sharename := req.Sharename
	if sharename == "" {
		share, err := c.CreateShare(ctx, req.Title)
		if err != nil {
			return nil, fmt.Errorf("create share for upload: %w", err)
		}
		sharename = share.Sharename
	}

	token, err := c.AccessToken(ctx)
	if err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("/files/%s/create?accesstoken=%s", url.PathEscape(sharename), url.QueryEscape(token))
	var file File
	if err := c.doPost(ctx, endpoint, map[string]string{"filename": req.Filename}, &file, "create file"); err != nil {
		return nil, err
	}
	if file.Sharename == "" {
		file.Sharename = sharename
	}
	file.client = c

	if err := file.SendData(ctx, req.Data); err != nil {
		return nil, err
	}
	return &file, nil
}

// DestroyShare removes a share and everything in it.
func (c *Client) DestroyShare(ctx context.Context, sharename string) error {
	if sharename == "" {
		return &ValidationError{Param: "sharename", Reason: "is required"}
	}
	token, err := c.AccessToken(ctx)
	if err != nil {
		return err
	}
	endpoint := fmt.Sprintf("/shares/%s/destroy?accesstoken=%s", url.PathEscape(sharename), url.QueryEscape(token))
	return c.doPost(ctx, endpoint, nil, nil, "destroy share")
}

// DestroyFile removes a single file from a share.
func (c *Client) DestroyFile(ctx context.Context, sharename string, fileID int64) error {
	if sharename == "" {
		return &ValidationError{Param: "sharename", Reason: "is required"}
	}
	if fileID < 0 {
		return &ValidationError{Param: "fileid", Reason: "must be a non-negative integer"}
	}
	token, err := c.AccessToken(ctx)
	if err != nil {
		return err
	}
	endpoint := fmt.Sprintf("/files/%s/%d/destroy?accesstoken=%s", url.PathEscape(sharename), fileID, url.QueryEscape(token))
	return c.doPost(ctx, endpoint, nil, nil, "destroy file")
}

func (c *Client) attachShare(share *Share) {
	share.client = c
	for i := range share.Files {
		share.Files[i].client = c
		if share.Files[i].Sharename == "" {
			share.Files[i].Sharename = share.Sharename
		}
	}
}

// doGet executes a GET against the API and decodes the response into out.
func (c *Client) doGet(ctx context.Context, path string, out any, op string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out, op)
}

// doPost executes a POST with a JSON-encoded params body. A nil params
// sends an empty body; a nil out discards the response body.
func (c *Client) doPost(ctx context.Context, path string, params any, out any, op string) error {
	var body io.Reader
	if params != nil {
		buf, err := json.Marshal(params)
		if err != nil {
			return err
		}
		body = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out, op)
}

func (c *Client) do(req *http.Request, out any, op string) error {
	c.logger.Debugf("gett: %s %s", req.Method, req.URL.Path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return &StatusError{Op: op, Status: resp.StatusCode}
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: error decoding response: %w", op, err)
	}
	return nil
}
