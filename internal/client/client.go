// Package client is a typed HTTP client for the site API.
//
// Every call is checked against the contract registry twice: the outgoing
// input runs through the route's own parser before anything is sent, and the
// response must carry a declared status and a body that passes that status's
// validator. GET responses are cached in an injectable Cache and each
// mutation invalidates the paths it can affect.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"breeder-site-backend/internal/contract"
	"breeder-site-backend/internal/models"
	"breeder-site-backend/internal/schema"
)

const (
	// DefaultTimeout bounds a request made by the default HTTP client
	DefaultTimeout = 30 * time.Second

	maxResponseBytes = 8 << 20
)

// Client calls the site API
type Client struct {
	baseURL string
	http    *http.Client
	cache   Cache

	mu    sync.RWMutex
	token string
}

// New creates a client for baseURL. A nil httpClient gets a default one with a
// cookie jar, so session cookies set by login and register are kept. A nil
// cache disables caching.
func New(baseURL string, httpClient *http.Client, cache Cache) *Client {
	if httpClient == nil {
		jar, _ := cookiejar.New(nil)
		httpClient = &http.Client{Jar: jar, Timeout: DefaultTimeout}
	}
	if cache == nil {
		cache = noCache{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		cache:   cache,
	}
}

// SetToken sends token as a bearer credential on every request. An empty
// token removes it.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
	c.cache.Invalidate("")
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// call is one request against a contract route
type call[In any] struct {
	route  contract.Route[In]
	params map[string]string
	query  url.Values
	// body is encoded as JSON
	body any
	// raw is sent as is with contentType when body is nil
	raw         []byte
	contentType string
	// invalidates lists cache prefixes dropped after a successful response
	invalidates []string
}

func send[In any](ctx context.Context, c *Client, k call[In], out any) error {
	path := contract.WithQuery(k.route.URL(k.params), k.query)

	payload, contentType := k.raw, k.contentType
	if k.body != nil {
		var err error
		payload, err = json.Marshal(k.body)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", k.route.Name, err)
		}
		contentType = "application/json"
	}

	if k.route.Input != nil {
		if _, err := k.route.Parse(payload, k.query); err != nil {
			return err
		}
	}

	cacheable := k.route.Method == http.MethodGet
	if cacheable {
		if data, ok := c.cache.Get(path); ok {
			return decode(data, out)
		}
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, k.route.Method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", k.route.Name, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", k.route.Name, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", k.route.Name, err)
	}

	// server failures are outside every route's declared responses
	if resp.StatusCode >= http.StatusInternalServerError && !k.route.Declares(resp.StatusCode) {
		return errorFromBody(resp.StatusCode, data)
	}
	if err := k.route.Check(resp.StatusCode, data); err != nil {
		return &ContractError{Route: k.route.Name, Status: resp.StatusCode, Err: err}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return errorFromBody(resp.StatusCode, data)
	}

	for _, prefix := range k.invalidates {
		c.cache.Invalidate(prefix)
	}
	if cacheable {
		c.cache.Set(path, data)
	}
	return decode(data, out)
}

func errorFromBody(status int, data []byte) error {
	var body contract.ValidationBody
	if err := json.Unmarshal(data, &body); err != nil || body.Message == "" {
		body.Message = http.StatusText(status)
	}
	return &APIError{Status: status, Message: body.Message, Field: body.Field}
}

func decode(data []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func idParam(id string) map[string]string {
	return map[string]string{"id": id}
}

const (
	puppiesPrefix   = "/api/puppies"
	reviewsPrefix   = "/api/reviews"
	inquiriesPrefix = "/api/inquiries"
	settingsPrefix  = "/api/settings"
)

// ListPuppies returns puppies newest first
func (c *Client) ListPuppies(ctx context.Context, filter models.PuppyFilter) ([]models.Puppy, error) {
	var out []models.Puppy
	err := send(ctx, c, call[models.PuppyFilter]{
		route: contract.API.Puppies.List,
		query: schema.PuppyFilterQuery(filter),
	}, &out)
	return out, err
}

// GetPuppy fetches one puppy
func (c *Client) GetPuppy(ctx context.Context, id string) (*models.Puppy, error) {
	var out models.Puppy
	if err := send(ctx, c, call[contract.NoInput]{
		route:  contract.API.Puppies.Get,
		params: idParam(id),
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePuppy adds a puppy. Requires an admin session.
func (c *Client) CreatePuppy(ctx context.Context, in schema.PuppyInput) (*models.Puppy, error) {
	var out models.Puppy
	if err := send(ctx, c, call[schema.PuppyInput]{
		route:       contract.API.Puppies.Create,
		body:        in,
		invalidates: []string{puppiesPrefix},
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePuppy applies a partial update. Requires an admin session.
func (c *Client) UpdatePuppy(ctx context.Context, id string, patch schema.PuppyPatch) (*models.Puppy, error) {
	var out models.Puppy
	if err := send(ctx, c, call[schema.PuppyPatch]{
		route:       contract.API.Puppies.Update,
		params:      idParam(id),
		body:        puppyPatchBody(patch),
		invalidates: []string{puppiesPrefix},
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePuppy removes a puppy. Inquiries about it are kept, so their cache goes too.
func (c *Client) DeletePuppy(ctx context.Context, id string) error {
	return send(ctx, c, call[contract.NoInput]{
		route:       contract.API.Puppies.Delete,
		params:      idParam(id),
		invalidates: []string{puppiesPrefix, inquiriesPrefix},
	}, nil)
}

// ListReviews returns reviews newest first
func (c *Client) ListReviews(ctx context.Context, filter models.ReviewFilter) ([]models.Review, error) {
	var out []models.Review
	err := send(ctx, c, call[models.ReviewFilter]{
		route: contract.API.Reviews.List,
		query: schema.ReviewFilterQuery(filter),
	}, &out)
	return out, err
}

// CreateReview adds a review. Requires an admin session.
func (c *Client) CreateReview(ctx context.Context, in schema.ReviewInput) (*models.Review, error) {
	var out models.Review
	if err := send(ctx, c, call[schema.ReviewInput]{
		route:       contract.API.Reviews.Create,
		body:        in,
		invalidates: []string{reviewsPrefix},
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateReview applies a partial update. Requires an admin session.
func (c *Client) UpdateReview(ctx context.Context, id string, patch schema.ReviewPatch) (*models.Review, error) {
	var out models.Review
	if err := send(ctx, c, call[schema.ReviewPatch]{
		route:       contract.API.Reviews.Update,
		params:      idParam(id),
		body:        reviewPatchBody(patch),
		invalidates: []string{reviewsPrefix},
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteReview removes a review. Requires an admin session.
func (c *Client) DeleteReview(ctx context.Context, id string) error {
	return send(ctx, c, call[contract.NoInput]{
		route:       contract.API.Reviews.Delete,
		params:      idParam(id),
		invalidates: []string{reviewsPrefix},
	}, nil)
}

// ListInquiries returns inquiries newest first. Requires an admin session.
func (c *Client) ListInquiries(ctx context.Context) ([]models.Inquiry, error) {
	var out []models.Inquiry
	err := send(ctx, c, call[contract.NoInput]{route: contract.API.Inquiries.List}, &out)
	return out, err
}

// CreateInquiry submits a contact request
func (c *Client) CreateInquiry(ctx context.Context, in schema.InquiryInput) (*models.Inquiry, error) {
	var out models.Inquiry
	if err := send(ctx, c, call[schema.InquiryInput]{
		route:       contract.API.Inquiries.Create,
		body:        in,
		invalidates: []string{inquiriesPrefix},
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListSettings returns every site setting
func (c *Client) ListSettings(ctx context.Context) ([]models.SiteSetting, error) {
	var out []models.SiteSetting
	err := send(ctx, c, call[contract.NoInput]{route: contract.API.Settings.List}, &out)
	return out, err
}

// GetSetting fetches one setting by key
func (c *Client) GetSetting(ctx context.Context, key string) (*models.SiteSetting, error) {
	var out models.SiteSetting
	if err := send(ctx, c, call[contract.NoInput]{
		route:  contract.API.Settings.Get,
		params: map[string]string{"key": key},
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpsertSetting writes one setting. Requires an admin session.
func (c *Client) UpsertSetting(ctx context.Context, in schema.SettingInput) (*models.SiteSetting, error) {
	var out models.SiteSetting
	if err := send(ctx, c, call[schema.SettingInput]{
		route:       contract.API.Settings.Update,
		body:        in,
		invalidates: []string{settingsPrefix},
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the signed in user, or nil for an anonymous session
func (c *Client) Me(ctx context.Context) (*models.UserSummary, error) {
	var out *models.UserSummary
	if err := send(ctx, c, call[contract.NoInput]{route: contract.API.Auth.Me}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Login starts a cookie session
func (c *Client) Login(ctx context.Context, in schema.LoginInput) (*models.UserSummary, error) {
	var out models.UserSummary
	if err := send(ctx, c, call[schema.LoginInput]{
		route:       contract.API.Auth.Login,
		body:        in,
		invalidates: []string{""},
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account and starts a cookie session
func (c *Client) Register(ctx context.Context, in schema.RegisterInput) (*models.UserSummary, error) {
	var out models.UserSummary
	if err := send(ctx, c, call[schema.RegisterInput]{
		route:       contract.API.Auth.Register,
		body:        in,
		invalidates: []string{""},
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout ends the cookie session and drops any bearer token
func (c *Client) Logout(ctx context.Context) error {
	if err := send(ctx, c, call[contract.NoInput]{route: contract.API.Auth.Logout}, nil); err != nil {
		return err
	}
	c.SetToken("")
	return nil
}

// UploadImage stores an image and returns its public URL. Requires an admin session.
func (c *Client) UploadImage(ctx context.Context, filename string, data []byte) (*models.UploadResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}

	var out models.UploadResult
	if err := send(ctx, c, call[contract.NoInput]{
		route:       contract.API.Uploads.Create,
		raw:         buf.Bytes(),
		contentType: mw.FormDataContentType(),
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// puppyPatchBody encodes only the fields a patch sets
func puppyPatchBody(p schema.PuppyPatch) map[string]any {
	body := map[string]any{}
	setIf(body, "name", p.Name)
	setIf(body, "breed", p.Breed)
	setIf(body, "sex", p.Sex)
	setIf(body, "age", p.Age)
	setIf(body, "temperament", p.Temperament)
	setIf(body, "price", p.Price)
	setIf(body, "depositAmount", p.DepositAmount)
	if p.ImageURL.Set {
		body["imageUrl"] = p.ImageURL.Value
	}
	setIf(body, "shortDescription", p.ShortDescription)
	setIf(body, "description", p.Description)
	setIf(body, "isAvailable", p.IsAvailable)
	return body
}

func reviewPatchBody(p schema.ReviewPatch) map[string]any {
	body := map[string]any{}
	setIf(body, "reviewerName", p.ReviewerName)
	setIf(body, "rating", p.Rating)
	setIf(body, "testimonialText", p.TestimonialText)
	setIf(body, "isFeatured", p.IsFeatured)
	return body
}

func setIf[T any](body map[string]any, key string, v *T) {
	if v != nil {
		body[key] = *v
	}
}
