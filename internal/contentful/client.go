// Package contentful reads and writes vendcms content through the Contentful
// delivery and management APIs.
package contentful

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/goliatone/go-vendcms/internal/logging"
	"github.com/goliatone/go-vendcms/internal/runtimeconfig"
	"github.com/goliatone/go-vendcms/pkg/interfaces"
)

const managementMediaType = "application/vnd.contentful.management.v1+json"

// DefaultPageSize is used when EntriesQuery.Limit is zero.
const DefaultPageSize = 100

// EntriesQuery mirrors the getEntries parameters the content layer uses.
type EntriesQuery struct {
	ContentType string
	// Fields holds field filters keyed without the "fields." prefix, e.g.
	// {"slug": "snack-pro"} or {"slug[match]": "snack"}.
	Fields  map[string]string
	IDs     []string
	Include int
	Limit   int
	Skip    int
	Order   string
}

func (q EntriesQuery) values(locale string, defaultInclude int) url.Values {
	v := url.Values{}
	if q.ContentType != "" {
		v.Set("content_type", q.ContentType)
	}
	for key, value := range q.Fields {
		v.Set("fields."+key, value)
	}
	if len(q.IDs) > 0 {
		v.Set("sys.id[in]", strings.Join(q.IDs, ","))
	}
	include := q.Include
	if include == 0 {
		include = defaultInclude
	}
	v.Set("include", strconv.Itoa(include))
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}
	v.Set("limit", strconv.Itoa(limit))
	if q.Skip > 0 {
		v.Set("skip", strconv.Itoa(q.Skip))
	}
	if q.Order != "" {
		v.Set("order", q.Order)
	}
	if locale != "" {
		v.Set("locale", locale)
	}
	return v
}

// Client talks to Contentful. Concurrent identical delivery reads share one
// request.
type Client struct {
	cfg    runtimeconfig.ContentfulConfig
	http   *http.Client
	logger interfaces.Logger
	group  singleflight.Group
}

type ClientOption func(*Client)

func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

func WithLogger(logger interfaces.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func NewClient(cfg runtimeconfig.ContentfulConfig, opts ...ClientOption) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: timeout},
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

func (c *Client) environmentPath(base string) string {
	env := c.cfg.Environment
	if env == "" {
		env = "master"
	}
	return strings.TrimRight(base, "/") + "/spaces/" + url.PathEscape(c.cfg.SpaceID) +
		"/environments/" + url.PathEscape(env)
}

// GetEntries runs a delivery API entries query.
func (c *Client) GetEntries(ctx context.Context, q EntriesQuery) (*EntryCollection, error) {
	if c.cfg.SpaceID == "" || c.cfg.AccessToken == "" {
		return nil, ErrNotConfigured
	}
	endpoint := c.environmentPath(c.cfg.BaseURL) + "/entries?" + q.values(c.cfg.Locale, c.cfg.Include).Encode()

	// The shared request outlives any one caller; each caller still stops
	// waiting on its own ctx. The http.Client timeout bounds it.
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(endpoint, func() (any, error) {
		return c.do(shared, http.MethodGet, endpoint, c.cfg.AccessToken, nil, nil)
	})
	var body []byte
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		body = res.Val.([]byte)
		if res.Shared {
			c.logger.Debug("contentful.request_shared", "content_type", q.ContentType)
		}
	}

	var collection EntryCollection
	if err := json.Unmarshal(body, &collection); err != nil {
		return nil, fmt.Errorf("contentful: decode entries: %w", err)
	}
	return &collection, nil
}

// GetAllEntries pages through every entry of a query.
func (c *Client) GetAllEntries(ctx context.Context, q EntriesQuery) (*EntryCollection, error) {
	out := &EntryCollection{}
	for {
		page, err := c.GetEntries(ctx, q)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, page.Items...)
		out.Includes.Entry = append(out.Includes.Entry, page.Includes.Entry...)
		out.Includes.Asset = append(out.Includes.Asset, page.Includes.Asset...)
		out.Total = page.Total
		q.Skip += len(page.Items)
		if len(page.Items) == 0 || q.Skip >= page.Total {
			break
		}
	}
	out.Limit = len(out.Items)
	return out, nil
}

// ManagementEntry is an entry as the management API returns it, with fields
// keyed by locale.
type ManagementEntry struct {
	Sys    Sys                       `json:"sys"`
	Fields map[string]map[string]any `json:"fields"`
}

// GetEntry loads an entry through the management API.
func (c *Client) GetEntry(ctx context.Context, id string) (*ManagementEntry, error) {
	if err := c.requireManagement(); err != nil {
		return nil, err
	}
	endpoint := c.environmentPath(c.cfg.ManagementURL) + "/entries/" + url.PathEscape(id)
	body, err := c.do(ctx, http.MethodGet, endpoint, c.cfg.ManagementToken, nil, nil)
	if err != nil {
		return nil, err
	}
	var entry ManagementEntry
	if err := json.Unmarshal(body, &entry); err != nil {
		return nil, fmt.Errorf("contentful: decode entry %s: %w", id, err)
	}
	return &entry, nil
}

// UpsertEntry creates or updates entry id. version must be the current
// version for updates and zero for creates. fields are plain values and are
// stored under the configured locale.
func (c *Client) UpsertEntry(ctx context.Context, contentType, id string, version int, fields map[string]any) (*ManagementEntry, error) {
	if err := c.requireManagement(); err != nil {
		return nil, err
	}
	locale := c.cfg.Locale
	if locale == "" {
		locale = "en-US"
	}
	localized := make(map[string]map[string]any, len(fields))
	for key, value := range fields {
		localized[key] = map[string]any{locale: value}
	}
	payload, err := json.Marshal(map[string]any{"fields": localized})
	if err != nil {
		return nil, fmt.Errorf("contentful: encode entry %s: %w", id, err)
	}

	headers := http.Header{}
	headers.Set("Content-Type", managementMediaType)
	headers.Set("X-Contentful-Content-Type", contentType)
	if version > 0 {
		headers.Set("X-Contentful-Version", strconv.Itoa(version))
	}
	endpoint := c.environmentPath(c.cfg.ManagementURL) + "/entries/" + url.PathEscape(id)
	body, err := c.do(ctx, http.MethodPut, endpoint, c.cfg.ManagementToken, headers, payload)
	if err != nil {
		return nil, err
	}
	var entry ManagementEntry
	if err := json.Unmarshal(body, &entry); err != nil {
		return nil, fmt.Errorf("contentful: decode entry %s: %w", id, err)
	}
	return &entry, nil
}

// PublishEntry publishes version of entry id.
func (c *Client) PublishEntry(ctx context.Context, id string, version int) error {
	if err := c.requireManagement(); err != nil {
		return err
	}
	headers := http.Header{}
	headers.Set("X-Contentful-Version", strconv.Itoa(version))
	endpoint := c.environmentPath(c.cfg.ManagementURL) + "/entries/" + url.PathEscape(id) + "/published"
	_, err := c.do(ctx, http.MethodPut, endpoint, c.cfg.ManagementToken, headers, nil)
	return err
}

func (c *Client) requireManagement() error {
	if c.cfg.SpaceID == "" {
		return ErrNotConfigured
	}
	if c.cfg.ManagementToken == "" {
		return ErrManagementDisabled
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, endpoint, token string, headers http.Header, payload []byte) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("contentful: build request: %w", err)
	}
	for key, values := range headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("contentful.request_failed", "method", method, "error", err)
		return nil, fmt.Errorf("contentful: %s: %w", method, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("contentful: read response: %w", err)
	}
	c.logger.Debug("contentful.request",
		"method", method,
		"status", resp.StatusCode,
		"duration_ms", time.Since(started).Milliseconds(),
	)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, RequestID: resp.Header.Get("X-Contentful-Request-Id")}
		var decoded errorBody
		if json.Unmarshal(raw, &decoded) == nil {
			apiErr.ID = decoded.Sys.ID
			apiErr.Message = decoded.Message
			if decoded.RequestID != "" {
				apiErr.RequestID = decoded.RequestID
			}
		}
		return nil, apiErr
	}
	return raw, nil
}
