package adt

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/singleflight"
)

const csrfTokenHeader = "X-CSRF-Token"

// Options configures the HTTP client. URL, User and Password are mandatory;
// Client and Language are the optional sap-client/sap-language qualifiers
// appended to every request.
type Options struct {
	URL      string
	User     string
	Password string
	Client   string
	Language string
}

// HTTPClient implements Client against an ADT REST endpoint. A single
// instance is shared by all handler groups and all in-flight invocations;
// the authenticated-session state (CSRF token plus cookies) lives here.
type HTTPClient struct {
	http   *http.Client
	opts   Options
	logger *slog.Logger

	login singleflight.Group

	mu            sync.Mutex
	csrfToken     string
	authenticated bool
}

// NewHTTPClient creates a client with its own cookie jar. The jar carries
// the backend's session cookies between calls.
func NewHTTPClient(httpClient *http.Client, opts Options, logger *slog.Logger) (*HTTPClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	// Copy so the jar does not leak into the caller's client.
	c := *httpClient
	c.Jar = jar
	return &HTTPClient{
		http:   &c,
		opts:   opts,
		logger: logger.With("component", "adt_client"),
	}, nil
}

// EnsureSession establishes an authenticated session if none exists.
// Concurrent callers share one in-flight login via singleflight, so a burst
// of invocations against a fresh client performs exactly one login round
// trip.
func (c *HTTPClient) EnsureSession(ctx context.Context) error {
	c.mu.Lock()
	ok := c.authenticated
	c.mu.Unlock()
	if ok {
		return nil
	}

	_, err, _ := c.login.Do("login", func() (any, error) {
		return nil, c.doLogin(ctx)
	})
	return err
}

func (c *HTTPClient) doLogin(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/sap/bc/adt/discovery", nil), nil)
	if err != nil {
		return fmt.Errorf("failed to build login request: %w", err)
	}
	req.SetBasicAuth(c.opts.User, c.opts.Password)
	req.Header.Set(csrfTokenHeader, "fetch")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.parseError(resp)
	}

	token := resp.Header.Get(csrfTokenHeader)
	c.mu.Lock()
	c.csrfToken = token
	c.authenticated = true
	c.mu.Unlock()

	c.logger.Info("Session established.", slog.String("url", c.opts.URL))
	return nil
}

// DropSession terminates the backend session and resets local state, so the
// next EnsureSession performs a fresh login.
func (c *HTTPClient) DropSession(ctx context.Context) (any, error) {
	result, err := c.get(ctx, "/sap/bc/adt/logout", nil)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.authenticated = false
	c.csrfToken = ""
	c.mu.Unlock()
	c.logger.Info("Session dropped.")
	return result, nil
}

func (c *HTTPClient) ObjectStructure(ctx context.Context, objectURL, version string) (any, error) {
	q := url.Values{}
	if version != "" {
		q.Set("version", version)
	}
	return c.get(ctx, objectURL, q)
}

func (c *HTTPClient) ObjectSource(ctx context.Context, sourceURL, version string) (any, error) {
	q := url.Values{}
	if version != "" {
		q.Set("version", version)
	}
	return c.get(ctx, sourceURL, q)
}

func (c *HTTPClient) SearchObject(ctx context.Context, query, objectType string, maxResults int) (any, error) {
	q := url.Values{}
	q.Set("operation", "quickSearch")
	q.Set("query", query)
	if objectType != "" {
		q.Set("objectType", objectType)
	}
	if maxResults > 0 {
		q.Set("maxResults", strconv.Itoa(maxResults))
	}
	return c.get(ctx, "/sap/bc/adt/repository/informationsystem/search", q)
}

func (c *HTTPClient) Revisions(ctx context.Context, objectURL, include string) (any, error) {
	q := url.Values{}
	q.Set("objectUrl", objectURL)
	if include != "" {
		q.Set("include", include)
	}
	return c.get(ctx, "/sap/bc/adt/vcs/revisions", q)
}

func (c *HTTPClient) ClassComponents(ctx context.Context, classURL string) (any, error) {
	return c.get(ctx, strings.TrimSuffix(classURL, "/")+"/objectstructure", nil)
}

func (c *HTTPClient) ClassIncludes(ctx context.Context, className string) (any, error) {
	return c.get(ctx, "/sap/bc/adt/oo/classes/"+url.PathEscape(strings.ToLower(className))+"/includes", nil)
}

func (c *HTTPClient) TypeHierarchy(ctx context.Context, objectURL string, line, column int, superTypes bool) (any, error) {
	q := url.Values{}
	q.Set("uri", fragmentURI(objectURL, line, column))
	if superTypes {
		q.Set("type", "superTypes")
	} else {
		q.Set("type", "subTypes")
	}
	return c.post(ctx, "/sap/bc/adt/abapsource/typehierarchy", q, "", "")
}

func (c *HTTPClient) UsageReferences(ctx context.Context, objectURL string, line, column int) (any, error) {
	q := url.Values{}
	q.Set("uri", fragmentURI(objectURL, line, column))
	return c.post(ctx, "/sap/bc/adt/repository/informationsystem/usageReferences", q, "", "")
}

func (c *HTTPClient) FindDefinition(ctx context.Context, objectURL string, line, startColumn, endColumn int, implementation bool) (any, error) {
	q := url.Values{}
	q.Set("uri", objectURL)
	q.Set("line", strconv.Itoa(line))
	q.Set("startColumn", strconv.Itoa(startColumn))
	q.Set("endColumn", strconv.Itoa(endColumn))
	if implementation {
		q.Set("implementation", "true")
	}
	return c.get(ctx, "/sap/bc/adt/navigation/target", q)
}

func (c *HTTPClient) SyntaxCheck(ctx context.Context, objectURL, code string) (any, error) {
	q := url.Values{}
	q.Set("reporters", "abapCheckRun")
	q.Set("uri", objectURL)
	return c.post(ctx, "/sap/bc/adt/checkruns", q, code, "text/plain")
}

func (c *HTTPClient) TableContents(ctx context.Context, tableName string, rowNumber int) (any, error) {
	q := url.Values{}
	q.Set("ddicEntityName", tableName)
	q.Set("rowNumber", strconv.Itoa(rowNumber))
	return c.post(ctx, "/sap/bc/adt/datapreview/ddic", q, "", "")
}

func (c *HTTPClient) RunQuery(ctx context.Context, sqlQuery string, rowNumber int) (any, error) {
	q := url.Values{}
	q.Set("rowNumber", strconv.Itoa(rowNumber))
	return c.post(ctx, "/sap/bc/adt/datapreview/freestyle", q, sqlQuery, "text/plain")
}

func (c *HTTPClient) DDICElement(ctx context.Context, path string, targetForAssociation bool) (any, error) {
	q := url.Values{}
	q.Set("path", path)
	if targetForAssociation {
		q.Set("getTargetForAssociation", "true")
	}
	return c.get(ctx, "/sap/bc/adt/ddic/elementinfo", q)
}

func (c *HTTPClient) FeatureDetails(ctx context.Context, title string) (any, error) {
	q := url.Values{}
	q.Set("title", title)
	return c.get(ctx, "/sap/bc/adt/discovery", q)
}

func (c *HTTPClient) Discovery(ctx context.Context) (any, error) {
	return c.get(ctx, "/sap/bc/adt/discovery", nil)
}

// fragmentURI renders the "uri#start=line,column" form ADT uses for
// position-anchored operations.
func fragmentURI(objectURL string, line, column int) string {
	return fmt.Sprintf("%s#start=%d,%d", objectURL, line, column)
}

func (c *HTTPClient) get(ctx context.Context, path string, query url.Values) (any, error) {
	return c.do(ctx, http.MethodGet, path, query, "", "")
}

func (c *HTTPClient) post(ctx context.Context, path string, query url.Values, body, contentType string) (any, error) {
	return c.do(ctx, http.MethodPost, path, query, body, contentType)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body, contentType string) (any, error) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	req.SetBasicAuth(c.opts.User, c.opts.Password)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if method != http.MethodGet {
		c.mu.Lock()
		token := c.csrfToken
		c.mu.Unlock()
		req.Header.Set(csrfTokenHeader, token)
	}

	c.logger.Debug("Backend request.", slog.String("method", method), slog.String("path", path))
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.parseError(resp)
	}
	return decodeBody(resp)
}

// endpoint joins the base URL, path, query, and configured client/locale
// qualifiers.
func (c *HTTPClient) endpoint(path string, query url.Values) string {
	q := url.Values{}
	for k, vs := range query {
		q[k] = vs
	}
	if c.opts.Client != "" {
		q.Set("sap-client", c.opts.Client)
	}
	if c.opts.Language != "" {
		q.Set("sap-language", c.opts.Language)
	}
	u := strings.TrimSuffix(c.opts.URL, "/") + path
	if encoded := q.Encode(); encoded != "" {
		u += "?" + encoded
	}
	return u
}

// decodeBody decodes a JSON response with UseNumber so oversized integers
// survive as json.Number instead of losing precision through float64.
// Non-JSON bodies (ADT serves plain text for source reads) come back as a
// raw string.
func decodeBody(resp *http.Response) (any, error) {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(data) == 0 {
		return map[string]any{}, nil
	}
	if !strings.Contains(resp.Header.Get("Content-Type"), "json") {
		return string(data), nil
	}
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}
	return v, nil
}

// parseError builds an *Error from a failed response. JSON error bodies get
// their nested message plucked into Details; anything else keeps the status
// text as the message.
func (c *HTTPClient) parseError(resp *http.Response) error {
	adtErr := &Error{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("backend request failed: %s", resp.Status),
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(data) == 0 {
		return adtErr
	}
	if gjson.ValidBytes(data) {
		details := map[string]any{}
		for _, key := range []string{"message", "error.message", "properties.message"} {
			if m := gjson.GetBytes(data, key); m.Exists() && m.String() != "" {
				details["message"] = m.String()
				break
			}
		}
		if code := gjson.GetBytes(data, "error.code"); code.Exists() {
			details["code"] = code.String()
		}
		if len(details) > 0 {
			adtErr.Details = details
		}
	}

	c.logger.Warn("Backend returned an error.",
		slog.Int("status", resp.StatusCode),
		slog.String("message", adtErr.DetailMessage()))
	return adtErr
}
