package e2e

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"
	"time"
)

// TestContext drives a running portal like a browser: it keeps cookies and
// does not follow redirects so scenarios can assert on them.
type TestContext struct {
	BaseURL    string
	client     *http.Client
	lastStatus int
	lastBody   []byte
	lastHeader http.Header
}

// NewTestContext targets BASE_URL, defaulting to a local server.
func NewTestContext() (*TestContext, error) {
	base := os.Getenv("BASE_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &TestContext{
		BaseURL: strings.TrimRight(base, "/"),
		client: &http.Client{
			Jar:     jar,
			Timeout: 15 * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}, nil
}

// Reset forgets cookies and the last response between scenarios.
func (tc *TestContext) Reset() error {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return err
	}
	tc.client.Jar = jar
	tc.lastStatus = 0
	tc.lastBody = nil
	tc.lastHeader = nil
	return nil
}

func (tc *TestContext) GET(path string) error {
	req, err := http.NewRequest(http.MethodGet, tc.BaseURL+path, nil)
	if err != nil {
		return err
	}
	return tc.send(req)
}

func (tc *TestContext) POSTForm(path string, form url.Values) error {
	req, err := http.NewRequest(http.MethodPost, tc.BaseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return tc.send(req)
}

func (tc *TestContext) send(req *http.Request) error {
	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	tc.lastStatus = resp.StatusCode
	tc.lastBody = body
	tc.lastHeader = resp.Header
	return nil
}

func (tc *TestContext) GetLastStatusCode() int { return tc.lastStatus }

func (tc *TestContext) GetLastBody() string { return string(tc.lastBody) }

func (tc *TestContext) GetLastHeader(name string) string { return tc.lastHeader.Get(name) }

// GetResponseField reads a dotted path such as "petition.folio" from the last
// JSON response.
func (tc *TestContext) GetResponseField(field string) (interface{}, error) {
	var doc interface{}
	if err := json.Unmarshal(tc.lastBody, &doc); err != nil {
		return nil, fmt.Errorf("response is not JSON: %w", err)
	}
	for _, part := range strings.Split(field, ".") {
		obj, ok := doc.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("field %q: %q is not an object", field, part)
		}
		doc, ok = obj[part]
		if !ok {
			return nil, fmt.Errorf("field %q not found in response", field)
		}
	}
	return doc, nil
}
