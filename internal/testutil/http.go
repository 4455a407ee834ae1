package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// HTTPResult captures HTTP response details for test assertions.
type HTTPResult struct {
	Code    int
	Error   error
	Headers http.Header
	Body    []byte
}

// ExpectStatus validates the HTTP status code and fails the test if it
// doesn't match.
func ExpectStatus(
	t *testing.T,
	expected int,
	result HTTPResult,
) {
	t.Helper()
	if result.Error != nil {
		t.Fatalf("request error: %v", result.Error)
	}
	if result.Code != expected {
		t.Fatalf("expected status %d, got %d. Body: %s", expected, result.Code, string(result.Body))
	}
}

// ExpectRedirect validates a redirect response and returns the Location
// header.
func ExpectRedirect(
	t *testing.T,
	result HTTPResult,
) string {
	t.Helper()
	if result.Code != http.StatusFound {
		t.Fatalf("expected redirect (302), got %d. Body: %s", result.Code, string(result.Body))
	}
	location := result.Headers.Get("Location")
	if location == "" {
		t.Fatal("expected Location header in redirect")
	}
	return location
}

// Get performs a GET request and optionally decodes the JSON response.
func Get(
	router http.Handler,
	url string,
	response any,
	cookies ...*http.Cookie,
) HTTPResult {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return do(router, req, response)
}

// PostJSON performs a POST with a JSON body.
func PostJSON(
	router http.Handler,
	url string,
	body string,
	response any,
	cookies ...*http.Cookie,
) HTTPResult {
	req := httptest.NewRequest(http.MethodPost, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return do(router, req, response)
}

// PostMultipart performs a POST with a prepared multipart body.
func PostMultipart(
	router http.Handler,
	url string,
	contentType string,
	body io.Reader,
	response any,
	cookies ...*http.Cookie,
) HTTPResult {
	req := httptest.NewRequest(http.MethodPost, url, body)
	req.Header.Set("Content-Type", contentType)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return do(router, req, response)
}

func do(router http.Handler, req *http.Request, response any) HTTPResult {
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if response != nil && res.Body.Len() > 0 {
		if err := json.Unmarshal(res.Body.Bytes(), response); err != nil {
			return HTTPResult{
				Code:    res.Code,
				Error:   fmt.Errorf("failed to decode JSON: %v\n%s", err, res.Body.String()),
				Headers: res.Header(),
				Body:    res.Body.Bytes(),
			}
		}
	}

	return HTTPResult{Code: res.Code, Headers: res.Header(), Body: res.Body.Bytes()}
}

// cookieRecorder captures Set-Cookie headers from handlers that only need
// a ResponseWriter.
type cookieRecorder struct {
	*httptest.ResponseRecorder
}

func newCookieRecorder() *cookieRecorder {
	return &cookieRecorder{ResponseRecorder: httptest.NewRecorder()}
}

func (r *cookieRecorder) cookie(name string) *http.Cookie {
	for _, c := range r.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
