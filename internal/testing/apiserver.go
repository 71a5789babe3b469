package testing

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/teranos/zappy/internal/httpclient"
)

// RecordedRequest is what a fake zappy.sh server saw for one call
type RecordedRequest struct {
	Method        string
	Path          string
	Authorization string
	ContentType   string
	Body          []byte
}

// APIServer is a fake zappy.sh service that records every request it receives.
// Automatically closed via t.Cleanup().
type APIServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []RecordedRequest
}

// NewAPIServer answers every request with status and the JSON body
func NewAPIServer(t *testing.T, status int, body string) *APIServer {
	t.Helper()
	return NewAPIServerFunc(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	})
}

// NewAPIServerFunc records each request, then hands it to handler
func NewAPIServerFunc(t *testing.T, handler http.HandlerFunc) *APIServer {
	t.Helper()

	s := &APIServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("fake API server failed to read body: %v", err)
		}

		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Method:        r.Method,
			Path:          r.URL.EscapedPath(),
			Authorization: r.Header.Get("Authorization"),
			ContentType:   r.Header.Get("Content-Type"),
			Body:          body,
		})
		s.mu.Unlock()

		handler(w, r)
	}))

	t.Cleanup(s.Close)
	return s
}

// Hits returns how many requests reached the server
func (s *APIServer) Hits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// Requests returns a copy of every recorded request, oldest first
func (s *APIServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest(nil), s.requests...)
}

// HTTPClient returns an httpclient.Client wired to this server
func (s *APIServer) HTTPClient() *httpclient.Client {
	return httpclient.WrapClient(s.Client())
}
