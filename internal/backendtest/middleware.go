package backendtest

import (
	"bytes"
	"io"
	"net/http"
	"strings"
)

// record stores every request before routing.
func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, Recorded{
			Method: r.Method,
			Path:   strings.TrimPrefix(r.URL.EscapedPath(), "/api"),
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   body,
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

// injectFailures answers with queued HTTP statuses before any handler runs.
func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		var status int
		if len(s.failures) > 0 {
			status, s.failures = s.failures[0], s.failures[1:]
		}
		s.mu.Unlock()
		if status != 0 {
			http.Error(w, http.StatusText(status), status)
			return
		}
		next.ServeHTTP(w, r)
	})
}
