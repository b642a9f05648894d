// Package backendtest runs an in-memory fake of the code generation backend
// for tests. It serves every endpoint the SDK knows under /api, keeps apps
// and sessions in memory, and records each request it receives.
package backendtest

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/mux"
)

// Business error codes, as returned in the envelope's code field.
const (
	CodeParamsError    = 40000
	CodeNotLogin       = 40100
	CodeNoAuth         = 40101
	CodeNotFound       = 40400
	CodeOperationError = 50001
)

const sessionCookie = "JSESSIONID"

// Recorded is one request as the backend saw it.
type Recorded struct {
	Method string
	Path   string // escaped path, without the /api prefix
	Query  url.Values
	Header http.Header
	Body   []byte
}

// User is an account the fake backend accepts.
type User struct {
	ID       int64
	Account  string
	Password string
	Name     string
	Role     string // "user" or "admin"
}

// Default accounts.
var (
	Admin = User{ID: 1, Account: "admin", Password: "12345678", Name: "Admin", Role: "admin"}
	Alice = User{ID: 2, Account: "alice", Password: "12345678", Name: "Alice", Role: "user"}
)

// Server is the fake backend. Use URL() + "/api" as the SDK base URL.
type Server struct {
	srv *httptest.Server

	mu        sync.Mutex
	requests  []Recorded
	users     map[string]User
	sessions  map[string]int64
	apps      map[int64]*App
	nextID    int64
	failures  []int
	fragments []string
	now       func() time.Time
}

// New starts a fake backend with the default accounts and no apps.
func New() *Server {
	s := &Server{
		users:     map[string]User{Admin.Account: Admin, Alice.Account: Alice},
		sessions:  map[string]int64{},
		apps:      map[int64]*App{},
		nextID:    1000,
		fragments: []string{"<!DOCTYPE html>", "<html><body>", "<h1>Hello</h1>", "</body></html>"},
		now:       time.Now,
	}

	root := mux.NewRouter()
	root.Use(s.record, s.injectFailures)
	api := root.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health/", s.health).Methods("GET")

	api.HandleFunc("/user/login", s.login).Methods("POST")
	api.HandleFunc("/user/get/login", s.getLoginUser).Methods("GET")
	api.HandleFunc("/user/logout", s.logout).Methods("POST")

	api.HandleFunc("/app/add", s.addApp).Methods("POST")
	api.HandleFunc("/app/update", s.updateApp).Methods("PUT")
	api.HandleFunc("/app/delete", s.deleteApp).Methods("DELETE")
	api.HandleFunc("/app/deploy", s.deployApp).Methods("POST")
	api.HandleFunc("/app/get/vo", s.getAppVO).Methods("GET")
	api.HandleFunc("/app/list/page/vo", s.listMyApps).Methods("GET")
	api.HandleFunc("/app/list/page/vo/featured", s.listFeaturedApps).Methods("GET")
	api.HandleFunc("/app/chat/gen/code", s.chat).Methods("GET")

	api.HandleFunc("/app/admin/get/{id}", s.adminGetApp).Methods("GET")
	api.HandleFunc("/app/admin/list/page/vo", s.adminListApps).Methods("GET")
	api.HandleFunc("/app/admin/update", s.adminUpdateApp).Methods("PUT")
	api.HandleFunc("/app/admin/delete", s.adminDeleteApp).Methods("DELETE")

	s.srv = httptest.NewServer(root)
	return s
}

// URL is the server root; the SDK base URL is URL() + "/api".
func (s *Server) URL() string { return s.srv.URL }

// BaseURL is the SDK base URL.
func (s *Server) BaseURL() string { return s.srv.URL + "/api" }

// Client returns an http.Client wired to the test server.
func (s *Server) Client() *http.Client { return s.srv.Client() }

// Close shuts the server down.
func (s *Server) Close() { s.srv.Close() }

// Requests returns a copy of everything received so far.
func (s *Server) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Recorded(nil), s.requests...)
}

// Last returns the most recent request, or the zero value.
func (s *Server) Last() Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Recorded{}
	}
	return s.requests[len(s.requests)-1]
}

// FailNext makes the next len(statuses) requests fail with those HTTP statuses.
func (s *Server) FailNext(statuses ...int) {
	s.mu.Lock()
	s.failures = append(s.failures, statuses...)
	s.mu.Unlock()
}

// SetFragments replaces what the chat endpoint streams.
func (s *Server) SetFragments(frags ...string) {
	s.mu.Lock()
	s.fragments = append([]string(nil), frags...)
	s.mu.Unlock()
}

// Seed stores app as if it had been created, returning its id.
func (s *Server) Seed(app App) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if app.ID == 0 {
		s.nextID++
		app.ID = s.nextID
	}
	if app.CreateTime == "" {
		app.CreateTime = s.stamp()
	}
	cp := app
	s.apps[app.ID] = &cp
	return app.ID
}

// App returns a stored app.
func (s *Server) App(id int64) (App, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.apps[id]
	if !ok {
		return App{}, false
	}
	return *a, true
}

func (s *Server) stamp() string { return s.now().UTC().Format("2006-01-02T15:04:05Z") }
