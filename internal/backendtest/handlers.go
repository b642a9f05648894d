package backendtest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

const maxUserPageSize = 20

func writeJSON(w http.ResponseWriter, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func ok(w http.ResponseWriter, data any) { writeJSON(w, envelope{Code: 0, Data: data, Message: "ok"}) }

func fail(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, envelope{Code: code, Message: msg})
}

func readBody(r *http.Request, v any) error {
	b, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	return decode(b, v)
}

// sessionUser resolves the caller from the session cookie. Caller holds no lock.
func (s *Server) sessionUser(r *http.Request) (User, bool) {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return User{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id, found := s.sessions[c.Value]
	if !found {
		return User{}, false
	}
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

func (s *Server) requireLogin(w http.ResponseWriter, r *http.Request) (User, bool) {
	u, found := s.sessionUser(r)
	if !found {
		fail(w, CodeNotLogin, "not logged in")
	}
	return u, found
}

func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	u, found := s.requireLogin(w, r)
	if !found {
		return false
	}
	if u.Role != "admin" {
		fail(w, CodeNoAuth, "no permission")
		return false
	}
	return true
}

func toUserVO(u User) *userVO {
	return &userVO{ID: u.ID, UserAccount: u.Account, UserName: u.Name, UserRole: u.Role}
}

// ----------------------------- health / user -----------------------------

func (s *Server) health(w http.ResponseWriter, _ *http.Request) { ok(w, "ok") }

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserAccount  string `json:"userAccount"`
		UserPassword string `json:"userPassword"`
	}
	if err := readBody(r, &req); err != nil {
		fail(w, CodeParamsError, "invalid JSON")
		return
	}
	s.mu.Lock()
	u, found := s.users[req.UserAccount]
	if !found || u.Password != req.UserPassword {
		s.mu.Unlock()
		fail(w, CodeParamsError, "user does not exist or password is wrong")
		return
	}
	token := uuid.NewString()
	s.sessions[token] = u.ID
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: token, Path: "/", HttpOnly: true})
	ok(w, toUserVO(u))
}

func (s *Server) getLoginUser(w http.ResponseWriter, r *http.Request) {
	u, found := s.requireLogin(w, r)
	if !found {
		return
	}
	ok(w, toUserVO(u))
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		fail(w, CodeOperationError, "not logged in")
		return
	}
	s.mu.Lock()
	delete(s.sessions, c.Value)
	s.mu.Unlock()
	ok(w, true)
}

// ----------------------------- user app endpoints -----------------------------

func (s *Server) addApp(w http.ResponseWriter, r *http.Request) {
	u, found := s.requireLogin(w, r)
	if !found {
		return
	}
	var req struct {
		AppName     string `json:"appName"`
		InitPrompt  string `json:"initPrompt"`
		CodeGenType string `json:"codeGenType"`
	}
	if err := readBody(r, &req); err != nil || strings.TrimSpace(req.InitPrompt) == "" {
		fail(w, CodeParamsError, "initPrompt is required")
		return
	}
	name := req.AppName
	if name == "" {
		name = firstRunes(req.InitPrompt, 12)
	}
	id := s.Seed(App{AppName: name, InitPrompt: req.InitPrompt, CodeGenType: req.CodeGenType, UserID: u.ID})
	ok(w, id)
}

func (s *Server) updateApp(w http.ResponseWriter, r *http.Request) {
	u, found := s.requireLogin(w, r)
	if !found {
		return
	}
	var req struct {
		ID      flexID `json:"id"`
		AppName string `json:"appName"`
	}
	if err := readBody(r, &req); err != nil || req.ID == 0 {
		fail(w, CodeParamsError, "id is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	app, exists := s.apps[int64(req.ID)]
	switch {
	case !exists:
		fail(w, CodeNotFound, "app not found")
	case app.UserID != u.ID:
		fail(w, CodeNoAuth, "no permission")
	default:
		app.AppName = req.AppName
		app.UpdateTime = s.stamp()
		ok(w, true)
	}
}

func (s *Server) deleteApp(w http.ResponseWriter, r *http.Request) {
	u, found := s.requireLogin(w, r)
	if !found {
		return
	}
	var req struct {
		ID flexID `json:"id"`
	}
	if err := readBody(r, &req); err != nil || req.ID == 0 {
		fail(w, CodeParamsError, "id is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	app, exists := s.apps[int64(req.ID)]
	switch {
	case !exists:
		fail(w, CodeNotFound, "app not found")
	case app.UserID != u.ID:
		fail(w, CodeNoAuth, "no permission")
	default:
		delete(s.apps, app.ID)
		ok(w, true)
	}
}

func (s *Server) deployApp(w http.ResponseWriter, r *http.Request) {
	u, found := s.requireLogin(w, r)
	if !found {
		return
	}
	var req struct {
		AppID flexID `json:"appId"`
	}
	if err := readBody(r, &req); err != nil || req.AppID == 0 {
		fail(w, CodeParamsError, "appId is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	app, exists := s.apps[int64(req.AppID)]
	switch {
	case !exists:
		fail(w, CodeNotFound, "app not found")
	case app.UserID != u.ID:
		fail(w, CodeNoAuth, "no permission")
	default:
		if app.DeployKey == "" {
			app.DeployKey = strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
		}
		app.DeployedTime = s.stamp()
		ok(w, fmt.Sprintf("%s/api/static/deploy/%s/", s.srv.URL, app.DeployKey))
	}
}

// getAppVO returns the most recently created app of the session user; the
// endpoint carries no id.
func (s *Server) getAppVO(w http.ResponseWriter, r *http.Request) {
	u, found := s.requireLogin(w, r)
	if !found {
		return
	}
	mine := s.filter(func(a *App) bool { return a.UserID == u.ID })
	if len(mine) == 0 {
		fail(w, CodeNotFound, "app not found")
		return
	}
	ok(w, s.toVO(mine[len(mine)-1]))
}

func (s *Server) listMyApps(w http.ResponseWriter, r *http.Request) {
	u, found := s.requireLogin(w, r)
	if !found {
		return
	}
	q := r.URL.Query()
	name := q.Get("appName")
	apps := s.filter(func(a *App) bool {
		return a.UserID == u.ID && strings.Contains(a.AppName, name)
	})
	s.writePage(w, q, apps, maxUserPageSize)
}

func (s *Server) listFeaturedApps(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	name := q.Get("appName")
	apps := s.filter(func(a *App) bool { return a.Priority > 0 && strings.Contains(a.AppName, name) })
	sort.SliceStable(apps, func(i, j int) bool { return apps[i].Priority > apps[j].Priority })
	s.writePage(w, q, apps, maxUserPageSize)
}

// chat streams the configured fragments as server-sent events, flushing each.
func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	u, found := s.sessionUser(r)
	q := r.URL.Query()
	id, _ := strconv.ParseInt(q.Get("appId"), 10, 64)
	s.mu.Lock()
	app, exists := s.apps[id]
	frags := append([]string(nil), s.fragments...)
	s.mu.Unlock()

	switch {
	case !found:
		fail(w, CodeNotLogin, "not logged in")
		return
	case !exists:
		fail(w, CodeNotFound, "app not found")
		return
	case app.UserID != u.ID:
		fail(w, CodeNoAuth, "no permission")
		return
	case strings.TrimSpace(q.Get("message")) == "":
		fail(w, CodeParamsError, "message is required")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher, _ := w.(http.Flusher)
	for _, f := range frags {
		for _, line := range strings.Split(f, "\n") {
			_, _ = fmt.Fprintf(w, "data: %s\n", line)
		}
		_, _ = io.WriteString(w, "\n")
		if flusher != nil {
			flusher.Flush()
		}
	}
	_, _ = io.WriteString(w, "event: done\ndata: \n\n")
}

// ----------------------------- admin endpoints -----------------------------

func (s *Server) adminGetApp(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		fail(w, CodeParamsError, "invalid id")
		return
	}
	app, found := s.App(id)
	if !found {
		fail(w, CodeNotFound, "app not found")
		return
	}
	ok(w, app)
}

func (s *Server) adminListApps(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	q := r.URL.Query()
	apps := s.filter(func(a *App) bool {
		return matchInt(q.Get("id"), a.ID) &&
			matchInt(q.Get("userId"), a.UserID) &&
			matchInt(q.Get("priority"), int64(a.Priority)) &&
			strings.Contains(a.AppName, q.Get("appName")) &&
			strings.Contains(a.InitPrompt, q.Get("initPrompt")) &&
			strings.Contains(a.DeployKey, q.Get("deployKey")) &&
			(q.Get("codeGenType") == "" || a.CodeGenType == q.Get("codeGenType"))
	})
	s.writePage(w, q, apps, 0)
}

func (s *Server) adminUpdateApp(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	var req struct {
		ID       flexID `json:"id"`
		AppName  string `json:"appName"`
		Cover    string `json:"cover"`
		Priority *int   `json:"priority"`
	}
	if err := readBody(r, &req); err != nil || req.ID == 0 {
		fail(w, CodeParamsError, "id is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	app, exists := s.apps[int64(req.ID)]
	if !exists {
		fail(w, CodeNotFound, "app not found")
		return
	}
	if req.AppName != "" {
		app.AppName = req.AppName
	}
	if req.Cover != "" {
		app.Cover = req.Cover
	}
	if req.Priority != nil {
		app.Priority = *req.Priority
	}
	app.UpdateTime = s.stamp()
	ok(w, true)
}

func (s *Server) adminDeleteApp(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	var req struct {
		ID flexID `json:"id"`
	}
	if err := readBody(r, &req); err != nil || req.ID == 0 {
		fail(w, CodeParamsError, "id is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.apps[int64(req.ID)]; !exists {
		fail(w, CodeNotFound, "app not found")
		return
	}
	delete(s.apps, int64(req.ID))
	ok(w, true)
}

// ----------------------------- helpers -----------------------------

// filter returns matching apps ordered by id.
func (s *Server) filter(keep func(*App) bool) []App {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []App
	for _, a := range s.apps {
		if keep(a) {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Server) toVO(a App) appVO {
	vo := appVO{App: a}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == a.UserID {
			vo.User = toUserVO(u)
		}
	}
	return vo
}

// writePage slices apps per pageNum/pageSize; maxSize 0 means unlimited.
func (s *Server) writePage(w http.ResponseWriter, q map[string][]string, apps []App, maxSize int) {
	num := atoiDefault(first(q["pageNum"]), 1)
	size := atoiDefault(first(q["pageSize"]), 10)
	if maxSize > 0 && size > maxSize {
		size = maxSize
	}
	if num < 1 {
		num = 1
	}
	if size < 1 {
		size = 10
	}
	out := page[appVO]{PageNumber: num, PageSize: size, TotalRow: int64(len(apps)), Records: []appVO{}}
	out.TotalPage = (len(apps) + size - 1) / size
	start := (num - 1) * size
	for i := start; i < len(apps) && i < start+size; i++ {
		out.Records = append(out.Records, s.toVO(apps[i]))
	}
	ok(w, out)
}

func first(vs []string) string {
	if len(vs) == 0 {
		return ""
	}
	return vs[0]
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func matchInt(filter string, v int64) bool {
	if filter == "" {
		return true
	}
	n, err := strconv.ParseInt(filter, 10, 64)
	return err == nil && n == v
}

func firstRunes(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}
