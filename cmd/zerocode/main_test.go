package main

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/gdai/zerocode/internal/backendtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ZEROCODE_ENV_FILE", filepath.Join(t.TempDir(), "none.env"))
	for _, k := range []string{"VITE_API_BASE_URL", "VITE_APP_PREVIEW_URL", "VITE_APP_DEPLOY_URL", "VITE_HTTP_TIMEOUT", "ZEROCODE_DEBUG", "DEBUG", "ZEROCODE_ACCOUNT", "ZEROCODE_PASSWORD"} {
		t.Setenv(k, "")
	}
}

// run executes one CLI invocation against b and returns its stdout.
func run(t *testing.T, b *backendtest.Server, args ...string) (string, error) {
	t.Helper()
	out := &strings.Builder{}
	root := NewRootCmd()
	root.SetOut(out)
	root.SetErr(&strings.Builder{})
	root.SetArgs(append([]string{"--api-base-url", b.BaseURL()}, args...))
	err := root.Execute()
	return out.String(), err
}

func asAlice(args ...string) []string {
	return append(args, "--account", backendtest.Alice.Account, "--password", backendtest.Alice.Password)
}

func asAdmin(args ...string) []string {
	return append(args, "--account", backendtest.Admin.Account, "--password", backendtest.Admin.Password)
}

func TestCLI_Health(t *testing.T) {
	isolateEnv(t)
	b := backendtest.New()
	defer b.Close()

	out, err := run(t, b, "health")
	require.NoError(t, err)
	assert.Contains(t, out, "ok")
	assert.Equal(t, "/health/", b.Last().Path)
}

func TestCLI_AppLifecycle(t *testing.T) {
	isolateEnv(t)
	b := backendtest.New()
	defer b.Close()

	out, err := run(t, b, asAlice("app", "add", "--prompt", "a todo list", "--name", "todo", "--type", "html")...)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "App created: "), out)
	id := strings.TrimSpace(strings.TrimPrefix(out, "App created: "))

	out, err = run(t, b, asAlice("app", "list", "--size", "5")...)
	require.NoError(t, err)
	assert.Contains(t, out, "todo")
	assert.Contains(t, out, id)
	last := b.Last()
	assert.Equal(t, "/app/list/page/vo", last.Path)
	assert.Equal(t, "5", last.Query.Get("pageSize"))
	assert.Equal(t, "1", last.Query.Get("pageNum"))

	out, err = run(t, b, asAlice("app", "update", "--id", id, "--name", "todo-v2")...)
	require.NoError(t, err)
	assert.Contains(t, out, "App updated: "+id)

	out, err = run(t, b, asAlice("app", "get")...)
	require.NoError(t, err)
	assert.Contains(t, out, "todo-v2")

	out, err = run(t, b, asAlice("app", "chat", "--id", id, "--message", "make it blue")...)
	require.NoError(t, err)
	assert.Equal(t, "<!DOCTYPE html><html><body><h1>Hello</h1></body></html>\n", out)
	assert.Equal(t, "make it blue", b.Last().Query.Get("message"))

	out, err = run(t, b, asAlice("app", "deploy", "--id", id)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Deployed: "+b.URL()+"/api/static/deploy/")
	deployed := strings.TrimSpace(strings.TrimPrefix(out, "Deployed: "))

	// app get rebuilds the same address from the deploy key
	t.Setenv("VITE_APP_DEPLOY_URL", b.URL()+"/api/static/deploy")
	out, err = run(t, b, asAlice("app", "get")...)
	require.NoError(t, err)
	assert.Contains(t, out, "URL")
	assert.Contains(t, out, deployed)

	out, err = run(t, b, asAlice("app", "delete", "--id", id)...)
	require.NoError(t, err)
	assert.Contains(t, out, "App deleted: "+id)
	assert.Equal(t, "DELETE", b.Last().Method)
}

func TestCLI_JSONOutput(t *testing.T) {
	isolateEnv(t)
	b := backendtest.New()
	defer b.Close()

	out, err := run(t, b, asAlice("--json", "whoami")...)
	require.NoError(t, err)
	var env struct {
		Code int `json:"code"`
		Data struct {
			UserAccount string `json:"userAccount"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &env))
	assert.Equal(t, 0, env.Code)
	assert.Equal(t, "alice", env.Data.UserAccount)
}

func TestCLI_BusinessErrorFailsCommand(t *testing.T) {
	isolateEnv(t)
	b := backendtest.New()
	defer b.Close()

	// no --account: the session is anonymous
	_, err := run(t, b, "whoami")
	require.Error(t, err)
	var be *BusinessError
	require.True(t, errors.As(err, &be), err)
	assert.Equal(t, backendtest.CodeNotLogin, be.Code)

	// json mode still prints the envelope
	out, err := run(t, b, "--json", "whoami")
	require.Error(t, err)
	assert.Contains(t, out, `"code": 40100`)

	_, err = run(t, b, "whoami", "--account", "alice", "--password", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "login")
}

func TestCLI_Admin(t *testing.T) {
	isolateEnv(t)
	b := backendtest.New()
	defer b.Close()
	id := b.Seed(backendtest.App{AppName: "seeded", UserID: backendtest.Alice.ID, CodeGenType: "multiFile"})

	out, err := run(t, b, asAdmin("admin", "list", "--name", "seed")...)
	require.NoError(t, err)
	assert.Contains(t, out, "seeded")
	last := b.Last()
	assert.Equal(t, "/app/admin/list/page/vo", last.Path)
	assert.Equal(t, "seed", last.Query.Get("appName"))
	assert.Empty(t, last.Query.Get("appAdminQueryRequest"))

	out, err = run(t, b, asAdmin("admin", "update", "--id", itoa(id), "--priority", "99")...)
	require.NoError(t, err)
	assert.Contains(t, out, "App updated")
	app, _ := b.App(id)
	assert.Equal(t, 99, app.Priority)

	out, err = run(t, b, asAdmin("admin", "get", "--id", itoa(id))...)
	require.NoError(t, err)
	assert.Contains(t, out, "multiFile")
	assert.Equal(t, "/app/admin/get/"+itoa(id), b.Last().Path)

	out, err = run(t, b, asAlice("app", "featured")...)
	require.NoError(t, err)
	assert.Contains(t, out, "seeded")

	_, err = run(t, b, asAlice("admin", "delete", "--id", itoa(id))...)
	var be *BusinessError
	require.True(t, errors.As(err, &be), err)
	assert.Equal(t, backendtest.CodeNoAuth, be.Code)

	_, err = run(t, b, asAdmin("admin", "delete", "--id", itoa(id))...)
	require.NoError(t, err)
	_, exists := b.App(id)
	assert.False(t, exists)
}

func TestCLI_PreviewURL(t *testing.T) {
	isolateEnv(t)
	t.Setenv("VITE_APP_PREVIEW_URL", "https://preview.example.com/static")
	b := backendtest.New()
	defer b.Close()

	out, err := run(t, b, "app", "preview-url", "--id", "7", "--type", "multiFile")
	require.NoError(t, err)
	assert.Equal(t, "https://preview.example.com/static/multiFile_7/\n", out)
	assert.Empty(t, b.Requests())

	_, err = run(t, b, "app", "preview-url", "--id", "7", "--type", "vue")
	require.Error(t, err)
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }
