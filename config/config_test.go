package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"VITE_API_BASE_URL", "VITE_APP_PREVIEW_URL", "VITE_APP_DEPLOY_URL", "VITE_HTTP_TIMEOUT",
		"API_BASE_URL", "APP_PREVIEW_URL", "APP_DEPLOY_URL", "HTTP_TIMEOUT",
		"ZEROCODE_DEBUG", "DEBUG", "ZEROCODE_ENV_FILE",
	} {
		t.Setenv(k, "")
	}
}

func noFile(t *testing.T) Options {
	return Options{EnvFile: filepath.Join(t.TempDir(), "missing.env")}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(noFile(t))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8123/api", cfg.APIBaseURL)
	assert.Equal(t, "http://localhost:8123/api/static", cfg.AppPreviewURL)
	assert.Equal(t, "http://localhost:8123/api/static/deploy", cfg.AppDeployURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.False(t, cfg.Debug)
	assert.Empty(t, cfg.EnvFile)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("VITE_API_BASE_URL", "https://zerocode.example.com/api")
	t.Setenv("VITE_APP_DEPLOY_URL", "https://apps.example.com")
	t.Setenv("VITE_HTTP_TIMEOUT", "45s")
	t.Setenv("DEBUG", "true")

	cfg, err := Load(noFile(t))
	require.NoError(t, err)
	assert.Equal(t, "https://zerocode.example.com/api", cfg.APIBaseURL)
	assert.Equal(t, DefaultAppPreviewURL, cfg.AppPreviewURL)
	assert.Equal(t, "https://apps.example.com", cfg.AppDeployURL)
	assert.Equal(t, 45*time.Second, cfg.HTTPTimeout)
	assert.True(t, cfg.Debug)
}

func TestLoad_EmptyValueMeansDefault(t *testing.T) {
	clearEnv(t)
	t.Setenv("VITE_API_BASE_URL", "   ")
	cfg, err := Load(noFile(t))
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIBaseURL, cfg.APIBaseURL)
}

func TestLoad_EnvFileLayer(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(
		"VITE_API_BASE_URL=http://file.example.com/api\n"+
			"VITE_APP_PREVIEW_URL=http://file.example.com/static\n"+
			"VITE_HTTP_TIMEOUT=10\n"+
			"OTHER_KEY=ignored\n"), 0o600))

	// the process environment wins over the file
	t.Setenv("VITE_APP_PREVIEW_URL", "http://env.example.com/static")

	cfg, err := Load(Options{EnvFile: path})
	require.NoError(t, err)
	assert.Equal(t, "http://file.example.com/api", cfg.APIBaseURL)
	assert.Equal(t, "http://env.example.com/static", cfg.AppPreviewURL)
	assert.Equal(t, DefaultAppDeployURL, cfg.AppDeployURL)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, path, cfg.EnvFile)
}

func TestLoad_EnvFileFromVariable(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "custom.env")
	require.NoError(t, os.WriteFile(path, []byte("ZC_API_BASE_URL=http://custom.example.com/api\n"), 0o600))
	t.Setenv("ZEROCODE_ENV_FILE", path)

	cfg, err := Load(Options{Prefix: "ZC"})
	require.NoError(t, err)
	assert.Equal(t, "http://custom.example.com/api", cfg.APIBaseURL)
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("VITE_API_BASE_URL", "not a url")
	_, err := Load(noFile(t))
	require.Error(t, err)

	clearEnv(t)
	t.Setenv("VITE_HTTP_TIMEOUT", "soon")
	_, err = Load(noFile(t))
	require.Error(t, err)

	clearEnv(t)
	t.Setenv("VITE_HTTP_TIMEOUT", "-5")
	_, err = Load(noFile(t))
	require.Error(t, err)
}

func TestLoad_RelativeAppURLs(t *testing.T) {
	clearEnv(t)
	t.Setenv("VITE_APP_PREVIEW_URL", "/static")
	t.Setenv("VITE_APP_DEPLOY_URL", "/static/deploy")

	cfg, err := Load(noFile(t))
	require.NoError(t, err)
	assert.Equal(t, "/static", cfg.AppPreviewURL)
	assert.Equal(t, "/static/deploy", cfg.AppDeployURL)
	assert.Equal(t, "/static/vue_project_7/", cfg.PreviewURL("vue_project", 7))
	assert.Equal(t, "/static/deploy/k/", cfg.DeployedURL("k"))

	// the API base still has to be absolute for the HTTP client
	clearEnv(t)
	t.Setenv("VITE_API_BASE_URL", "/api")
	_, err = Load(noFile(t))
	require.Error(t, err)
}

func TestURLHelpers(t *testing.T) {
	cfg := NewForTesting()
	assert.Equal(t, "http://localhost:8123/api/static/html_42/", cfg.PreviewURL("html", 42))
	assert.Equal(t, "http://localhost:8123/api/static/deploy/AbC123/", cfg.DeployedURL("AbC123"))

	cfg.AppDeployURL = "https://apps.example.com/"
	assert.Equal(t, "https://apps.example.com/k/", cfg.DeployedURL("k"))
}
