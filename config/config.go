// Package config resolves the backend endpoints the SDK, CLI and MCP server
// talk to. Values are read once at start-up and passed around explicitly.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog/log"
)

// Literal defaults, used when a value is absent or empty at every layer.
const (
	DefaultAPIBaseURL    = "http://localhost:8123/api"
	DefaultAppPreviewURL = "http://localhost:8123/api/static"
	DefaultAppDeployURL  = "http://localhost:8123/api/static/deploy"
	DefaultHTTPTimeout   = 30 * time.Second

	// DefaultPrefix makes the web frontend's .env usable as is.
	DefaultPrefix = "VITE"

	envFileVar     = "ZEROCODE_ENV_FILE"
	defaultEnvFile = ".env"
)

var validate = validator.New()

// Config holds the resolved endpoints.
type Config struct {
	// APIBaseURL prefixes every backend request path.
	APIBaseURL string `validate:"required,url"`
	// AppPreviewURL serves generated code before deployment. It may be
	// relative to the page origin.
	AppPreviewURL string `validate:"required"`
	// AppDeployURL serves deployed applications. It may be relative too.
	AppDeployURL string `validate:"required"`

	HTTPTimeout time.Duration `validate:"gt=0"`
	Debug       bool

	// EnvFile is the dotenv file that was read, empty when none existed.
	EnvFile string
}

// rawConfig is one layer of unparsed values. Strings only, so an empty
// variable reads as absent instead of failing to parse.
type rawConfig struct {
	APIBaseURL    string `envconfig:"API_BASE_URL"`
	AppPreviewURL string `envconfig:"APP_PREVIEW_URL"`
	AppDeployURL  string `envconfig:"APP_DEPLOY_URL"`
	HTTPTimeout   string `envconfig:"HTTP_TIMEOUT"`
}

// debugEnv reads ZEROCODE_DEBUG, falling back to DEBUG when blank.
type debugEnv struct {
	ZerocodeDebug string `envconfig:"ZEROCODE_DEBUG"`
	Debug         string `envconfig:"DEBUG"`
}

// Options tune Load.
type Options struct {
	// Prefix of the environment keys, DefaultPrefix when empty.
	Prefix string
	// EnvFile overrides the dotenv path; otherwise $ZEROCODE_ENV_FILE or ".env".
	EnvFile string
}

// New loads configuration with default options.
// Example: VITE_API_BASE_URL=https://zerocode.example.com/api
func New() (*Config, error) {
	return Load(Options{})
}

// Load resolves configuration. Precedence, lowest first: literal defaults,
// the dotenv file, the process environment.
func Load(opts Options) (*Config, error) {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	path := opts.EnvFile
	if path == "" {
		path = os.Getenv(envFileVar)
	}
	if path == "" {
		path = defaultEnvFile
	}

	fromFile, read, err := loadEnvFile(path, prefix)
	if err != nil {
		return nil, err
	}

	var fromEnv rawConfig
	if err := envconfig.Process(prefix, &fromEnv); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	var dbg debugEnv
	if err := envconfig.Process("", &dbg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	cfg := &Config{
		APIBaseURL:    pick(fromEnv.APIBaseURL, fromFile.APIBaseURL),
		AppPreviewURL: pick(fromEnv.AppPreviewURL, fromFile.AppPreviewURL),
		AppDeployURL:  pick(fromEnv.AppDeployURL, fromFile.AppDeployURL),
		Debug:         pick(dbg.ZerocodeDebug, dbg.Debug) == "true",
	}
	if read {
		cfg.EnvFile = path
	}
	if t := pick(fromEnv.HTTPTimeout, fromFile.HTTPTimeout); t != "" {
		d, err := parseTimeout(t)
		if err != nil {
			return nil, fmt.Errorf("invalid %s_HTTP_TIMEOUT %q: %w", prefix, t, err)
		}
		cfg.HTTPTimeout = d
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("api_base_url", cfg.APIBaseURL).
		Str("app_preview_url", cfg.AppPreviewURL).
		Str("app_deploy_url", cfg.AppDeployURL).
		Dur("http_timeout", cfg.HTTPTimeout).
		Bool("debug", cfg.Debug).
		Str("env_file", cfg.EnvFile).
		Msg("Configuration loaded")

	return cfg, nil
}

// ResolveDefaults fills empty values with the literal defaults and validates
// the result.
func (c *Config) ResolveDefaults() error {
	if strings.TrimSpace(c.APIBaseURL) == "" {
		c.APIBaseURL = DefaultAPIBaseURL
	}
	if strings.TrimSpace(c.AppPreviewURL) == "" {
		c.AppPreviewURL = DefaultAppPreviewURL
	}
	if strings.TrimSpace(c.AppDeployURL) == "" {
		c.AppDeployURL = DefaultAppDeployURL
	}
	if c.HTTPTimeout == 0 {
		c.HTTPTimeout = DefaultHTTPTimeout
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// NewForTesting returns the literal defaults without reading any source.
func NewForTesting() *Config {
	c := &Config{}
	_ = c.ResolveDefaults()
	return c
}

// PreviewURL is where the generated code of an app is served before it is
// deployed: <preview>/<codeGenType>_<appID>/.
func (c *Config) PreviewURL(codeGenType string, appID int64) string {
	return fmt.Sprintf("%s/%s_%d/", strings.TrimRight(c.AppPreviewURL, "/"), codeGenType, appID)
}

// DeployedURL is the public address of a deployed app: <deploy>/<deployKey>/.
func (c *Config) DeployedURL(deployKey string) string {
	return fmt.Sprintf("%s/%s/", strings.TrimRight(c.AppDeployURL, "/"), deployKey)
}

// loadEnvFile reads prefixed keys from a dotenv file. A missing file is not
// an error; read reports whether the file existed.
func loadEnvFile(path, prefix string) (raw rawConfig, read bool, err error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return raw, false, nil
	}
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), dotenv.Parser()); err != nil {
		return raw, false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	key := func(name string) string { return k.String(prefix + "_" + name) }
	raw = rawConfig{
		APIBaseURL:    key("API_BASE_URL"),
		AppPreviewURL: key("APP_PREVIEW_URL"),
		AppDeployURL:  key("APP_DEPLOY_URL"),
		HTTPTimeout:   key("HTTP_TIMEOUT"),
	}
	return raw, true, nil
}

// pick returns the first value that is not blank.
func pick(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// parseTimeout accepts a Go duration ("45s") or a bare number of seconds.
func parseTimeout(s string) (time.Duration, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n <= 0 {
			return 0, errors.New("must be > 0")
		}
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, errors.New("must be > 0")
	}
	return d, nil
}
