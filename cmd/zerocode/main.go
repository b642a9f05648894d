// Command zerocode drives the code generation backend from a terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdai/zerocode/client"
	"github.com/gdai/zerocode/config"
	"github.com/gdai/zerocode/internal/logger"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	apiBaseURL string
	timeout    time.Duration
	debug      bool
	json       bool
	account    string
	password   string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("command failed")
		stop()
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	o := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "zerocode",
		Short:         "Command line client for the zerocode AI application generator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.WarnLevel
			if o.debug {
				level = zerolog.DebugLevel
			}
			logger.SetGlobal(logger.NewConsole("zerocode"), level)
			log.Debug().Msg("debug logging enabled")
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&o.apiBaseURL, "api-base-url", "", "Backend API base URL (default from VITE_API_BASE_URL)")
	pf.DurationVar(&o.timeout, "timeout", 0, "Per-request timeout (default from VITE_HTTP_TIMEOUT)")
	pf.BoolVarP(&o.debug, "debug", "d", false, "Enable verbose debug output and HTTP dumps")
	pf.BoolVar(&o.json, "json", false, "Print raw response envelopes as JSON")
	pf.StringVar(&o.account, "account", os.Getenv("ZEROCODE_ACCOUNT"), "Account to log in with before the command runs")
	pf.StringVar(&o.password, "password", os.Getenv("ZEROCODE_PASSWORD"), "Password for --account")

	rootCmd.AddCommand(newHealthCmd(o))
	rootCmd.AddCommand(newLoginCmd(o))
	rootCmd.AddCommand(newWhoAmICmd(o))
	rootCmd.AddCommand(newLogoutCmd(o))
	rootCmd.AddCommand(newAppCmd(o))
	rootCmd.AddCommand(newAdminCmd(o))

	return rootCmd
}

// loadConfig resolves configuration and applies flag overrides.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}
	if o.apiBaseURL != "" {
		cfg.APIBaseURL = o.apiBaseURL
	}
	if o.timeout > 0 {
		cfg.HTTPTimeout = o.timeout
	}
	if o.debug {
		cfg.Debug = true
	}
	return cfg, nil
}

// newClient builds an SDK client. With login set and --account given, a
// session is opened first; it lives as long as the process.
func (o *rootOptions) newClient(ctx context.Context, login bool) (*client.Client, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	c, err := client.NewFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	if !login || o.account == "" {
		return c, nil
	}

	log.Debug().Str("account", o.account).Str("api_base_url", c.BaseURL()).Msg("logging in")
	resp, err := c.UserLogin(ctx, client.UserLoginRequest{UserAccount: o.account, UserPassword: o.password})
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("login: %w", err)
	}
	if !resp.OK() {
		_ = c.Close()
		return nil, businessError("login", resp.Code, resp.Message)
	}
	return c, nil
}
