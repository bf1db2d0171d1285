package cli

import (
	gocontext "context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/helena-commits/badge-capture-stream/internal/config"
	"github.com/helena-commits/badge-capture-stream/internal/ctxutil"
	"github.com/helena-commits/badge-capture-stream/internal/logging"
	"github.com/helena-commits/badge-capture-stream/internal/wire"
)

// EnvConfigPath overrides the default config location.
const EnvConfigPath = "BADGEDESK_CONFIG"

var (
	globalConfigPath string
	globalLogLevel   string
	globalSessionID  = uuid.NewString()
)

// AddGlobalFlags registers the persistent flags shared by every command.
func AddGlobalFlags(root *cobra.Command) {
	root.PersistentFlags().StringVar(&globalConfigPath, "config", "", "config file (default ~/.badgedesk/config.yaml)")
	root.PersistentFlags().StringVar(&globalLogLevel, "log-level", "", "override log.level (debug, info, warn, error)")
}

// ConfigPath resolves the config file location: --config, then
// $BADGEDESK_CONFIG, then the default.
func ConfigPath() (string, error) {
	if globalConfigPath != "" {
		return globalConfigPath, nil
	}
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	return config.DefaultPath()
}

// Bootstrap loads and validates the config, builds the logger and hands both
// to wire. Used as the root PersistentPreRunE.
func Bootstrap(cmd *cobra.Command, args []string) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return err
	}
	if globalLogLevel != "" {
		cfg.Log.Level = globalLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", path, err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}
	wire.Configure(cfg, logger.With(
		zap.String("session", globalSessionID),
	))
	return nil
}

// NewContext creates a context carrying the operator session ID.
func NewContext() gocontext.Context {
	return ctxutil.WithSessionID(gocontext.Background(), globalSessionID)
}
