// Package main implements the salesdesk CLI, a client for the XML admin
// backend: login, cached startup, list fetches and menu rendering.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"salesdesk/internal/client"
	"salesdesk/internal/config"
	"salesdesk/internal/envelope"
	"salesdesk/internal/logging"
	"salesdesk/internal/store"
)

var (
	// Global flags
	configPath string
	endpoint   string
	verbose    bool

	// Logger
	logger *zap.Logger

	// Loaded configuration
	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "salesdesk",
	Short: "salesdesk - admin backend client",
	Long: `salesdesk talks to the XML admin backend: it logs in, fetches the
menu, texts, permissions and data lists, and keeps a last-known-good
snapshot so cached data is available before the first round trip.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.DefaultPath()
		}
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}
		if endpoint != "" {
			cfg.Backend.Endpoint = endpoint
		}
		if verbose {
			cfg.Logging.Level = zapcore.DebugLevel.String()
		}

		logger, err = logging.New(cfg.Logging)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// newGateway builds a gateway from the loaded config and restores the
// persisted session and caches. The returned cleanup closes the store.
func newGateway() (*client.Gateway, func(), error) {
	st, err := store.Open(cfg.Cache.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open cache: %w", err)
	}

	locale := cfg.Backend.Locale
	if locale == "" {
		locale = envelope.LocaleFromEnv()
	}

	g := client.New(client.Config{
		Endpoint:   cfg.Backend.Endpoint,
		Locale:     locale,
		AssetBase:  cfg.Assets.BasePath,
		Store:      st,
		Logger:     logger,
		HTTPClient: &http.Client{Timeout: cfg.RequestTimeout()},
	})
	restored := g.LoadCachedState()
	logger.Debug("cached state restored",
		zap.Bool("token", restored.Token),
		zap.Bool("menu", restored.Menu),
		zap.Bool("texts", restored.Texts))

	return g, func() { _ = st.Close() }, nil
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "backend endpoint URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(suppliersCmd)
	rootCmd.AddCommand(posCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(textsCmd)
	rootCmd.AddCommand(tooltipsCmd)
	rootCmd.AddCommand(imagesCmd)
	rootCmd.AddCommand(statusCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
