// Package cli wires the command-line interface.
package cli

import (
	"fmt"
	"io"

	"github.com/Ranger10sam/Serenify-App/config"
	"github.com/Ranger10sam/Serenify-App/core"
	"github.com/Ranger10sam/Serenify-App/stores"
	"github.com/Ranger10sam/Serenify-App/wallpapers"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app carries the resolved configuration shared by every command.
type app struct {
	cfg     config.Config
	envFile string

	// openStore is replaced in tests.
	openStore func(cfg config.Config) (core.KeyValueStore, error)
}

// NewRootCommand builds the serenify command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{openStore: stores.GetStore})
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "serenify",
		Short: "Local backend for the Serenify quote wallpaper studio",
		Long: `Serenify stores quote wallpapers, arranges them into a two-column
masonry gallery and serves inspirational quotes.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.configure(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.envFile, "env-file", ".env", "dotenv file to load if present")
	flags.String("loglevel", "", "log level (debug, info, warn, error)")
	flags.String("storage", "", "storage backend (memory, filesystem, sqlite)")
	flags.String("data-dir", "", "directory for the filesystem backend")
	flags.String("dsn", "", "database file for the sqlite backend")

	root.AddCommand(
		newServeCommand(a),
		newWallpapersCommand(a),
		newLayoutCommand(a),
		newQuoteCommand(a),
		newTokenCommand(a),
	)
	return root
}

// configure loads the environment and applies flag overrides.
func (a *app) configure(cmd *cobra.Command) error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	override := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	override("loglevel", &cfg.LogLevel)
	override("storage", &cfg.StorageType)
	override("data-dir", &cfg.LocalStoragePath)
	override("dsn", &cfg.DataSourceName)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	logrus.SetOutput(cmd.ErrOrStderr())

	a.cfg = cfg
	return nil
}

// kv opens the configured backend. The returned function releases it.
func (a *app) kv() (core.KeyValueStore, func(), error) {
	kv, err := a.openStore(a.cfg)
	if err != nil {
		return nil, nil, err
	}
	release := func() {
		if c, ok := kv.(io.Closer); ok {
			if err := c.Close(); err != nil {
				logrus.WithError(err).Warn("Failed to close storage")
			}
		}
	}
	return kv, release, nil
}

func (a *app) wallpaperStore(opts ...wallpapers.Option) (*wallpapers.Store, func(), error) {
	kv, release, err := a.kv()
	if err != nil {
		return nil, nil, err
	}
	return wallpapers.NewStore(kv, opts...), release, nil
}
