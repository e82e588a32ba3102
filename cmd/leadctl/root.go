package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/config"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/logger"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "leadctl",
		Short:        "Biotech lead discovery from the command line",
		Long:         "leadctl runs lead discovery, applies the database schema and prints demo data without starting the API server.",
		SilenceUsage: true,
	}
	root.AddCommand(newDiscoverCmd(), newMigrateCmd(), newDemoCmd())
	return root
}

// setup loads configuration and a logger writing to stderr.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
