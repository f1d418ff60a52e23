package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/bossyapp/bossy/internal/config"
	internalstrings "github.com/bossyapp/bossy/internal/strings"
	"github.com/bossyapp/bossy/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the bossy server",
	RunE:  runServe,
}

var serveDBPath string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveDBPath, "db", "", "SQLite database path (default from config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(level)
	}

	addr := cfg.Server.Addr
	if !internalstrings.IsBlank(flagAddr) {
		addr, err = resolveAddr(flagAddr)
		if err != nil {
			return err
		}
	}
	dbPath := cfg.Database.Path
	if !internalstrings.IsBlank(serveDBPath) {
		dbPath = serveDBPath
	}

	srv, err := server.New(server.Options{
		DatabasePath: dbPath,
		BaseURL:      cfg.Server.BaseURL,
		Logger:       logger,
	})
	if err != nil {
		return err
	}
	return srv.Serve(addr)
}

func loadConfig() (*config.Config, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return config.Load(dir)
}
