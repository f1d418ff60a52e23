// Package main implements the bossy CLI tool.
package main

import (
	"fmt"
	"os"

	internalstrings "github.com/bossyapp/bossy/internal/strings"
	"github.com/bossyapp/bossy/server"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bossy",
	Short: "Bossy - a boss that keeps you honest about your goals",
}

var (
	flagAddr   string
	flagUser   string
	flagLocale string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAddr, "addr", "", "Bossy server address (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagUser, "user", "", "User id (default $BOSSY_USER)")
	rootCmd.PersistentFlags().StringVar(&flagLocale, "locale", "", "Feedback locale (en, zh-CN, zh-TW, zh-HK)")
}

// resolveClient builds an RPC client from flags, environment, and config.
func resolveClient() (*server.Client, error) {
	userID := flagUser
	if internalstrings.IsBlank(userID) {
		userID = os.Getenv("BOSSY_USER")
	}
	if internalstrings.IsBlank(userID) {
		return nil, fmt.Errorf("user id is required (--user or $BOSSY_USER)")
	}

	addr, err := resolveAddr(flagAddr)
	if err != nil {
		return nil, err
	}

	client := server.NewClient(addr, userID)
	if !internalstrings.IsBlank(flagLocale) {
		client = client.WithLocale(flagLocale)
	}
	return client, nil
}
