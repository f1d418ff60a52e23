package main

import (
	"fmt"
	"strconv"
	"strings"

	internalstrings "github.com/bossyapp/bossy/internal/strings"
)

// resolveAddr normalizes an address from a flag, falling back to the
// configured server address.
func resolveAddr(addr string) (string, error) {
	if internalstrings.IsBlank(addr) {
		cfg, err := loadConfig()
		if err != nil {
			return "", err
		}
		addr = cfg.Server.Addr
	}
	return normalizeAddr(addr)
}

func normalizeAddr(addr string) (string, error) {
	trimmed := strings.TrimSpace(addr)
	if trimmed == "" {
		return "", fmt.Errorf("address is required")
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return trimmed, nil
	}
	if strings.HasPrefix(trimmed, ":") {
		return "127.0.0.1" + trimmed, nil
	}
	if strings.Contains(trimmed, ":") {
		return trimmed, nil
	}
	port, err := strconv.Atoi(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid port %q", trimmed)
	}
	if port <= 0 || port > 65535 {
		return "", fmt.Errorf("port out of range: %d", port)
	}
	return fmt.Sprintf("127.0.0.1:%d", port), nil
}
