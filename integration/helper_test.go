//go:build integration

package integration_test

import (
	"errors"
	"net/http"
	"time"

	"github.com/openkcm/common-sdk/pkg/commoncfg"

	"github.com/oraesatta/cheoresono/internal/config"
)

var ErrMissingSvrPort = errors.New("server port is missing")

func loadConfig() (*config.Config, error) {
	cfg := &config.Config{}
	err := commoncfg.LoadConfig(cfg,
		map[string]any{},
		"..",
	)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// baseURL points at the locally running server, configured the same way the
// server itself is.
func baseURL() (string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}

	if cfg.HTTPServer.Address == "" {
		return "", ErrMissingSvrPort
	}

	return "http://localhost" + cfg.HTTPServer.Address, nil
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 5 * time.Second}
}
