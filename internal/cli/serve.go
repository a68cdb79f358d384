package cli

import (
	"fmt"
	"net/http"

	adapter "github.com/weldworks/weldr/internal/adapters/http"
	"github.com/weldworks/weldr/pkg/config"
)

// ServeOptions contains the configuration for the serve command.
type ServeOptions struct {
	Addr       string
	ConfigPath string
	Debug      bool
}

// Serve runs the HTTP conversion service until the process is stopped.
func Serve(opts ServeOptions) error {
	logger := newLogger(opts.Debug)

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	handler := adapter.NewHandler(cfg, logger)
	logger.Info("listening", "addr", opts.Addr)
	if err := http.ListenAndServe(opts.Addr, handler); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}
