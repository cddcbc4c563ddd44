package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/agusx1211/agentwatch/internal/api"
	"github.com/agusx1211/agentwatch/internal/config"
)

type options struct {
	serverURL   string
	interval    time.Duration
	downloadDir string
}

// resolveOptions layers flags over the config file over defaults and builds
// the API client.
func resolveOptions(cmd *cobra.Command) (*api.Client, options, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, options{}, err
	}

	opts := options{
		serverURL:   cfg.EffectiveServerURL(),
		interval:    cfg.EffectivePollInterval(),
		downloadDir: cfg.EffectiveDownloadDir(),
	}
	if server, _ := cmd.Flags().GetString("server"); server != "" {
		opts.serverURL = server
	}
	if ms, _ := cmd.Flags().GetInt("interval"); ms > 0 {
		opts.interval = time.Duration(ms) * time.Millisecond
	}
	if dir, _ := cmd.Flags().GetString("download-dir"); dir != "" {
		opts.downloadDir = dir
	}
	return api.New(opts.serverURL), opts, nil
}
