// Package export fetches the opaque full-log export either as inline
// preview text or as a file download with a derived filename.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/agusx1211/agentwatch/internal/api"
)

// Options parameterize both export operations identically.
type Options struct {
	IncludeSystem bool
	DebugEvents   bool
}

// FallbackFilename synthesizes the download name used when the server does
// not suggest one: an ISO timestamp with colons replaced by dashes.
func FallbackFilename(now time.Time) string {
	stamp := now.UTC().Format("2006-01-02T15-04-05.000Z")
	return "agent_logs_" + stamp + ".json"
}

// Preview fetches the export as text for inline display.
func Preview(ctx context.Context, client *api.Client, opts Options) (string, error) {
	data, _, err := client.Export(ctx, opts.IncludeSystem, opts.DebugEvents)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Download fetches the export blob and writes it into dir, named by the
// server's content-disposition suggestion or the timestamp fallback.
// Returns the written path.
func Download(ctx context.Context, client *api.Client, dir string, opts Options) (string, error) {
	data, filename, err := client.Export(ctx, opts.IncludeSystem, opts.DebugEvents)
	if err != nil {
		return "", err
	}
	if filename == "" {
		filename = FallbackFilename(time.Now())
	}
	path := filepath.Join(dir, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing export: %w", err)
	}
	return path, nil
}
