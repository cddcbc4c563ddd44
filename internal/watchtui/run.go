package watchtui

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agusx1211/agentwatch/internal/api"
	"github.com/agusx1211/agentwatch/internal/syncer"
)

// Config holds everything needed to launch the watch TUI.
type Config struct {
	Client       *api.Client
	ServerURL    string
	PollInterval time.Duration
	DownloadDir  string
}

// Run starts the sync goroutine and the TUI and blocks until the user
// quits or the program receives a termination signal.
func Run(cfg Config) error {
	updates := make(chan any, 64)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sync := syncer.New(cfg.Client, cfg.PollInterval, updates)
	go sync.Run(ctx)

	model := New(cfg.Client, sync, updates, cfg.ServerURL, cfg.DownloadDir)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		p.Quit()
	}()

	_, err := p.Run()
	cancel() // stops the sync goroutine if the TUI exits first
	return err
}
