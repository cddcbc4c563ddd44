// Package cli wires the cobra command tree: the bare command launches the
// interactive watch TUI, subcommands cover headless use.
package cli

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/agusx1211/agentwatch/internal/buildinfo"
	"github.com/agusx1211/agentwatch/internal/debug"
	"github.com/agusx1211/agentwatch/internal/watchtui"
)

const (
	colorReset = "\033[0m"
	colorBold  = "\033[1m"
	colorDim   = "\033[2m"
	colorRed   = "\033[31m"

	styleBoldCyan  = "\033[1;36m"
	styleBoldWhite = "\033[1;37m"
)

var rootCmd = &cobra.Command{
	Use:   "agentwatch",
	Short: "Live supervision console for agent runs",
	Long: styleBoldCyan + `agentwatch` + colorReset + ` v` + buildinfo.Current().Version + `

  Watch a running agent hierarchy from your terminal: the supervisor chat,
  each agent's context transcript, and the live event feed, all kept in
  sync against the supervision server.

` + colorBold + `Usage:` + colorReset + `
  agentwatch                      Launch the interactive console
  agentwatch agents               Print the agent tree and exit
  agentwatch export -o ./logs     Download the full event log
  agentwatch export --preview     Print the export to stdout`,

	RunE: func(cmd *cobra.Command, args []string) error {
		if !isatty.IsTerminal(os.Stdout.Fd()) {
			return fmt.Errorf("stdout is not a terminal; use %sagentwatch agents%s or %sagentwatch export%s instead",
				styleBoldWhite, colorReset, styleBoldWhite, colorReset)
		}
		client, opts, err := resolveOptions(cmd)
		if err != nil {
			return err
		}
		return watchtui.Run(watchtui.Config{
			Client:       client,
			ServerURL:    opts.serverURL,
			PollInterval: opts.interval,
			DownloadDir:  opts.downloadDir,
		})
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	pf := rootCmd.PersistentFlags()
	pf.String("server", "", "Supervision server base URL (overrides config)")
	pf.Int("interval", 0, "Poll interval in milliseconds (overrides config)")
	pf.String("download-dir", "", "Directory exported files are written to")
	pf.Bool("debug", false, "Enable verbose debug logging to ~/.agentwatch/debug/")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		debugFlag, _ := cmd.Flags().GetBool("debug")
		if !debugFlag {
			return nil
		}
		logPath, err := debug.Init()
		if err != nil {
			return fmt.Errorf("initializing debug logger: %w", err)
		}
		fmt.Fprintf(os.Stderr, "%s[debug]%s logging to %s\n", colorDim, colorReset, logPath)
		bi := buildinfo.Current()
		debug.LogKV("cli", "agentwatch starting",
			"version", bi.Version,
			"commit", bi.CommitHash,
			"build_date", bi.BuildDate,
			"pid", os.Getpid(),
			"command", cmd.Name(),
			"args", args,
		)
		return nil
	}
}

// Execute runs the root command.
func Execute() {
	defer debug.Close()
	if err := rootCmd.Execute(); err != nil {
		debug.Logf("cli", "exit with error: %v", err)
		fmt.Fprintf(os.Stderr, "%sError: %s%s\n", colorRed, err, colorReset)
		os.Exit(1)
	}
	debug.Log("cli", "exit success")
}
