package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/agusx1211/agentwatch/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download the full agent log export",
	Long: `Download the server's full log export as a JSON file, or print it to
stdout with --preview. The file lands in --download-dir (or the configured
download directory), named by the server when it provides a filename.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().Bool("system", false, "Include system messages")
	exportCmd.Flags().Bool("debug-events", false, "Include debug events")
	exportCmd.Flags().Bool("preview", false, "Print the export to stdout instead of saving")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	client, cliOpts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}

	includeSystem, _ := cmd.Flags().GetBool("system")
	debugEvents, _ := cmd.Flags().GetBool("debug-events")
	preview, _ := cmd.Flags().GetBool("preview")
	opts := export.Options{IncludeSystem: includeSystem, DebugEvents: debugEvents}

	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	if preview {
		text, err := export.Preview(ctx, client, opts)
		if err != nil {
			return err
		}
		fmt.Println(text)
		return nil
	}

	path, err := export.Download(ctx, client, cliOpts.downloadDir, opts)
	if err != nil {
		return err
	}
	fmt.Println("Saved", path)
	return nil
}
