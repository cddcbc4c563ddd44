package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/agusx1211/agentwatch/internal/agenttree"
)

var agentsCmd = &cobra.Command{
	Use:     "agents",
	Aliases: []string{"tree", "ls"},
	Short:   "Print the current agent hierarchy",
	RunE:    runAgents,
}

func init() {
	rootCmd.AddCommand(agentsCmd)
}

func runAgents(cmd *cobra.Command, args []string) error {
	client, _, err := resolveOptions(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	agents, err := client.Agents(ctx)
	if err != nil {
		return err
	}
	if len(agents) == 0 {
		fmt.Println("No agents.")
		return nil
	}

	// Headless listing ignores expansion state: show everything.
	exp := agenttree.NewExpansion()
	for _, a := range agents {
		exp.Add(a.ID)
	}
	for _, row := range agenttree.Flatten(agenttree.Build(agents), exp) {
		status := row.Node.Agent.Status
		if status == "" {
			status = "unknown"
		}
		fmt.Printf("%s%s %s [%s]\n",
			strings.Repeat("  ", row.Depth), row.Path, row.Node.Agent.ID, status)
	}
	return nil
}
