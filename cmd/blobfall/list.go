package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blobfall/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available modes",
	Long:  `Shows every registered blobfall mode.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()
	modes := registry.List()
	if len(modes) == 0 {
		fmt.Fprintln(out, "No modes available.")
		return
	}

	maxIDLen, maxTitleLen := 2, 5
	for _, m := range modes {
		maxIDLen = max(maxIDLen, len(m.ID))
		maxTitleLen = max(maxTitleLen, len(m.Title))
	}

	fmt.Fprintln(out, "Available modes:")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-*s  %-*s  %4s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Cols", "Pieces")
	fmt.Fprintf(out, "  %-*s  %-*s  %4s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "----", "------")
	for _, m := range modes {
		fmt.Fprintf(out, "  %-*s  %-*s  %4d  %s\n", maxIDLen, m.ID, maxTitleLen, m.Title, m.Cols, m.ShapeList())
		if m.Blurb != "" {
			fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "", m.Blurb)
		}
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'blobfall play <id>' to play a mode.")
}
