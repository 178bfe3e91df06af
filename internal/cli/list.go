package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nur-run/nur/internal/nurfile"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the tasks declared in the task file",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := nurfile.Load(cfg.Target.File)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		for _, name := range file.SortedTaskNames() {
			task := file.Tasks[name]
			line := name
			if len(task.Dependencies) > 0 {
				line += " (depends on " + strings.Join(task.Dependencies, ", ") + ")"
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
			if task.Description != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "    %s\n", task.Description)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
