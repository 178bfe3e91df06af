package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nur-run/nur/internal/graph"
	"github.com/nur-run/nur/internal/nurfile"
)

var checkCmd = &cobra.Command{
	Use:   "check [task...]",
	Short: "Validate the task file and the requested execution plan without running anything",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := nurfile.Load(cfg.Target.File)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		plan, err := graph.Build(file.Tasks, args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		for _, entry := range plan {
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", entry.TaskID, entry.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
