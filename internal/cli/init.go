package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const starterNurfile = `tasks:
  default:
    dependencies: [build]

  build:
    commands:
      - sh: echo "build the project here"
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter task file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.Target.File
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
		if err := os.WriteFile(path, []byte(starterNurfile), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
