package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"f2yaml/internal/application/commands"
)

var srCmd = &cobra.Command{
	Use:   "sr",
	Short: "Manage the standup report",
}

var srSetCmd = &cobra.Command{
	Use:   "set <file> <code>",
	Short: "Select the standup report timed tasks are recorded in",
	Long: `Select a code inside a YAML file as the current standup report.

The code is a top-level key, usually a date. When it does not exist yet it
is created as {Was: [~], Next: [~]}.

Examples:
  f2yaml-cli sr set standups.yml 2025-03-04`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		srCmd := commands.NewSelectStandupCommand(GetEngine(), GetStore(), args[0], args[1])
		result, err := srCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var noteTimer string

var srNoteCmd = &cobra.Command{
	Use:   "note <link>",
	Short: "Add a link to Was without timing it",
	Long: `Add a link as a plain item of the current report's Was list.

Examples:
  f2yaml-cli sr note '-->Work/ProjectA//tasks.T-12<'
  f2yaml-cli sr note '-->Work/ProjectA//tasks.T-12<' --time '[ 15m ]'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		noteCmd := commands.NewNoteStandupCommand(GetEngine(), GetStore(), args[0], noteTimer)
		result, err := noteCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	srNoteCmd.Flags().StringVarP(&noteTimer, "time", "t", "", "Timer text appended after the link")
	srCmd.AddCommand(srSetCmd)
	srCmd.AddCommand(srNoteCmd)
	rootCmd.AddCommand(srCmd)
}
