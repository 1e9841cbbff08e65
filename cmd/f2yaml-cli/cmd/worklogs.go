package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"f2yaml/internal/application/commands"
)

var worklogsCmd = &cobra.Command{
	Use:   "worklogs",
	Short: "Copy the standup report into each task's WorkLog",
	Long: `Stop the running task, then append every Was entry of the standup
report to the WorkLog of its task as [user, duration, status, timestamp].

Each task file is saved right after its entry. Entries already logged with
the same user and timestamp are skipped, so the command can be rerun.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		result, err := commands.NewGenerateWorkLogsCommand(GetEngine(), GetStore()).Execute(ctx)
		if result != nil && result.Stopped != nil {
			fmt.Println(result.Stopped.Message)
		}
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(worklogsCmd)
}
