package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"f2yaml/internal/application/commands"
)

var startCmd = &cobra.Command{
	Use:   "start <link>",
	Short: "Start timing a task",
	Long: `Start timing the task a link addresses.

A running task is stopped first. The task is added to the Was list of the
standup report unless it is already there, in which case its minutes keep
accumulating.

Examples:
  f2yaml-cli start '-->Work/ProjectA//tasks.."Fix bug"<'
  f2yaml-cli start '-->Work/ProjectA//tasks.T-1<'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		startCmd := commands.NewStartTaskCommand(GetEngine(), GetStore(), args[0])
		result, err := startCmd.Execute(ctx)
		if err != nil {
			return err
		}
		if result.Stopped != nil {
			fmt.Println(result.Stopped.Message)
		}
		fmt.Println(result.Message)
		return nil
	},
}

var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause the running task, or resume it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		result, err := commands.NewPauseTaskCommand(GetStore()).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running task and record its minutes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		result, err := commands.NewStopTaskCommand(GetEngine(), GetStore()).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the running task and the selected standup report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		result, err := commands.NewStatusCommand(GetStore()).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(statusCmd)
}
