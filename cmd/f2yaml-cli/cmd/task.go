package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"f2yaml/internal/application/commands"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Classify links as tasks",
}

var taskIsCmd = &cobra.Command{
	Use:   "is <link>",
	Short: "Check whether a link addresses a task",
	Long: `Check whether a link addresses a task: a key holding one of the
configured status words (TODO, DOING, DONE, BLOCKED by default).

Links running through a sequence index are never tasks themselves.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		result, err := commands.NewIsTaskCommand(GetEngine(), args[0]).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var taskOwnerCmd = &cobra.Command{
	Use:   "owner <link>",
	Short: "Print the task owning a link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		result, err := commands.NewOwnerCommand(GetEngine(), args[0]).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	taskCmd.AddCommand(taskIsCmd)
	taskCmd.AddCommand(taskOwnerCmd)
	rootCmd.AddCommand(taskCmd)
}
