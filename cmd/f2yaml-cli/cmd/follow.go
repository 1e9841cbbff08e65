package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"f2yaml/internal/adapters/editor"
	"f2yaml/internal/application/commands"
)

var followOpen bool

var followCmd = &cobra.Command{
	Use:   "follow <link>",
	Short: "Resolve a link and optionally open it in $EDITOR",
	Long: `Resolve a link to file:line. With --open the file is opened at that
line in $EDITOR (or $VISUAL).

Doubled quotes, as found in CSV exports, are accepted.

Examples:
  f2yaml-cli follow '-->Work/ProjectA//tasks.T-1<' --open`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		result, err := commands.NewFollowCommand(GetEngine(), args[0]).Execute(ctx)
		if err != nil {
			return err
		}
		if !followOpen {
			fmt.Println(result.Message)
			return nil
		}
		return editor.NewOpener().OpenAt(result.Path, result.Line)
	},
}

func init() {
	followCmd.Flags().BoolVarP(&followOpen, "open", "o", false, "open the file in $EDITOR")
	rootCmd.AddCommand(followCmd)
}
