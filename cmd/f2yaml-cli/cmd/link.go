package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"f2yaml/internal/adapters/editor"
	"f2yaml/internal/application/commands"
)

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Parse, resolve and generate F2YAML links",
}

var linkParseCmd = &cobra.Command{
	Use:   "parse <link>",
	Short: "Show the segments of a link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		result, err := commands.NewParseLinkCommand(GetEngine(), args[0]).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var linkResolveCmd = &cobra.Command{
	Use:   "resolve <link>",
	Short: "Print the file and line a link points at",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		result, err := commands.NewFollowCommand(GetEngine(), args[0]).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var linkAtCmd = &cobra.Command{
	Use:   "at <file:line[:col]>",
	Short: "Generate the link at a cursor position",
	Long: `Generate the link at a cursor position.

With a column, the link written under the cursor is returned. Otherwise,
or when there is none, the summary link of the key enclosing the line is
derived: status words are dropped and multi-word keys quoted.

Examples:
  f2yaml-cli link at Work/ProjectA/tasks.yml:12
  f2yaml-cli link at notes.yml:3:17`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		path, line, col, err := commands.ParsePosition(args[0])
		if err != nil {
			return err
		}
		result, err := commands.NewLinkAtCommand(GetEngine(), path, line, col).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var linkIDCmd = &cobra.Command{
	Use:   "id <link>",
	Short: "Convert a summary link to its Id form",
	Long: `Convert a summary link to its Id form: every key is replaced by its Id
field when it has one, otherwise by the key without its status word.

Examples:
  f2yaml-cli link id '-->Work/ProjectA//tasks.."Fix bug"<'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		result, err := commands.NewIDLinkCommand(GetEngine(), args[0]).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var linkCopyCmd = &cobra.Command{
	Use:   "copy <file:line[:col]>",
	Short: "Copy the link at a cursor position to the clipboard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		path, line, col, err := commands.ParsePosition(args[0])
		if err != nil {
			return err
		}
		result, err := commands.NewLinkAtCommand(GetEngine(), path, line, col).Execute(ctx)
		if err != nil {
			return err
		}
		if err := (editor.Clipboard{}).WriteAll(result.Message); err != nil {
			return err
		}
		fmt.Println("Copied", result.Message)
		return nil
	},
}

func init() {
	linkCmd.AddCommand(linkParseCmd)
	linkCmd.AddCommand(linkResolveCmd)
	linkCmd.AddCommand(linkAtCmd)
	linkCmd.AddCommand(linkIDCmd)
	linkCmd.AddCommand(linkCopyCmd)
	rootCmd.AddCommand(linkCmd)
}
