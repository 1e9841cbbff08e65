package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"f2yaml/internal/application/commands"
)

var csvFields []string

var csvCmd = &cobra.Command{
	Use:   "csv <link>",
	Short: "Print the task owning a link as one CSV line",
	Long: `Print the task owning a link as one CSV line.

Fields come from --field, else from csv_fields in the config. Built-in
fields are TaskStatus, SummaryLink, IdLink and Task; any other name is read
from the task's own keys.

Examples:
  f2yaml-cli csv '-->Work/ProjectA//tasks.T-1.notes<'
  f2yaml-cli csv '-->Work/ProjectA//tasks.T-1<' -f TaskStatus -f IdLink -f Id`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		result, err := commands.NewCSVLineCommand(GetEngine(), args[0], csvFields).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	csvCmd.Flags().StringArrayVarP(&csvFields, "field", "f", nil, "field to print (repeatable)")
	rootCmd.AddCommand(csvCmd)
}
