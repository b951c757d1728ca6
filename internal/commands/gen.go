package commands

import (
	"github.com/spf13/cobra"
)

func newGenCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen [patterns...]",
		Short: "Generate UpdateStruct methods",
		Long: `Loads the packages matched by the given patterns (default ".") and writes
one <package>_structupdate.go file per package with annotated structs.

Example:
  struct-update gen
  struct-update gen ./...
  struct-update gen --dry-run ./internal/model`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runner(cmd).Generate(cmd.Context(), args...)
		},
	}

	cmd.Flags().StringP("output", "o", "", "Generated file name (default <package>_structupdate.go)")
	cmd.Flags().String("dir", "", "Write generated files to this directory instead of the package directory")
	cmd.Flags().Bool("dry-run", false, "Print generated code to stdout instead of writing files")
	cmd.Flags().Bool("keep-going", false, "Write methods for valid structs even when others have errors")
	cmd.Flags().StringSlice("tags", nil, "Build tags used when loading packages")

	return cmd
}

func newInspectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [patterns...]",
		Short: "Print parsed directives and planned updates as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runner(cmd).Inspect(cmd.Context(), args...)
		},
	}

	cmd.Flags().StringSlice("tags", nil, "Build tags used when loading packages")

	return cmd
}
