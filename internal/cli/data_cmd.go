package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alexanderramin/focusboard/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newDataCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Export or import the board, stats and settings as JSON",
	}

	cmd.AddCommand(
		newDataExportCmd(app),
		newDataImportCmd(app),
	)

	return cmd
}

func newDataExportCmd(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every stored document to stdout or a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Transfer == nil {
				return fmt.Errorf("export is not available")
			}
			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}
			return app.Transfer.Export(cmd.Context(), w)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "File to write (default stdout)")

	return cmd
}

func newDataImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Replace stored documents with the ones in an export",
		Long: "Reads an export (or a browser localStorage dump with the same keys),\n" +
			"validates every document and writes them together. Keys missing from\n" +
			"the file are left alone.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Transfer == nil {
				return fmt.Errorf("import is not available")
			}
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("opening %s: %w", args[0], err)
				}
				defer f.Close()
				r = f
			}
			keys, err := app.Transfer.Import(cmd.Context(), r)
			if err != nil {
				return err
			}
			if len(keys) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Nothing to import."))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s\n", strings.Join(keys, ", "))
			return nil
		},
	}
}
