package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/turtacn/ChemSDS/pkg/errors"
	sdstypes "github.com/turtacn/ChemSDS/pkg/types/sds"
)

// NewExportCmd creates the export command.
func NewExportCmd() *cobra.Command {
	var (
		format  string
		outPath string
		fetch   bool
	)

	cmd := &cobra.Command{
		Use:   "export <SMILES>",
		Short: "Generate and download a rendered Safety Data Sheet",
		Long:  "Export runs the full pipeline and writes the rendered document to disk.\nThe output filename defaults to the server-suggested name, derived from\nthe molecular formula.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			docFormat := sdstypes.DocumentFormat(format)
			switch docFormat {
			case sdstypes.FormatJSON, sdstypes.FormatPDF:
			default:
				return errors.Newf(errors.ErrCodeInputInvalidFormat, "unsupported format %q; expected json or pdf", format)
			}

			payload, err := cliCtx.Runner.Export(cmd.Context(), args[0], docFormat, fetch)
			if err != nil {
				return err
			}

			target := outPath
			if target == "" {
				target = payload.Filename
			}
			if target == "" {
				target = "sds." + format
			}

			if err := os.WriteFile(target, payload.Data, 0o644); err != nil {
				return errors.Wrap(err, errors.ErrCodeInternal, "failed to write output file")
			}

			PrintSuccess(cmd, fmt.Sprintf("wrote %s (%d bytes, %s)", target, len(payload.Data), payload.ContentType))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "document format (json, pdf)")
	cmd.Flags().StringVar(&outPath, "out", "", "output file path (default: suggested filename)")
	cmd.Flags().BoolVar(&fetch, "fetch", false, "enable external data source lookups")
	return cmd
}

//Personal.AI order the ending
