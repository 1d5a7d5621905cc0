package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/turtacn/ChemSDS/pkg/errors"
)

// NewSectionCmd creates the section command.
func NewSectionCmd() *cobra.Command {
	var fetch bool

	cmd := &cobra.Command{
		Use:   "section <SMILES> <number>",
		Short: "Generate a single section of the Safety Data Sheet",
		Long:  "Section runs the full pipeline and prints one of the 16 sections.\nThe content is identical to the corresponding section of a full generate\nrun with the same input.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			number, err := strconv.Atoi(args[1])
			if err != nil {
				return errors.Newf(errors.ErrCodeInputInvalidSection, "section number %q is not an integer", args[1])
			}

			view, err := cliCtx.Runner.Section(cmd.Context(), args[0], number, fetch)
			if err != nil {
				return err
			}

			if outputFormat(cmd) == "json" {
				return printJSON(cmd, view)
			}
			printSection(cmd, view)
			return nil
		},
	}

	cmd.Flags().BoolVar(&fetch, "fetch", false, "enable external data source lookups")
	return cmd
}

//Personal.AI order the ending
