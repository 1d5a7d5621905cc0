package cli

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	sdstypes "github.com/turtacn/ChemSDS/pkg/types/sds"
)

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	var fetch bool

	cmd := &cobra.Command{
		Use:   "generate <SMILES>",
		Short: "Generate a full 16-section Safety Data Sheet",
		Long:  "Generate resolves the SMILES input to a canonical molecular identity,\ngathers properties, classifies hazards, and prints the assembled document.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			view, err := cliCtx.Runner.Generate(cmd.Context(), args[0], fetch)
			if err != nil {
				return err
			}

			if outputFormat(cmd) == "json" {
				return printJSON(cmd, view)
			}
			printDocument(cmd, view, cliCtx.Verbose)
			return nil
		},
	}

	cmd.Flags().BoolVar(&fetch, "fetch", false, "enable external data source lookups")
	return cmd
}

// printDocument renders a document view for terminal output. Verbose mode
// includes every field of every section.
func printDocument(cmd *cobra.Command, view *sdstypes.DocumentView, verbose bool) {
	out := cmd.OutOrStdout()

	bold := color.New(color.Bold)
	bold.Fprintln(out, "SAFETY DATA SHEET")
	fmt.Fprintf(out, "Document ID:      %s\n", view.ID)
	fmt.Fprintf(out, "Input SMILES:     %s\n", view.Identity.InputSMILES)
	fmt.Fprintf(out, "Canonical SMILES: %s\n", view.Identity.CanonicalSMILES)
	fmt.Fprintf(out, "Formula:          %s\n", view.Identity.Formula)
	fmt.Fprintf(out, "Molecular Weight: %.2f g/mol\n", view.Identity.MolecularWeight)
	if view.Identity.Name != "" {
		fmt.Fprintf(out, "Name:             %s\n", view.Identity.Name)
	}
	fmt.Fprintf(out, "Complete:         %t\n\n", view.Complete)

	if verbose {
		for _, section := range view.Sections {
			printSection(cmd, section)
			fmt.Fprintln(out)
		}
		return
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Section", "Title", "Fields", "Complete"})
	for _, section := range view.Sections {
		table.Append([]string{
			strconv.Itoa(section.Number),
			section.Title,
			strconv.Itoa(len(section.Fields)),
			strconv.FormatBool(section.Complete),
		})
	}
	table.Render()
}

// printSection renders a single section with all fields.
func printSection(cmd *cobra.Command, section sdstypes.SectionView) {
	out := cmd.OutOrStdout()

	bold := color.New(color.Bold)
	bold.Fprintf(out, "SECTION %d: %s\n", section.Number, section.Title)

	if len(section.Fields) == 0 {
		fmt.Fprintln(out, "  (no data)")
		return
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Field", "Value", "Unit", "Source"})
	for _, field := range section.Fields {
		table.Append([]string{field.Key, field.Value, field.Unit, string(field.Source)})
	}
	table.Render()

	for _, note := range section.Notes {
		fmt.Fprintf(out, "  Note: %s\n", note)
	}
}

//Personal.AI order the ending
