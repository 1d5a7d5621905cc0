package cli

import (
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/turtacn/ChemSDS/pkg/types/common"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previously generated documents, newest first",
		Long:  "History reads the generated-document store. It requires either a remote\nserver (--server) or a configured database; the in-process pipeline\nwithout a database returns an empty list.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			records, err := cliCtx.Runner.History(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if outputFormat(cmd) == "json" {
				return printJSON(cmd, records)
			}

			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No documents found.")
				return nil
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"ID", "Formula", "SMILES", "Complete", "Generated"})
			for _, rec := range records {
				table.Append([]string{
					string(rec.ID),
					rec.Formula,
					rec.SMILES,
					fmt.Sprintf("%t", rec.Complete),
					formatTimestamp(rec.GeneratedAt),
				})
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of documents to list")
	return cmd
}

func formatTimestamp(ts common.Timestamp) string {
	return time.Time(ts).Format("2006-01-02 15:04:05")
}

//Personal.AI order the ending
