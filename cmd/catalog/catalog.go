package catalog

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/Alijeyrad/angket_backend/internal/instrument"
)

func NewCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the questionnaire",
	}

	cmd.AddCommand(NewListCommand())

	return cmd
}

func NewListCommand() *cobra.Command {
	var construct string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the instrument items as a table",
		Example: `  angket catalog list
  angket catalog list --construct AKAL`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := instrument.Default()
			k := instrument.Construct(construct)
			if k != "" && !cat.HasConstruct(k) {
				return fmt.Errorf("unknown construct %q (want one of %v)", construct, cat.Constructs())
			}
			render(cmd.OutOrStdout(), cat.Filter(k))
			return nil
		},
	}

	cmd.Flags().StringVar(&construct, "construct", "", "only list items of this construct (HATI, AKAL, JASAD)")

	return cmd
}

func render(w io.Writer, items []instrument.Item) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Construct", "Subdimension", "Statement"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, it := range items {
		table.Append([]string{strconv.Itoa(it.ID), string(it.Construct), it.Subdimension, it.Statement})
	}
	table.SetFooter([]string{"", "", "Items", strconv.Itoa(len(items))})
	table.Render()
}
