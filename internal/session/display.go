package session

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

const noProducts = "No products."

var tableHeaders = []any{"ID", "Name", "Category", "Price", "Quantity"}

// Numbers right, text left.
var columnAlignment = []tw.Align{tw.AlignRight, tw.AlignLeft, tw.AlignLeft, tw.AlignRight, tw.AlignRight}

// renderRecords writes records as a table, or a notice when there are none.
func renderRecords(w io.Writer, records []types.Record) error {
	if len(records) == 0 {
		_, err := io.WriteString(w, noProducts+"\n")
		return err
	}

	config := tablewriter.Config{}
	config.Row.Alignment = tw.CellAlignment{PerColumn: columnAlignment}
	table := tablewriter.NewTable(w, tablewriter.WithConfig(config))
	table.Header(tableHeaders...)
	for _, r := range records {
		row := []any{
			strconv.Itoa(r.ID),
			r.Name,
			r.Category,
			r.Price.StringFixed(types.PricePlaces),
			strconv.Itoa(r.Quantity),
		}
		if err := table.Append(row...); err != nil {
			return err
		}
	}
	return table.Render()
}
