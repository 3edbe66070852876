// Package output renders quotes for stdout.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"quotefetcher/internal/quote"
)

type Format string

const (
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
	FormatTable Format = "table"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatCSV, FormatTable:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want json, csv or table)", s)
}

func Write(w io.Writer, format Format, quotes []quote.Quote) error {
	switch format {
	case FormatJSON, "":
		return WriteJSON(w, quotes)
	case FormatCSV:
		return WriteCSV(w, quotes)
	case FormatTable:
		return WriteTable(w, quotes)
	}
	return fmt.Errorf("unknown output format %q", format)
}

// WriteJSON writes quotes as one JSON array line. Labels are written as-is:
// no \u escapes for non-ASCII and no HTML escaping of &, < or >.
func WriteJSON(w io.Writer, quotes []quote.Quote) error {
	if quotes == nil {
		quotes = []quote.Quote{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(quotes); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

type csvRow struct {
	ID            string `csv:"id"`
	Label         string `csv:"label"`
	Price         string `csv:"price"`
	ChangePercent string `csv:"changePercent"`
}

// WriteCSV writes a header row and one row per quote; absent numbers are
// empty cells.
func WriteCSV(w io.Writer, quotes []quote.Quote) error {
	rows := make([]csvRow, 0, len(quotes))
	for _, q := range quotes {
		rows = append(rows, csvRow{
			ID:            q.ID,
			Label:         q.Label,
			Price:         formatFloat(q.Price),
			ChangePercent: formatFloat(q.ChangePercent),
		})
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("encode csv: %w", err)
	}
	return nil
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// WriteTable writes a human-readable table with grouped thousands and a
// signed change column. Absent numbers show as "-".
func WriteTable(w io.Writer, quotes []quote.Quote) error {
	p := message.NewPrinter(language.English)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Label", "Price", "Change"})
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
	})

	for _, q := range quotes {
		price, change := "-", "-"
		if q.Price != nil {
			price = p.Sprintf("%.2f", *q.Price)
		}
		if q.ChangePercent != nil {
			change = p.Sprintf("%+.2f%%", *q.ChangePercent)
		}
		table.Append([]string{q.ID, q.Label, price, change})
	}

	table.Render()
	return nil
}
