// Package output provides utilities for formatting and displaying calculator results.
package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/iwvelando/moneywiki/pkg/constants"
	"github.com/iwvelando/moneywiki/pkg/format"
	"github.com/iwvelando/moneywiki/pkg/loans"
)

// Percent marks a value as a percentage rather than a won amount.
type Percent float64

// Row is one labelled figure of a result. Float values are won amounts.
type Row struct {
	Label string
	Value any
}

// Table is a header plus rows of values, e.g. a repayment schedule.
type Table struct {
	Header []string
	Rows   [][]any
}

// Report is a calculator result prepared for display.
type Report struct {
	Title string
	Rows  []Row
	Table *Table
	// Data is the structured result emitted by the JSON format.
	Data any
}

// Write renders the report in the requested format.
func Write(w io.Writer, outputFormat string, report Report) error {
	switch outputFormat {
	case constants.OutputFormatCSV:
		return CsvFormat(w, report)
	case constants.OutputFormatJSON:
		return JSONFormat(w, report)
	default:
		return PrettyFormat(w, report)
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, report Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if report.Title != "" {
		fmt.Fprintf(w, "--- %s ---\n", report.Title)
	}
	for _, row := range report.Rows {
		fmt.Fprintf(tw, "%s\t%s\n", row.Label, pretty(row.Value))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if report.Table == nil {
		return nil
	}
	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(report.Table.Header, "\t"))
	for _, values := range report.Table.Rows {
		cells := make([]string, len(values))
		for i, v := range values {
			cells[i] = pretty(v)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

// CsvFormat outputs in comma-separated value format: the labelled rows
// first, then the table after a blank line.
func CsvFormat(w io.Writer, report Report) error {
	fmt.Fprintf(w, `"item","value"`+"\n")
	for _, row := range report.Rows {
		fmt.Fprintf(w, "%s,%s\n", quote(row.Label), quote(plain(row.Value)))
	}
	if report.Table == nil {
		return nil
	}

	fmt.Fprintln(w)
	header := make([]string, len(report.Table.Header))
	for i, h := range report.Table.Header {
		header[i] = quote(h)
	}
	fmt.Fprintln(w, strings.Join(header, ","))
	for _, values := range report.Table.Rows {
		cells := make([]string, len(values))
		for i, v := range values {
			cells[i] = quote(plain(v))
		}
		if _, err := fmt.Fprintln(w, strings.Join(cells, ",")); err != nil {
			return err
		}
	}
	return nil
}

// JSONFormat outputs the structured result as indented JSON.
func JSONFormat(w io.Writer, report Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if report.Data != nil {
		return enc.Encode(report.Data)
	}
	rows := make(map[string]any, len(report.Rows))
	for _, row := range report.Rows {
		rows[row.Label] = row.Value
	}
	return enc.Encode(rows)
}

func pretty(v any) string {
	switch val := v.(type) {
	case float64:
		return format.Won(val)
	case Percent:
		return format.Percent(float64(val))
	case bool:
		if val {
			return "yes"
		}
		return "no"
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

func plain(v any) string {
	switch val := v.(type) {
	case float64:
		return fmt.Sprintf("%.0f", val)
	case Percent:
		return fmt.Sprintf("%.4f", float64(val))
	default:
		return fmt.Sprint(val)
	}
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// ScheduleTable lays out a repayment schedule one period per row.
func ScheduleTable(s loans.Schedule) *Table {
	t := &Table{
		Header: []string{"period", "payment", "principal", "interest", "balance"},
		Rows:   make([][]any, 0, len(s.Payments)),
	}
	for _, p := range s.Payments {
		t.Rows = append(t.Rows, []any{p.Period, p.Payment, p.Principal, p.Interest, p.RemainingPrincipal})
	}
	return t
}
