// Package main provides the xlsxdump command, which prints worksheets of an
// .xlsx workbook as text, Markdown, HTML, JSON or YAML.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tsawler/xlsxgrid/xlsx"
	"gopkg.in/yaml.v3"
)

var (
	sheetFlag    string
	rangeFlag    string
	formatFlag   string
	delimiter    string
	useRels      bool
	inferSpans   bool
	showWarnings bool
	verbose      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "xlsxdump [input.xlsx]",
		Short: "Print the cells of an Excel workbook",
		Long: `xlsxdump decodes an .xlsx workbook and prints its worksheets as
delimited text, Markdown, HTML, JSON or YAML.`,
		Args:          cobra.ExactArgs(1),
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringVarP(&sheetFlag, "sheet", "s", "", "Sheet name or 0-based index (default: all sheets)")
	rootCmd.Flags().StringVarP(&rangeFlag, "range", "r", "", "Cell range such as A1:E10 (default: used range)")
	rootCmd.Flags().StringVarP(&formatFlag, "format", "f", "text", "Output format: text, markdown, html, json, yaml")
	rootCmd.Flags().StringVarP(&delimiter, "delimiter", "d", "\t", "Column delimiter for text output")
	rootCmd.Flags().BoolVar(&useRels, "use-rels", false, "Locate sheet parts through workbook relationships")
	rootCmd.Flags().BoolVar(&inferSpans, "infer-spans", false, "Keep rows without a spans attribute")
	rootCmd.Flags().BoolVar(&showWarnings, "warnings", false, "Print decode warnings to stderr")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log decode details to stderr")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "xlsxdump:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	opts := xlsx.DefaultOptions()
	opts.UseRelationships = useRels
	opts.InferSpans = inferSpans
	if verbose {
		opts.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	wb, err := xlsx.OpenWithOptions(args[0], opts)
	if err != nil {
		return err
	}

	if showWarnings && len(wb.Warnings()) > 0 {
		fmt.Fprintln(os.Stderr, xlsx.FormatWarnings(wb.Warnings()))
	}

	sheets, err := selectSheets(wb, sheetFlag)
	if err != nil {
		return err
	}

	tables := make([]*xlsx.Table, 0, len(sheets))
	for _, ws := range sheets {
		if rangeFlag == "" {
			tables = append(tables, ws.AsTable())
			continue
		}
		t, err := ws.AsTableRef(rangeFlag)
		if err != nil {
			return fmt.Errorf("range %q: %w", rangeFlag, err)
		}
		tables = append(tables, t)
	}

	return writeTables(cmd.OutOrStdout(), tables, formatFlag)
}

// selectSheets resolves the --sheet flag. A value that parses as an integer
// is tried as an index first and then as a name.
func selectSheets(wb *xlsx.Workbook, sel string) ([]*xlsx.Worksheet, error) {
	if sel == "" {
		sheets := make([]*xlsx.Worksheet, 0, wb.SheetCount())
		for _, ws := range wb.Sheets() {
			sheets = append(sheets, ws)
		}
		return sheets, nil
	}

	if i, err := strconv.Atoi(sel); err == nil {
		if ws, err := wb.Sheet(i); err == nil {
			return []*xlsx.Worksheet{ws}, nil
		}
	}
	ws, err := wb.SheetByName(sel)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, sel)
	}
	return []*xlsx.Worksheet{ws}, nil
}

func writeTables(w io.Writer, tables []*xlsx.Table, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(exportTables(tables))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(exportTables(tables)); err != nil {
			return err
		}
		return enc.Close()
	}

	for i, t := range tables {
		if i > 0 {
			fmt.Fprintln(w)
		}
		switch format {
		case "text":
			if len(tables) > 1 {
				fmt.Fprintf(w, "# %s\n", t.Title())
			}
			fmt.Fprintln(w, t.Text(delimiter))
		case "markdown", "md":
			fmt.Fprintf(w, "## %s\n\n", t.Title())
			fmt.Fprint(w, t.Markdown())
		case "html":
			out, err := t.HTML()
			if err != nil {
				return err
			}
			fmt.Fprintln(w, out)
		default:
			return fmt.Errorf("invalid format: %s (must be text, markdown, html, json, or yaml)", format)
		}
	}
	return nil
}

// sheetExport is the serialized form of a table for JSON and YAML output.
type sheetExport struct {
	Sheet   string   `json:"sheet" yaml:"sheet"`
	Range   string   `json:"range,omitempty" yaml:"range,omitempty"`
	Columns []string `json:"columns" yaml:"columns"`
	Rows    [][]any  `json:"rows" yaml:"rows"`
}

func exportTables(tables []*xlsx.Table) []sheetExport {
	out := make([]sheetExport, len(tables))
	for i, t := range tables {
		e := sheetExport{
			Sheet:   t.Title(),
			Columns: t.Columns(),
			Rows:    make([][]any, t.NumRows()),
		}
		if t.NumRows() > 0 {
			e.Range = t.Range().String()
		}
		for r := range e.Rows {
			e.Rows[r] = make([]any, t.NumCols())
			for c := range e.Rows[r] {
				e.Rows[r][c] = t.Cell(r, c)
			}
		}
		out[i] = e
	}
	return out
}
