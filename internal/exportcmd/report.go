package exportcmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/muesli/reflow/truncate"
	"github.com/seysony91-ship-it/product-images/internal/catalog"
	"github.com/seysony91-ship-it/product-images/internal/selector"
)

type catalogReport struct {
	Path    string          `json:"path"`
	Summary catalog.Summary `json:"summary"`
	Rows    []catalog.Row   `json:"rows,omitempty"`
}

func executeReport(env *Env, catalogPath, format string, detailed bool) error {
	path := env.Path(catalogPath)
	rows, err := catalog.Load(env.Fs, path)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	report := catalogReport{Path: path, Summary: catalog.Summarize(rows)}
	if detailed {
		report.Rows = rows
	}

	switch format {
	case "text":
		return printTextReport(env.Stdout, report)
	case "json":
		return printJSONReport(env.Stdout, report)
	case "csv":
		return printCSVReport(env.Stdout, rows)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func printTextReport(w io.Writer, report catalogReport) error {
	fmt.Fprintln(w, "========================================")
	fmt.Fprintln(w, "Image Catalog Report")
	fmt.Fprintln(w, "========================================")
	fmt.Fprintf(w, "Catalog: %s\n", report.Path)

	printSummary(w, report.Summary)

	if len(report.Summary.ShortFolders) > 0 {
		fmt.Fprintln(w, "\nFolders with fewer than four images:")
		for _, f := range report.Summary.ShortFolders {
			fmt.Fprintf(w, "  %s\n", f)
		}
	}
	if len(report.Summary.NoCoverFolders) > 0 {
		fmt.Fprintln(w, "\nFolders without a cover image first:")
		for _, f := range report.Summary.NoCoverFolders {
			fmt.Fprintf(w, "  %s\n", f)
		}
	}

	if len(report.Rows) > 0 {
		fmt.Fprintln(w, "\nDetailed Results:")
		fmt.Fprintln(w, "========================================")
		for i, r := range report.Rows {
			fmt.Fprintf(w, "\n[%d] Folder: %s\n", i+1, r.Folder)
			for slot, u := range r.URLs() {
				if u == "" {
					continue
				}
				fmt.Fprintf(w, "  %d. %s\n", slot+1, r.FileName(slot))
				fmt.Fprintf(w, "     %s\n", truncate.StringWithTail(u, 100, "..."))
			}
		}
	}

	return nil
}

func printJSONReport(w io.Writer, report catalogReport) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func printCSVReport(w io.Writer, rows []catalog.Row) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"folder", "images", "first_file", "has_cover"}); err != nil {
		return err
	}
	for _, r := range rows {
		first := r.FileName(0)
		record := []string{
			r.Folder,
			strconv.Itoa(r.Filled()),
			first,
			strconv.FormatBool(first != "" && selector.IsCover(first)),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
