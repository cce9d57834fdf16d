package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Format is a catalog file format
type Format string

const (
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
	FormatHTML    Format = "html"
)

// Stdout is the output path that means "write CSV to standard output"
const Stdout = "-"

// bom is prepended to CSV output so spreadsheet tools detect UTF-8
const bom = "\ufeff"

// Options control how rows are written
type Options struct {
	Format       Format
	IncludeFiles bool   // Add file_1..file_4 columns to CSV output
	Title        string // HTML preview title
}

// ParseFormat validates a format name. An empty name yields "".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatCSV, FormatParquet, FormatHTML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: csv, parquet, html)", s)
	}
}

// ResolveFormat returns explicit when set, otherwise infers the format from
// the output path extension. Unknown extensions and stdout default to CSV.
func ResolveFormat(explicit Format, outputPath string) Format {
	if explicit != "" {
		return explicit
	}
	if outputPath == Stdout {
		return FormatCSV
	}
	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".parquet":
		return FormatParquet
	case ".html", ".htm":
		return FormatHTML
	default:
		return FormatCSV
	}
}

// Write encodes rows to w in the requested format
func Write(w io.Writer, rows []Row, opts Options) error {
	switch opts.Format {
	case FormatCSV, "":
		return writeCSV(w, rows, opts.IncludeFiles)
	case FormatParquet:
		return writeParquet(w, rows)
	case FormatHTML:
		return writeHTML(w, rows, opts.Title)
	default:
		return fmt.Errorf("unsupported format: %s", opts.Format)
	}
}

// filePerm is the mode of a published catalog; temp files start out as 0600
const filePerm = 0644

// WriteFile writes rows to outputPath on fs. The file is written to a
// temporary name in the same directory and renamed into place, so a failed
// write never leaves a truncated catalog behind.
func WriteFile(fs afero.Fs, outputPath string, rows []Row, opts Options) error {
	dir := filepath.Dir(outputPath)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := afero.TempFile(fs, dir, "."+filepath.Base(outputPath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = fs.Remove(tmpName)
	}()

	if err := Write(tmp, rows, opts); err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close catalog: %w", err)
	}
	if err := fs.Chmod(tmpName, filePerm); err != nil {
		return fmt.Errorf("failed to set catalog permissions: %w", err)
	}
	if err := fs.Rename(tmpName, outputPath); err != nil {
		return fmt.Errorf("failed to move catalog into place: %w", err)
	}

	slog.Debug("Catalog written", "path", outputPath, "format", opts.Format, "rows", len(rows))
	return nil
}

func writeCSV(w io.Writer, rows []Row, includeFiles bool) error {
	if _, err := io.WriteString(w, bom); err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	writer.UseCRLF = true

	header := append([]string{"folder"}, URLHeader...)
	if includeFiles {
		header = append(header, FileHeader...)
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		record := append([]string{r.Folder}, r.URLs()...)
		if includeFiles {
			record = append(record, r.Files()...)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
