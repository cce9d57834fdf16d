package catalog

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Load reads a catalog written by Write back into rows. The format is
// taken from the file extension: .parquet for Parquet, anything else is CSV.
func Load(fs afero.Fs, catalogPath string) ([]Row, error) {
	f, err := fs.Open(catalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	switch ResolveFormat("", catalogPath) {
	case FormatParquet:
		info, err := f.Stat()
		if err != nil {
			return nil, fmt.Errorf("failed to stat file: %w", err)
		}
		return readParquet(f, info.Size())
	case FormatHTML:
		return nil, fmt.Errorf("cannot load HTML preview %s: use the CSV or Parquet catalog", filepath.Base(catalogPath))
	default:
		return ReadCSV(f)
	}
}

// ReadCSV parses a CSV catalog. A leading BOM is skipped, columns are
// matched by header name and the file columns are optional.
func ReadCSV(r io.Reader) ([]Row, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(bom)); err == nil && bytes.Equal(head, []byte(bom)) {
		_, _ = br.Discard(len(bom))
	}

	reader := csv.NewReader(br)
	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty catalog: missing header")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}
	if _, ok := index["folder"]; !ok {
		return nil, fmt.Errorf("invalid catalog header %v: missing folder column", header)
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog: %w", err)
		}

		get := func(name string) string {
			if i, ok := index[name]; ok && i < len(record) {
				return record[i]
			}
			return ""
		}

		r := Row{Folder: get("folder")}
		urls, files := r.urlFields(), r.fileFields()
		for i := range URLHeader {
			*urls[i] = get(URLHeader[i])
			*files[i] = get(FileHeader[i])
		}
		rows = append(rows, r)
	}

	slog.Debug("Read CSV catalog", "rows", len(rows), "columns", len(header))
	return rows, nil
}
