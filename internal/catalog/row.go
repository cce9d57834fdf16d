// Package catalog writes and reads the per-folder image URL catalog.
package catalog

import (
	"net/url"
	"path"

	"github.com/seysony91-ship-it/product-images/internal/models"
	"github.com/seysony91-ship-it/product-images/internal/selector"
)

// Row is one catalog line: a folder and its four image slots
type Row struct {
	Folder string `parquet:"folder" json:"folder"`
	URL1   string `parquet:"url_1" json:"url_1"`
	URL2   string `parquet:"url_2" json:"url_2"`
	URL3   string `parquet:"url_3" json:"url_3"`
	URL4   string `parquet:"url_4" json:"url_4"`
	File1  string `parquet:"file_1" json:"file_1,omitempty"`
	File2  string `parquet:"file_2" json:"file_2,omitempty"`
	File3  string `parquet:"file_3" json:"file_3,omitempty"`
	File4  string `parquet:"file_4" json:"file_4,omitempty"`
}

// URLHeader and FileHeader are the CSV column names after "folder"
var (
	URLHeader  = []string{"url_1", "url_2", "url_3", "url_4"}
	FileHeader = []string{"file_1", "file_2", "file_3", "file_4"}
)

// NewRow builds a row from picked entries in slot order. Slots beyond the
// entries are left empty and extra entries are dropped.
func NewRow(folder string, entries []models.Entry) Row {
	r := Row{Folder: folder}
	urls := r.urlFields()
	files := r.fileFields()
	for i, e := range entries {
		if i >= selector.Slots {
			break
		}
		*urls[i] = e.URL
		*files[i] = e.Name
	}
	return r
}

// URLs returns the four URL slots
func (r Row) URLs() []string {
	return []string{r.URL1, r.URL2, r.URL3, r.URL4}
}

// Files returns the four file name slots
func (r Row) Files() []string {
	return []string{r.File1, r.File2, r.File3, r.File4}
}

// Filled counts non-empty URL slots
func (r Row) Filled() int {
	n := 0
	for _, u := range r.URLs() {
		if u != "" {
			n++
		}
	}
	return n
}

// FileName returns the file name in slot i, falling back to the last
// decoded segment of the slot's URL when the file column is empty.
func (r Row) FileName(i int) string {
	if f := r.Files()[i]; f != "" {
		return f
	}
	u := r.URLs()[i]
	if u == "" {
		return ""
	}
	if parsed, err := url.Parse(u); err == nil && parsed.Path != "" {
		return path.Base(parsed.Path)
	}
	return path.Base(u)
}

func (r *Row) urlFields() []*string {
	return []*string{&r.URL1, &r.URL2, &r.URL3, &r.URL4}
}

func (r *Row) fileFields() []*string {
	return []*string{&r.File1, &r.File2, &r.File3, &r.File4}
}
