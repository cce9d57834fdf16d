package catalog

import (
	"github.com/seysony91-ship-it/product-images/internal/selector"
)

// Summary contains aggregate figures about a catalog
type Summary struct {
	Folders        int      `json:"folders"`
	Images         int      `json:"images"`           // Filled URL slots
	Capacity       int      `json:"capacity"`         // Folders times slots per folder
	ShortFolders   []string `json:"short_folders"`    // Fewer than four images
	NoCoverFolders []string `json:"no_cover_folders"` // First slot is not a cover-keyword file
}

// FillRate is the share of slots holding an image
func (s Summary) FillRate() float64 {
	if s.Capacity == 0 {
		return 0
	}
	return float64(s.Images) / float64(s.Capacity)
}

// Summarize computes a Summary over rows
func Summarize(rows []Row) Summary {
	s := Summary{
		Folders:        len(rows),
		Capacity:       len(rows) * selector.Slots,
		ShortFolders:   []string{},
		NoCoverFolders: []string{},
	}

	for _, r := range rows {
		filled := r.Filled()
		s.Images += filled
		if filled < selector.Slots {
			s.ShortFolders = append(s.ShortFolders, r.Folder)
		}
		if first := r.FileName(0); first == "" || !selector.IsCover(first) {
			s.NoCoverFolders = append(s.NoCoverFolders, r.Folder)
		}
	}

	return s
}
