package source

import (
	"sort"
	"strings"

	"github.com/seysony91-ship-it/product-images/internal/selector"
)

// DefaultExtensions are the file suffixes treated as images
var DefaultExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}

// Filter decides which file names count as images
type Filter struct {
	exts map[string]bool
}

// NewFilter builds a Filter for the given suffixes. A missing leading dot is
// added and matching ignores case. An empty list means DefaultExtensions.
func NewFilter(exts []string) Filter {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	f := Filter{exts: make(map[string]bool, len(exts))}
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		f.exts[e] = true
	}
	return f
}

// Match reports whether name is an image file name
func (f Filter) Match(name string) bool {
	if name == ".DS_Store" {
		return false
	}
	exts := f.exts
	if exts == nil {
		exts = NewFilter(nil).exts
	}
	return exts[strings.ToLower(Suffix(name))]
}

// Suffix returns the final extension of a base name including the dot.
// Leading-dot names such as ".hidden" and names ending in a dot have none.
func Suffix(name string) string {
	i := strings.LastIndex(name, ".")
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return name[i:]
}

// SortFolders orders folder names in place: names made only of decimal digits
// come first by numeric value, everything else follows in lexical order.
func SortFolders(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		return folderLess(names[i], names[j])
	})
}

func folderLess(a, b string) bool {
	da, an := selector.ASCIIDigits(a)
	db, bn := selector.ASCIIDigits(b)
	if an != bn {
		return an
	}
	if an {
		ta, tb := trimZeros(da), trimZeros(db)
		if len(ta) != len(tb) {
			return len(ta) < len(tb)
		}
		if ta != tb {
			return ta < tb
		}
	}
	return a < b
}

func trimZeros(s string) string {
	t := strings.TrimLeft(s, "0")
	if t == "" {
		return "0"
	}
	return t
}
