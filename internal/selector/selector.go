// Package selector picks the representative images of a product folder:
// one cover image followed by up to three detail images, backfilled from the
// rest of the folder when the keyword groups come up short.
package selector

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Slots is the maximum number of images picked per folder
const Slots = 4

// NoNumber is the sort key of names without any digit run
const NoNumber = 9999

// Roles recorded for each picked image
const (
	RoleCover  = "cover"
	RoleDetail = "detail"
	RoleFill   = "fill"
)

// CoverKeywords mark a file as a cover (thumbnail) candidate
var CoverKeywords = []string{"ㄷㅍ", "대표", "thumb", "cover"}

// DetailKeywords mark a file as a detail image candidate
var DetailKeywords = []string{"메인 이미지", "상세", "detail", "main"}

var (
	digitRunRE = regexp.MustCompile(`\p{Nd}+`)

	coverFolded  = foldAll(CoverKeywords)
	detailFolded = foldAll(DetailKeywords)
)

// Choice is one picked file name and the rule that picked it
type Choice struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// ExtractNum returns the value of the last digit run in name, or NoNumber when
// the name has no digits. Any Unicode decimal digit counts, so fullwidth
// digits typed through an IME read the same as ASCII ones. Runs that overflow int saturate to math.MaxInt.
func ExtractNum(name string) int {
	run := lastDigitRun(name)
	if run == "" {
		return NoNumber
	}
	n, err := strconv.Atoi(run)
	if err != nil {
		return math.MaxInt
	}
	return n
}

// IsCover reports whether name contains any cover keyword (case-insensitive)
func IsCover(name string) bool {
	return containsAny(fold(name), coverFolded)
}

// IsDetail reports whether name contains any detail keyword (case-insensitive)
func IsDetail(name string) bool {
	return containsAny(fold(name), detailFolded)
}

// PickFour returns at most Slots distinct names from names: the first cover,
// then details in order, then any remaining names as filler.
func PickFour(names []string) []string {
	choices := Pick(names)
	out := make([]string, len(choices))
	for i, c := range choices {
		out[i] = c.Name
	}
	return out
}

// Pick is PickFour with the role of every picked name.
//
// Every group is ordered by (ExtractNum, name), so the result does not depend
// on the order of names. Cover and detail membership is not exclusive; a name
// that matches both can only be picked once.
func Pick(names []string) []Choice {
	all := sortedUnique(names)

	var covers, details []string
	for _, n := range all {
		if IsCover(n) {
			covers = append(covers, n)
		}
		if IsDetail(n) {
			details = append(details, n)
		}
	}

	chosen := make([]Choice, 0, Slots)
	seen := make(map[string]bool, Slots)
	add := func(name, role string) {
		chosen = append(chosen, Choice{Name: name, Role: role})
		seen[name] = true
	}

	if len(covers) > 0 {
		add(covers[0], RoleCover)
	}

	for _, n := range details {
		if len(chosen) >= Slots {
			break
		}
		if !seen[n] {
			add(n, RoleDetail)
		}
	}

	for _, n := range all {
		if len(chosen) >= Slots {
			break
		}
		if !seen[n] {
			add(n, RoleFill)
		}
	}

	if len(chosen) > Slots {
		chosen = chosen[:Slots]
	}
	return chosen
}

// Sort orders names in place by (ExtractNum, name)
func Sort(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		return keyOf(names[i]).less(keyOf(names[j]))
	})
}

func sortedUnique(names []string) []string {
	all := append([]string(nil), names...)
	Sort(all)

	out := all[:0]
	for i, n := range all {
		if i > 0 && n == all[i-1] {
			continue
		}
		out = append(out, n)
	}
	return out
}

// sortKey compares the last digit run as an arbitrary-size integer, so
// ordering never depends on int overflow.
type sortKey struct {
	digits string
	name   string
}

func keyOf(name string) sortKey {
	run := lastDigitRun(name)
	if run == "" {
		run = strconv.Itoa(NoNumber)
	}
	run = strings.TrimLeft(run, "0")
	if run == "" {
		run = "0"
	}
	return sortKey{digits: run, name: name}
}

func (a sortKey) less(b sortKey) bool {
	if len(a.digits) != len(b.digits) {
		return len(a.digits) < len(b.digits)
	}
	if a.digits != b.digits {
		return a.digits < b.digits
	}
	return a.name < b.name
}

func lastDigitRun(name string) string {
	runs := digitRunRE.FindAllString(name, -1)
	if len(runs) == 0 {
		return ""
	}
	run, _ := ASCIIDigits(runs[len(runs)-1])
	return run
}

// ASCIIDigits rewrites a string of Unicode decimal digits with ASCII digits.
// It reports false when s is empty or contains anything else.
func ASCIIDigits(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		d, ok := digitValue(r)
		if !ok {
			return "", false
		}
		b.WriteByte('0' + d)
	}
	return b.String(), true
}

// digitValue relies on decimal digits being encoded in contiguous runs
// starting at zero, so every range of unicode.Nd begins with a zero.
func digitValue(r rune) (byte, bool) {
	if r >= '0' && r <= '9' {
		return byte(r - '0'), true
	}
	if !unicode.IsDigit(r) {
		return 0, false
	}
	for _, rg := range unicode.Nd.R16 {
		if lo := rune(rg.Lo); r >= lo && r <= rune(rg.Hi) {
			return byte((r - lo) % 10), true
		}
	}
	for _, rg := range unicode.Nd.R32 {
		if lo := rune(rg.Lo); r >= lo && r <= rune(rg.Hi) {
			return byte((r - lo) % 10), true
		}
	}
	return 0, false
}

// fold applies NFC before lower-casing so names saved in decomposed form
// (macOS file systems) still match the Hangul keywords.
func fold(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}

func foldAll(keywords []string) []string {
	out := make([]string, len(keywords))
	for i, k := range keywords {
		out[i] = fold(k)
	}
	return out
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
