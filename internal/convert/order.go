// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/pdiddy/refconvert/pkg/types"
)

// UnknownYear is assigned to keys without a four-digit run so they sort last.
const UnknownYear = 9999

var yearPattern = regexp.MustCompile(`[0-9]{4}`)

// ExtractYear returns the first run of four ASCII digits in key as an
// integer, or UnknownYear. The run need not be word-bounded: "ref12345"
// yields 1234.
func ExtractYear(key string) int {
	m := yearPattern.FindString(key)
	if m == "" {
		return UnknownYear
	}
	year, err := strconv.Atoi(m)
	if err != nil {
		return UnknownYear
	}
	return year
}

// OrderCitations returns the citation texts of set sorted ascending by the
// year in each key. Entries with equal years keep their document order.
// Identical texts under different keys are kept as separate entries.
func OrderCitations(set types.ReferenceSet) []string {
	type entry struct {
		year int
		text string
	}
	entries := make([]entry, len(set))
	for i, c := range set {
		entries[i] = entry{year: ExtractYear(c.Key), text: c.Text}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].year < entries[j].year
	})

	citations := make([]string, len(entries))
	for i, e := range entries {
		citations[i] = e.text
	}
	return citations
}
