package tracklist

import (
	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// Duplicate is a pair of entries whose labels are nearly identical.
type Duplicate struct {
	First      int
	Second     int
	Similarity float64
}

// FindDuplicates reports entry pairs whose "artist - title" labels have a
// Jaro-Winkler similarity of at least threshold. A threshold of zero or less
// disables the check. Entries are never removed.
func FindDuplicates(entries []Entry, threshold float64) []Duplicate {
	if threshold <= 0 || len(entries) < 2 {
		return nil
	}
	metric := metrics.NewJaroWinkler()
	var out []Duplicate
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			score := strutil.Similarity(entries[i].Label(), entries[j].Label(), metric)
			if score >= threshold {
				out = append(out, Duplicate{First: i, Second: j, Similarity: score})
			}
		}
	}
	return out
}
