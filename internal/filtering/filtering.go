// Package filtering applies multi-criterion filters over grouped
// recordings. All criteria are optional and combine as a conjunction;
// the four dimensions are independent, so filters commute and are
// idempotent.
package filtering

import (
	"github.com/callvault/callvault/internal/grouping"
	"github.com/callvault/callvault/internal/recording"
)

// Spec is a filter over grouped recordings. Zero values mean "no
// constraint" for that dimension.
type Spec struct {
	// ContactName, when non-empty, keeps only the group whose name
	// matches exactly.
	ContactName string
	// Month (1-12), when set, keeps files whose timestamp falls in
	// that month.
	Month int
	// Day (1-31), when set, keeps files whose timestamp falls on that
	// day of month.
	Day int
	// MinDurationSec, when set, keeps files whose estimated duration is
	// at least this many seconds.
	MinDurationSec int64
}

// IsZero reports whether the spec imposes no constraints.
func (s Spec) IsZero() bool {
	return s.ContactName == "" && s.Month == 0 && s.Day == 0 && s.MinDurationSec == 0
}

// Apply filters groups by the spec. The contact-name check runs at group
// level before any per-file scan; the per-file checks then prune each
// surviving group's files. Groups left with no files are dropped. Input
// ordering is preserved; the group sort is not reapplied.
func Apply(groups []grouping.ContactGroup, spec Spec) []grouping.ContactGroup {
	if spec.IsZero() {
		return groups
	}

	out := make([]grouping.ContactGroup, 0, len(groups))
	for _, g := range groups {
		if spec.ContactName != "" && g.ContactName != spec.ContactName {
			continue
		}

		files := make([]recording.FileRecord, 0, len(g.Files))
		for _, f := range g.Files {
			if matches(f, spec) {
				files = append(files, f)
			}
		}
		if len(files) == 0 {
			continue
		}

		g.Files = files
		out = append(out, g)
	}
	return out
}

// matches applies the per-file criteria. A record with a zero timestamp
// never matches a set date criterion; it is skipped rather than failing
// the whole pass.
func matches(f recording.FileRecord, spec Spec) bool {
	if spec.Month != 0 || spec.Day != 0 {
		ts := f.Timestamp()
		if ts.IsZero() {
			return false
		}
		if spec.Month != 0 && int(ts.Month()) != spec.Month {
			return false
		}
		if spec.Day != 0 && ts.Day() != spec.Day {
			return false
		}
	}

	if spec.MinDurationSec != 0 && recording.EstimateDurationSec(f.Size) < spec.MinDurationSec {
		return false
	}
	return true
}
