// Package grouping partitions recording file records into per-contact
// groups. Grouping is a pure transform: every invocation recomputes the
// groups from scratch and never mutates its input.
package grouping

import (
	"sort"

	"github.com/callvault/callvault/internal/recording"
)

// unknownKey collects every record whose name carries no phone number.
const unknownKey = "unknown"

// unknownName is the display name for records with no recoverable identity.
const unknownName = "Unknown"

// Resolver looks up a display name for a normalized phone number.
// *contacts.Resolver satisfies it.
type Resolver interface {
	Resolve(phone string) (string, bool)
}

// ContactGroup aggregates the file records attributed to one caller.
type ContactGroup struct {
	// ContactName is the resolved display name, the raw phone number,
	// or "Unknown" when neither parses.
	ContactName string
	// Phone is the normalized phone number, or "" for the unknown group.
	Phone string
	// Files holds the group's records in source listing order.
	Files []recording.FileRecord
}

// Group partitions files into ContactGroups keyed by embedded phone number
// (or "unknown" when absent). The group's display name is chosen per file
// with priority: filename label, contact lookup, raw phone, "Unknown" —
// but only the first file seen for a key fixes the group's identity; later
// files with the same key append to Files without overwriting it, even if
// they carry a different label. Groups are emitted sorted by ContactName.
func Group(files []recording.FileRecord, resolver Resolver) []ContactGroup {
	byKey := make(map[string]*ContactGroup)
	order := make([]string, 0)

	for _, f := range files {
		parsed := recording.ParseName(f.Name)

		key := parsed.Phone
		if key == "" {
			key = unknownKey
		}

		g, ok := byKey[key]
		if !ok {
			g = &ContactGroup{
				ContactName: displayName(parsed, resolver),
				Phone:       parsed.Phone,
			}
			byKey[key] = g
			order = append(order, key)
		}
		g.Files = append(g.Files, f)
	}

	groups := make([]ContactGroup, 0, len(order))
	for _, key := range order {
		groups = append(groups, *byKey[key])
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].ContactName < groups[j].ContactName
	})
	return groups
}

// displayName picks the contact name for a parsed file name.
func displayName(parsed recording.ParsedName, resolver Resolver) string {
	if parsed.NameHint != "" {
		return parsed.NameHint
	}
	if parsed.Phone == "" {
		return unknownName
	}
	if resolver != nil {
		if name, ok := resolver.Resolve(parsed.Phone); ok {
			return name
		}
	}
	return parsed.Phone
}
