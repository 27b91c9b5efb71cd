package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/panelctl/panelctl/internal/api"
)

// Kind identifies what a catalog entry describes.
type Kind string

const (
	KindEgg  Kind = "egg"
	KindNode Kind = "node"
)

// Entry wraps either an egg or a node into a single type usable by
// selection lists and list commands.
type Entry struct {
	Kind Kind
	Egg  *api.Egg
	Node *api.Node
}

// FromEgg converts an egg into a catalog entry.
func FromEgg(egg api.Egg) Entry {
	return Entry{Kind: KindEgg, Egg: &egg}
}

// FromEggs converts a slice of eggs into catalog entries.
func FromEggs(eggs []api.Egg) []Entry {
	entries := make([]Entry, 0, len(eggs))
	for _, egg := range eggs {
		entries = append(entries, FromEgg(egg))
	}
	return entries
}

// FromNode converts a node into a catalog entry.
func FromNode(node api.Node) Entry {
	return Entry{Kind: KindNode, Node: &node}
}

// FromNodes converts a slice of nodes into catalog entries.
func FromNodes(nodes []api.Node) []Entry {
	entries := make([]Entry, 0, len(nodes))
	for _, node := range nodes {
		entries = append(entries, FromNode(node))
	}
	return entries
}

// DisplayID returns the public identifier stored in drafts and sent in
// create requests. This is not the panel's storage key.
func (e Entry) DisplayID() int {
	if e.Egg != nil {
		return e.Egg.EggID
	}
	if e.Node != nil {
		return e.Node.NodeID
	}
	return 0
}

// DisplayName returns a human-friendly name for the entry.
func (e Entry) DisplayName() string {
	if e.Egg != nil {
		return e.Egg.Name
	}
	if e.Node != nil {
		if e.Node.Location != "" {
			return fmt.Sprintf("%s (%s)", e.Node.Name, e.Node.Location)
		}
		return e.Node.Name
	}
	return ""
}

// Description returns the entry's description text.
func (e Entry) Description() string {
	if e.Egg != nil {
		return e.Egg.Description
	}
	if e.Node != nil {
		return e.Node.Location
	}
	return ""
}

// Sort orders entries by display name, case-insensitively, with the
// display identifier as a tiebreaker.
func Sort(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		a := strings.ToLower(entries[i].DisplayName())
		b := strings.ToLower(entries[j].DisplayName())
		if a != b {
			return a < b
		}
		return entries[i].DisplayID() < entries[j].DisplayID()
	})
}

// Filter returns the entries whose name or description contains the
// query, case-insensitively. An empty query returns everything.
func Filter(entries []Entry, query string) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return entries
	}

	var matches []Entry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.DisplayName()), q) ||
			strings.Contains(strings.ToLower(e.Description()), q) {
			matches = append(matches, e)
		}
	}

	return matches
}

// ByDisplayID returns the entry with the given public identifier.
func ByDisplayID(entries []Entry, id int) (Entry, bool) {
	for _, e := range entries {
		if e.DisplayID() == id {
			return e, true
		}
	}
	return Entry{}, false
}
