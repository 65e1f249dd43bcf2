package domain

import (
	"strings"
	"time"
)

// HistoryLimit caps the per-user search history.
const HistoryLimit = 5

// HistoryEntry is one remembered search.
type HistoryEntry struct {
	Query     string
	Timestamp time.Time
}

// SearchHistory is a bounded most-recent-first list of distinct queries.
// Case-insensitive duplicates are bumped to the front, keeping the newest
// occurrence's position and casing.
type SearchHistory struct {
	entries []HistoryEntry
}

// Add records a query. Empty queries are ignored.
func (h *SearchHistory) Add(query string, now time.Time) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}

	kept := make([]HistoryEntry, 0, len(h.entries)+1)
	kept = append(kept, HistoryEntry{Query: query, Timestamp: now})
	for _, entry := range h.entries {
		if strings.EqualFold(entry.Query, query) {
			continue
		}
		kept = append(kept, entry)
	}
	if len(kept) > HistoryLimit {
		kept = kept[:HistoryLimit]
	}
	h.entries = kept
}

// Entries returns a copy of the history, newest first.
func (h *SearchHistory) Entries() []HistoryEntry {
	return append([]HistoryEntry(nil), h.entries...)
}
