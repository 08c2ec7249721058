package domain

import "time"

// HistoryLimit is the number of undo snapshots kept per session.
const HistoryLimit = 50

// HistoryEntry is a full pre-image of the board taken before a mutation.
type HistoryEntry struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Board     Board     `json:"board"`
	CreatedAt time.Time `json:"createdAt"`
}

// History is a bounded stack of snapshots. When full, the oldest entry
// is evicted first.
type History struct {
	entries []HistoryEntry
	limit   int
}

func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = HistoryLimit
	}
	return &History{limit: limit}
}

func (h *History) Push(e HistoryEntry) {
	h.entries = append(h.entries, e)
	if over := len(h.entries) - h.limit; over > 0 {
		h.entries = append(h.entries[:0:0], h.entries[over:]...)
	}
}

// Pop removes and returns the most recent entry.
func (h *History) Pop() (HistoryEntry, bool) {
	if len(h.entries) == 0 {
		return HistoryEntry{}, false
	}
	last := h.entries[len(h.entries)-1]
	h.entries = h.entries[:len(h.entries)-1]
	return last, true
}

func (h *History) Len() int { return len(h.entries) }

// Entries returns deep copies of the snapshots, oldest first.
func (h *History) Entries() []HistoryEntry {
	out := make([]HistoryEntry, len(h.entries))
	for i, e := range h.entries {
		e.Board = e.Board.Clone()
		out[i] = e
	}
	return out
}

func (h *History) Clear() { h.entries = nil }
