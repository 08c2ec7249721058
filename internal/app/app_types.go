package app

// HistoryItem is the frontend view of an undo snapshot.
type HistoryItem struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	CreatedAt int64  `json:"createdAt"`
}

// PaletteOption is one pion the placement panel offers.
type PaletteOption struct {
	Color string `json:"color"`
	Size  string `json:"size"`
	Image string `json:"image"`
}
