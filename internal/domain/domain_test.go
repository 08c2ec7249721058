package domain_test

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pions/internal/domain"
)

func c(row, col int) domain.Coord { return domain.Coord{Row: row, Col: col} }

var (
	redSmall  = domain.Token{Color: domain.ColorRed, Size: domain.SizeSmall}
	blueLarge = domain.Token{Color: domain.ColorBlue, Size: domain.SizeLarge}
)

// ─────────────────────────────────────────────────────────────
// Token
// ─────────────────────────────────────────────────────────────

func TestToken_JSON(t *testing.T) {
	data, err := json.Marshal(blueLarge)
	require.NoError(t, err)
	assert.JSONEq(t, `{"color":"blue","size":"large"}`, string(data))

	var got domain.Token
	require.NoError(t, json.Unmarshal([]byte(`{"color":"yellow","size":"medium"}`), &got))
	assert.Equal(t, domain.Token{Color: domain.ColorYellow, Size: domain.SizeMedium}, got)
}

func TestToken_RejectsUnknownNames(t *testing.T) {
	var got domain.Token
	err := json.Unmarshal([]byte(`{"color":"purple","size":"small"}`), &got)
	assert.ErrorIs(t, err, domain.ErrUnknownColor)

	err = json.Unmarshal([]byte(`{"color":"red","size":"huge"}`), &got)
	assert.ErrorIs(t, err, domain.ErrUnknownSize)

	_, err = json.Marshal(domain.Token{Color: domain.Color(9)})
	assert.Error(t, err)
}

func TestToken_RequiresColorAndSize(t *testing.T) {
	var got domain.Token
	assert.ErrorIs(t, json.Unmarshal([]byte(`{}`), &got), domain.ErrUnknownColor)
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"color":"blue"}`), &got), domain.ErrUnknownSize)
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"size":"large"}`), &got), domain.ErrUnknownColor)
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"color":null,"size":"large"}`), &got), domain.ErrUnknownColor)
	assert.Error(t, json.Unmarshal([]byte(`"red"`), &got))
}

func TestParseToken(t *testing.T) {
	got, err := domain.ParseToken("green", "small")
	require.NoError(t, err)
	assert.Equal(t, "green-small", got.String())

	_, err = domain.ParseToken("red", "")
	assert.ErrorIs(t, err, domain.ErrUnknownSize)
}

func TestColorsAndSizesAreClosed(t *testing.T) {
	assert.Len(t, domain.Colors, 4)
	assert.Len(t, domain.Sizes, 3)
	for _, col := range domain.Colors {
		parsed, err := domain.ParseColor(col.String())
		require.NoError(t, err)
		assert.Equal(t, col, parsed)
	}
	assert.False(t, domain.Color(-1).Valid())
	assert.Equal(t, "Size(7)", domain.Size(7).String())
}

// ─────────────────────────────────────────────────────────────
// Board
// ─────────────────────────────────────────────────────────────

func TestCoord_Check(t *testing.T) {
	assert.NoError(t, c(0, 0).Check())
	assert.NoError(t, c(5, 3).Check())
	assert.ErrorIs(t, c(6, 0).Check(), domain.ErrOutOfBounds)
	assert.ErrorIs(t, c(0, 4).Check(), domain.ErrOutOfBounds)
	assert.ErrorIs(t, c(-1, 2).Check(), domain.ErrOutOfBounds)
}

func TestBoard_SetStoresCopy(t *testing.T) {
	var b domain.Board
	tok := redSmall
	b.Set(c(1, 1), tok)
	tok.Color = domain.ColorBlue

	got, ok := b.At(c(1, 1))
	require.True(t, ok)
	assert.Equal(t, redSmall, got)
}

func TestBoard_CloneIsDeep(t *testing.T) {
	var b domain.Board
	b.Set(c(2, 2), redSmall)
	clone := b.Clone()

	b[2][2].Color = domain.ColorGreen
	b.Set(c(0, 0), blueLarge)

	got, _ := clone.At(c(2, 2))
	assert.Equal(t, redSmall, got)
	assert.False(t, clone.Occupied(c(0, 0)))
	assert.False(t, clone.Equal(&b))
}

func TestBoard_JSONShape(t *testing.T) {
	var b domain.Board
	b.Set(c(0, 0), redSmall)

	data, err := json.Marshal(&b)
	require.NoError(t, err)

	var rows [][]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &rows))
	require.Len(t, rows, domain.Rows)
	for _, row := range rows {
		assert.Len(t, row, domain.Cols)
	}
	assert.Equal(t, "null", string(rows[5][3]))

	var back domain.Board
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Equal(&b))
}

func TestBoard_RejectsWrongShape(t *testing.T) {
	row := "[null,null,null,null]"
	fiveRows := "[" + strings.Repeat(row+",", 4) + row + "]"
	shortRow := "[" + strings.Repeat(row+",", 5) + "[null,null,null]]"

	var b domain.Board
	assert.ErrorIs(t, json.Unmarshal([]byte(fiveRows), &b), domain.ErrBadBoardShape)
	assert.ErrorIs(t, json.Unmarshal([]byte(shortRow), &b), domain.ErrBadBoardShape)
	assert.Error(t, json.Unmarshal([]byte(`"board"`), &b))
}

func TestBoard_MatchingCells(t *testing.T) {
	var b domain.Board
	b.Set(c(0, 0), redSmall)
	b.Set(c(1, 2), redSmall)
	b.Set(c(2, 3), blueLarge)

	assert.Equal(t, []domain.Coord{c(0, 0), c(1, 2)}, b.MatchingCells())
}

func TestBoard_MatchingIgnoresColorOnlyAndSizeOnly(t *testing.T) {
	var b domain.Board
	b.Set(c(0, 0), redSmall)
	b.Set(c(0, 1), domain.Token{Color: domain.ColorRed, Size: domain.SizeLarge})
	b.Set(c(0, 2), domain.Token{Color: domain.ColorBlue, Size: domain.SizeSmall})

	assert.Empty(t, b.MatchingCells())
	assert.NotNil(t, b.MatchingCells())
	assert.Empty(t, b.MatchGroups())
}

func TestBoard_MatchGroupsOrderedByFirstCell(t *testing.T) {
	var b domain.Board
	b.Set(c(0, 1), blueLarge)
	b.Set(c(1, 0), redSmall)
	b.Set(c(3, 3), redSmall)
	b.Set(c(5, 0), blueLarge)
	b.Set(c(4, 3), redSmall)

	groups := b.MatchGroups()
	require.Len(t, groups, 2)
	assert.Equal(t, blueLarge, groups[0].Token)
	assert.Equal(t, []domain.Coord{c(0, 1), c(5, 0)}, groups[0].Cells)
	assert.Equal(t, redSmall, groups[1].Token)
	assert.Equal(t, []domain.Coord{c(1, 0), c(3, 3), c(4, 3)}, groups[1].Cells)

	assert.Equal(t, []domain.Coord{c(0, 1), c(1, 0), c(3, 3), c(4, 3), c(5, 0)}, b.MatchingCells())
}

// ─────────────────────────────────────────────────────────────
// History
// ─────────────────────────────────────────────────────────────

func TestHistory_FIFOEviction(t *testing.T) {
	h := domain.NewHistory(3)
	for i := range 5 {
		h.Push(domain.HistoryEntry{ID: fmt.Sprint(i)})
	}
	require.Equal(t, 3, h.Len())

	ids := []string{}
	for _, e := range h.Entries() {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"2", "3", "4"}, ids)

	last, ok := h.Pop()
	require.True(t, ok)
	assert.Equal(t, "4", last.ID)
	assert.Equal(t, 2, h.Len())
}

func TestHistory_EntriesAreDeepCopies(t *testing.T) {
	var b domain.Board
	b.Set(c(0, 0), redSmall)
	h := domain.NewHistory(0)
	h.Push(domain.HistoryEntry{Board: b.Clone()})

	entries := h.Entries()
	entries[0].Board[0][0].Color = domain.ColorBlue
	entries[0].Board.Clear(c(0, 0))

	stored, ok := h.Pop()
	require.True(t, ok)
	got, ok := stored.Board.At(c(0, 0))
	require.True(t, ok)
	assert.Equal(t, redSmall, got)
}

func TestHistory_DefaultLimit(t *testing.T) {
	h := domain.NewHistory(0)
	for range domain.HistoryLimit + 10 {
		h.Push(domain.HistoryEntry{})
	}
	assert.Equal(t, domain.HistoryLimit, h.Len())

	h.Clear()
	_, ok := h.Pop()
	assert.False(t, ok)
}

// ─────────────────────────────────────────────────────────────
// Saved state
// ─────────────────────────────────────────────────────────────

func TestDecodeSavedState_Full(t *testing.T) {
	var b domain.Board
	b.Set(c(3, 1), blueLarge)
	data, err := json.Marshal(domain.SavedState{Board: b, SelectedColor: domain.ColorGreen, SelectedSize: domain.SizeLarge})
	require.NoError(t, err)

	got, errs := domain.DecodeSavedState(data)
	assert.Empty(t, errs)
	assert.True(t, got.Board.Equal(&b))
	assert.Equal(t, domain.ColorGreen, got.SelectedColor)
	assert.Equal(t, domain.SizeLarge, got.SelectedSize)
}

func TestDecodeSavedState_FieldByField(t *testing.T) {
	got, errs := domain.DecodeSavedState([]byte(`{"board":[[null]],"selectedColor":"yellow"}`))
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], domain.ErrBadBoardShape)
	assert.Zero(t, got.Board.Count())
	assert.Equal(t, domain.ColorYellow, got.SelectedColor)
	assert.Equal(t, domain.SizeSmall, got.SelectedSize)
}

func TestDecodeSavedState_PartialCellsDropBoard(t *testing.T) {
	empty := ",[null,null,null,null]"
	board := `[[{},{"color":"blue"},null,null]` + strings.Repeat(empty, 5) + "]"

	got, errs := domain.DecodeSavedState([]byte(`{"board":` + board + `,"selectedSize":"large"}`))
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], domain.ErrUnknownColor)
	assert.Zero(t, got.Board.Count(), "no pion is invented from a partial cell")
	assert.Equal(t, domain.SizeLarge, got.SelectedSize)
}

func TestDecodeSavedState_Garbage(t *testing.T) {
	got, errs := domain.DecodeSavedState([]byte(`]]`))
	require.Len(t, errs, 1)
	assert.Equal(t, domain.DefaultSavedState(), got)
}

func TestInteraction_Accessors(t *testing.T) {
	cell, ok := domain.Interaction{Mode: domain.ModeAwaitingMove, Cell: c(1, 2)}.Selection()
	assert.True(t, ok)
	assert.Equal(t, c(1, 2), cell)

	_, ok = domain.Interaction{Mode: domain.ModeAwaitingPlacement}.Selection()
	assert.False(t, ok)
	_, ok = domain.Idle.PendingPlacement()
	assert.False(t, ok)
}
