// Package layout arranges saved wallpapers into a two-column masonry grid.
//
// Each card keeps the column width and derives its height from the
// wallpaper's aspect ratio. Cards are dealt, in input order, to whichever
// column is currently shorter, in a single greedy pass with no look-ahead.
package layout

import (
	"github.com/Ranger10sam/Serenify-App/core"
)

const (
	DefaultColumnWidth = 170.0
	DefaultGap         = 10.0
	DefaultMinHeight   = 100.0
	DefaultMaxHeight   = 500.0
)

// corrections scales the natural height of catalog ratios. Very tall formats
// are toned down so one story-sized card does not dominate a column.
var corrections = map[string]float64{
	"9:19.5": 0.85,
	"9:16":   0.9,
	"2:3":    0.95,
	"4:5":    1.0,
	"1:1":    1.0,
	"16:9":   1.1,
}

type (
	// Card is a wallpaper with its display size.
	Card struct {
		Wallpaper core.Wallpaper `json:"wallpaper"`
		Width     float64        `json:"width"`
		Height    float64        `json:"height"`
	}

	// Columns is the result of a layout pass.
	// The heights include one gap per card.
	Columns struct {
		Left        []Card  `json:"left"`
		Right       []Card  `json:"right"`
		LeftHeight  float64 `json:"leftHeight"`
		RightHeight float64 `json:"rightHeight"`
	}

	// Engine computes masonry layouts. The zero value is not usable; call New.
	Engine struct {
		columnWidth  float64
		gap          float64
		minHeight    float64
		maxHeight    float64
		defaultRatio string
	}

	// Option configures an Engine.
	Option func(*Engine)
)

// WithColumnWidth sets the card width. Non-positive values are ignored.
func WithColumnWidth(w float64) Option {
	return func(e *Engine) {
		if w > 0 {
			e.columnWidth = w
		}
	}
}

// WithGap sets the vertical gap added below every card. Negative values are ignored.
func WithGap(g float64) Option {
	return func(e *Engine) {
		if g >= 0 {
			e.gap = g
		}
	}
}

// WithHeightBounds sets the clamp range for card heights.
// The option is ignored unless 0 < lo <= hi.
func WithHeightBounds(lo, hi float64) Option {
	return func(e *Engine) {
		if lo > 0 && lo <= hi {
			e.minHeight, e.maxHeight = lo, hi
		}
	}
}

// New returns an engine with the default metrics, adjusted by opts.
func New(opts ...Option) *Engine {
	e := &Engine{
		columnWidth:  DefaultColumnWidth,
		gap:          DefaultGap,
		minHeight:    DefaultMinHeight,
		maxHeight:    DefaultMaxHeight,
		defaultRatio: core.DefaultAspectRatio,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ColumnWidth returns the configured card width.
func (e *Engine) ColumnWidth() float64 { return e.columnWidth }

// Gap returns the configured inter-card gap.
func (e *Engine) Gap() float64 { return e.gap }

// Dimensions returns the display size of a single card.
func (e *Engine) Dimensions(w core.Wallpaper) (width, height float64) {
	ratio := w.AspectRatio
	rw, rh, err := core.ParseAspectRatio(ratio)
	if err != nil {
		ratio = e.defaultRatio
		rw, rh, _ = core.ParseAspectRatio(ratio)
	}

	height = e.columnWidth * (rh / rw) * correction(ratio, rh/rw)
	return e.columnWidth, min(max(height, e.minHeight), e.maxHeight)
}

// Layout assigns every wallpaper to exactly one column, preserving input
// order within each column. Ties go to the left column.
func (e *Engine) Layout(wallpapers []core.Wallpaper) Columns {
	cols := Columns{
		Left:  []Card{},
		Right: []Card{},
	}
	for _, w := range wallpapers {
		width, height := e.Dimensions(w)
		card := Card{Wallpaper: w, Width: width, Height: height}
		if cols.LeftHeight <= cols.RightHeight {
			cols.Left = append(cols.Left, card)
			cols.LeftHeight += height + e.gap
		} else {
			cols.Right = append(cols.Right, card)
			cols.RightHeight += height + e.gap
		}
	}
	return cols
}

// correction looks the ratio up in the table and falls back to thresholds on
// the height/width ratio r for formats the table does not know.
func correction(ratio string, r float64) float64 {
	if c, ok := corrections[ratio]; ok {
		return c
	}
	switch {
	case r >= 1.9:
		return 0.85
	case r >= 1.5:
		return 0.9
	case r >= 1.2:
		return 0.95
	case r > 0.8:
		return 1.0
	default:
		return 1.1
	}
}
