package core

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

type (
	// Alignment is the horizontal alignment of the quote block.
	Alignment string

	// TextPosition is the fractional position of the text block within the canvas.
	TextPosition struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}

	// Wallpaper is a saved quote composition.
	// Timestamps are milliseconds since the Unix epoch, as in the persisted layout.
	Wallpaper struct {
		ID              string       `json:"id"`
		Quote           string       `json:"quote"`
		Author          string       `json:"author,omitempty"`
		BackgroundColor string       `json:"backgroundColor"`
		TextColor       string       `json:"textColor"`
		FontSize        float64      `json:"fontSize"`
		FontFamily      string       `json:"fontFamily"`
		TextPosition    TextPosition `json:"textPosition"`
		TextWidth       float64      `json:"textWidth"`
		TextAlign       Alignment    `json:"textAlign,omitempty"`
		FontWeight      string       `json:"fontWeight,omitempty"`
		AspectRatio     string       `json:"aspectRatio"`
		CreatedAt       int64        `json:"createdAt"`
		UpdatedAt       int64        `json:"updatedAt"`
	}

	// Draft is a wallpaper that has not been saved yet: no identifier, no timestamps.
	Draft struct {
		Quote           string       `json:"quote"`
		Author          string       `json:"author,omitempty"`
		BackgroundColor string       `json:"backgroundColor"`
		TextColor       string       `json:"textColor"`
		FontSize        float64      `json:"fontSize"`
		FontFamily      string       `json:"fontFamily"`
		TextPosition    TextPosition `json:"textPosition"`
		TextWidth       float64      `json:"textWidth"`
		TextAlign       Alignment    `json:"textAlign,omitempty"`
		FontWeight      string       `json:"fontWeight,omitempty"`
		AspectRatio     string       `json:"aspectRatio"`
	}

	// Patch holds the fields of a partial update. A nil field is left untouched.
	// Identity and timestamps cannot be patched.
	Patch struct {
		Quote           *string       `json:"quote,omitempty"`
		Author          *string       `json:"author,omitempty"`
		BackgroundColor *string       `json:"backgroundColor,omitempty"`
		TextColor       *string       `json:"textColor,omitempty"`
		FontSize        *float64      `json:"fontSize,omitempty"`
		FontFamily      *string       `json:"fontFamily,omitempty"`
		TextPosition    *TextPosition `json:"textPosition,omitempty"`
		TextWidth       *float64      `json:"textWidth,omitempty"`
		TextAlign       *Alignment    `json:"textAlign,omitempty"`
		FontWeight      *string       `json:"fontWeight,omitempty"`
		AspectRatio     *string       `json:"aspectRatio,omitempty"`
	}
)

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

var ErrInvalidWallpaper = errors.New("invalid wallpaper")

// Valid reports whether a is one of the known alignments.
func (a Alignment) Valid() bool {
	switch a {
	case AlignLeft, AlignCenter, AlignRight:
		return true
	}
	return false
}

// Alignment returns the text alignment, defaulting to center when unset.
func (w Wallpaper) Alignment() Alignment {
	if w.TextAlign == "" {
		return AlignCenter
	}
	return w.TextAlign
}

// Wallpaper builds an unsaved record from the draft.
func (d Draft) Wallpaper() Wallpaper {
	return Wallpaper{
		Quote:           d.Quote,
		Author:          d.Author,
		BackgroundColor: d.BackgroundColor,
		TextColor:       d.TextColor,
		FontSize:        d.FontSize,
		FontFamily:      d.FontFamily,
		TextPosition:    d.TextPosition,
		TextWidth:       d.TextWidth,
		TextAlign:       d.TextAlign,
		FontWeight:      d.FontWeight,
		AspectRatio:     d.AspectRatio,
	}
}

// Apply merges the non-nil patch fields over w and returns the result.
// ID, CreatedAt and UpdatedAt are carried over from w.
func (p Patch) Apply(w Wallpaper) Wallpaper {
	if p.Quote != nil {
		w.Quote = *p.Quote
	}
	if p.Author != nil {
		w.Author = *p.Author
	}
	if p.BackgroundColor != nil {
		w.BackgroundColor = *p.BackgroundColor
	}
	if p.TextColor != nil {
		w.TextColor = *p.TextColor
	}
	if p.FontSize != nil {
		w.FontSize = *p.FontSize
	}
	if p.FontFamily != nil {
		w.FontFamily = *p.FontFamily
	}
	if p.TextPosition != nil {
		w.TextPosition = *p.TextPosition
	}
	if p.TextWidth != nil {
		w.TextWidth = *p.TextWidth
	}
	if p.TextAlign != nil {
		w.TextAlign = *p.TextAlign
	}
	if p.FontWeight != nil {
		w.FontWeight = *p.FontWeight
	}
	if p.AspectRatio != nil {
		w.AspectRatio = *p.AspectRatio
	}
	return w
}

// Validate checks the fields a composition cannot be saved without.
func (w Wallpaper) Validate() error {
	if strings.TrimSpace(w.Quote) == "" {
		return fmt.Errorf("%w: quote is required", ErrInvalidWallpaper)
	}
	if !(w.FontSize > 0) || math.IsInf(w.FontSize, 0) {
		return fmt.Errorf("%w: font size must be a positive finite number, got %v", ErrInvalidWallpaper, w.FontSize)
	}
	if w.TextAlign != "" && !w.TextAlign.Valid() {
		return fmt.Errorf("%w: unknown text alignment %q", ErrInvalidWallpaper, w.TextAlign)
	}
	return nil
}

// Normalize clamps the fractional layout fields into [0,1] and fills defaults
// for an empty alignment or aspect ratio.
func (w Wallpaper) Normalize() Wallpaper {
	w.Quote = strings.TrimSpace(w.Quote)
	w.Author = strings.TrimSpace(w.Author)
	w.TextPosition.X = clampUnit(w.TextPosition.X)
	w.TextPosition.Y = clampUnit(w.TextPosition.Y)
	w.TextWidth = clampUnit(w.TextWidth)
	if w.TextAlign == "" {
		w.TextAlign = AlignCenter
	}
	if strings.TrimSpace(w.AspectRatio) == "" {
		w.AspectRatio = DefaultAspectRatio
	}
	return w
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
