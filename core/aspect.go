package core

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultAspectRatio is used when a composition carries no ratio.
const DefaultAspectRatio = "9:16"

type (
	// Resolution is an export size in pixels.
	Resolution struct {
		Name   string `json:"name"`
		Width  int    `json:"width"`
		Height int    `json:"height"`
	}

	// AspectRatio is an entry of the canvas format catalog.
	AspectRatio struct {
		Name        string       `json:"name"`
		Value       string       `json:"value"`
		Width       float64      `json:"width"`
		Height      float64      `json:"height"`
		Resolutions []Resolution `json:"resolutions"`
	}
)

var aspectRatios = []AspectRatio{
	{Name: "Instagram Story", Value: "9:16", Width: 9, Height: 16, Resolutions: []Resolution{
		{Name: "Instagram Story", Width: 1080, Height: 1920},
		{Name: "TikTok HD", Width: 1080, Height: 1920},
		{Name: "4K Story", Width: 2160, Height: 3840},
	}},
	{Name: "Instagram Post", Value: "1:1", Width: 1, Height: 1, Resolutions: []Resolution{
		{Name: "Instagram Post", Width: 1080, Height: 1080},
		{Name: "High Quality", Width: 1440, Height: 1440},
		{Name: "4K Square", Width: 2160, Height: 2160},
	}},
	{Name: "Instagram Portrait", Value: "4:5", Width: 4, Height: 5, Resolutions: []Resolution{
		{Name: "Instagram Portrait", Width: 1080, Height: 1350},
		{Name: "High Quality", Width: 1440, Height: 1800},
		{Name: "Ultra HD", Width: 2160, Height: 2700},
	}},
	{Name: "Pinterest Pin", Value: "2:3", Width: 2, Height: 3, Resolutions: []Resolution{
		{Name: "Pinterest Pin", Width: 1000, Height: 1500},
		{Name: "High Quality", Width: 1200, Height: 1800},
		{Name: "Ultra HD", Width: 1600, Height: 2400},
	}},
	{Name: "Mobile Wallpaper", Value: "9:19.5", Width: 9, Height: 19.5, Resolutions: []Resolution{
		{Name: "iPhone 14/15", Width: 1179, Height: 2556},
		{Name: "Samsung S24", Width: 1440, Height: 3120},
		{Name: "Ultra HD", Width: 1620, Height: 3510},
	}},
	{Name: "Twitter Post", Value: "16:9", Width: 16, Height: 9, Resolutions: []Resolution{
		{Name: "Twitter Post", Width: 1200, Height: 675},
		{Name: "High Quality", Width: 1600, Height: 900},
		{Name: "Full HD", Width: 1920, Height: 1080},
	}},
}

// AspectRatios returns a copy of the catalog in display order.
func AspectRatios() []AspectRatio {
	out := make([]AspectRatio, len(aspectRatios))
	copy(out, aspectRatios)
	return out
}

// LookupAspectRatio finds a catalog entry by its "W:H" value.
func LookupAspectRatio(value string) (AspectRatio, bool) {
	for _, ar := range aspectRatios {
		if ar.Value == value {
			return ar, true
		}
	}
	return AspectRatio{}, false
}

// ParseAspectRatio splits a "W:H" string into its positive components.
// Components may be decimal, e.g. "9:19.5".
func ParseAspectRatio(value string) (width, height float64, err error) {
	w, h, ok := strings.Cut(strings.TrimSpace(value), ":")
	if !ok {
		return 0, 0, fmt.Errorf("aspect ratio %q: missing ':' separator", value)
	}
	width, err = strconv.ParseFloat(strings.TrimSpace(w), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("aspect ratio %q: invalid width: %w", value, err)
	}
	height, err = strconv.ParseFloat(strings.TrimSpace(h), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("aspect ratio %q: invalid height: %w", value, err)
	}
	// NaN fails both comparisons, so test for the valid range instead.
	if !(width > 0) || !(height > 0) {
		return 0, 0, fmt.Errorf("aspect ratio %q: components must be positive", value)
	}
	return width, height, nil
}
