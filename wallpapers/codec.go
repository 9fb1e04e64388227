package wallpapers

import (
	"encoding/json"
	"fmt"

	"github.com/Ranger10sam/Serenify-App/core"
)

// EncodeCollection serializes the collection as a JSON array, preserving order.
// A nil collection encodes as an empty array.
func EncodeCollection(collection []core.Wallpaper) ([]byte, error) {
	if collection == nil {
		collection = []core.Wallpaper{}
	}
	data, err := json.Marshal(collection)
	if err != nil {
		return nil, fmt.Errorf("encode wallpapers: %w", err)
	}
	return data, nil
}

// DecodeCollection parses a stored blob. Empty input and JSON null decode to
// an empty collection.
func DecodeCollection(data []byte) ([]core.Wallpaper, error) {
	if len(data) == 0 {
		return []core.Wallpaper{}, nil
	}
	var collection []core.Wallpaper
	if err := json.Unmarshal(data, &collection); err != nil {
		return nil, fmt.Errorf("decode wallpapers: %w", err)
	}
	if collection == nil {
		collection = []core.Wallpaper{}
	}
	return collection, nil
}
