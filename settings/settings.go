// Package settings stores the single-value preferences that live beside the
// wallpaper collection: theme mode, the custom quote list and the selected
// font and palette.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Ranger10sam/Serenify-App/core"
	"github.com/sirupsen/logrus"
)

const (
	KeyThemeMode       = "themeMode"
	KeyQuoteTexts      = "quoteTexts"
	KeySelectedFont    = "selectedFont"
	KeySelectedPalette = "selectedPalette"
)

// ThemeMode is the light or dark appearance.
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

var ErrInvalidSetting = errors.New("invalid setting")

// Valid reports whether m is a known mode.
func (m ThemeMode) Valid() bool {
	return m == ThemeLight || m == ThemeDark
}

// Service reads and writes preferences. Missing or unreadable values read as
// their defaults; only backend failures are returned as errors.
type Service struct {
	kv core.KeyValueStore
}

func NewService(kv core.KeyValueStore) *Service {
	return &Service{kv: kv}
}

// Theme returns the stored theme mode, light by default.
func (s *Service) Theme(ctx context.Context) (ThemeMode, error) {
	var mode ThemeMode
	ok, err := s.get(ctx, KeyThemeMode, &mode)
	if err != nil || !ok || !mode.Valid() {
		return ThemeLight, err
	}
	return mode, nil
}

func (s *Service) SetTheme(ctx context.Context, mode ThemeMode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: unknown theme mode %q", ErrInvalidSetting, mode)
	}
	return s.set(ctx, KeyThemeMode, mode)
}

// QuoteTexts returns the user's own quote list, empty by default.
func (s *Service) QuoteTexts(ctx context.Context) ([]string, error) {
	var texts []string
	ok, err := s.get(ctx, KeyQuoteTexts, &texts)
	if err != nil || !ok || texts == nil {
		return []string{}, err
	}
	return texts, nil
}

// SetQuoteTexts replaces the quote list. Blank entries are dropped.
func (s *Service) SetQuoteTexts(ctx context.Context, texts []string) error {
	kept := make([]string, 0, len(texts))
	for _, t := range texts {
		if t = strings.TrimSpace(t); t != "" {
			kept = append(kept, t)
		}
	}
	return s.set(ctx, KeyQuoteTexts, kept)
}

// Font returns the selected font index, 0 by default.
func (s *Service) Font(ctx context.Context) (int, error) {
	return s.index(ctx, KeySelectedFont)
}

func (s *Service) SetFont(ctx context.Context, index int) error {
	return s.setIndex(ctx, KeySelectedFont, index)
}

// Palette returns the selected palette index, 0 by default.
func (s *Service) Palette(ctx context.Context) (int, error) {
	return s.index(ctx, KeySelectedPalette)
}

func (s *Service) SetPalette(ctx context.Context, index int) error {
	return s.setIndex(ctx, KeySelectedPalette, index)
}

// index decodes a selection stored either as a stringified number ("2") or
// as a bare JSON number.
func (s *Service) index(ctx context.Context, key string) (int, error) {
	var raw json.RawMessage
	ok, err := s.get(ctx, key, &raw)
	if err != nil || !ok {
		return 0, err
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		text = string(raw)
	}
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 0 {
		logrus.WithField("key", key).WithField("value", string(raw)).Warn("Stored selection is unreadable, using default")
		return 0, nil
	}
	return n, nil
}

func (s *Service) setIndex(ctx context.Context, key string, index int) error {
	if index < 0 {
		return fmt.Errorf("%w: %s must not be negative, got %d", ErrInvalidSetting, key, index)
	}
	return s.set(ctx, key, strconv.Itoa(index))
}

// get decodes the value under key into dst. It reports false when the key is
// missing or the value cannot be decoded.
func (s *Service) get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := s.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, core.ErrKeyNotFound) {
			return false, nil
		}
		return false, &core.StorageError{Op: "read", Key: key, Err: err}
	}
	if err := json.Unmarshal(data, dst); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Stored setting is unreadable, using default")
		return false, nil
	}
	return true, nil
}

func (s *Service) set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, data); err != nil {
		return &core.StorageError{Op: "write", Key: key, Err: err}
	}
	logrus.WithField("key", key).Debug("Setting saved")
	return nil
}
