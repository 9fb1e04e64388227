package wallpapers

import (
	"crypto/rand"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// IDGenerator assigns identifiers to newly created wallpapers.
type IDGenerator interface {
	NewID(now time.Time) (string, error)
}

// IDGeneratorFunc adapts a function to IDGenerator.
type IDGeneratorFunc func(now time.Time) (string, error)

func (f IDGeneratorFunc) NewID(now time.Time) (string, error) { return f(now) }

// ULIDs generates lexically sortable identifiers. Entropy is monotonic, so two
// identifiers drawn within the same millisecond still differ and sort in
// creation order.
type ULIDs struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewULIDs returns a ULID generator backed by crypto/rand.
func NewULIDs() *ULIDs {
	return &ULIDs{entropy: ulid.Monotonic(rand.Reader, 0)}
}

// NewID fails for times before the Unix epoch or past the ULID range.
func (g *ULIDs) NewID(now time.Time) (string, error) {
	if now.UnixMilli() < 0 {
		return "", fmt.Errorf("ulid: time %s is before the Unix epoch", now.Format(time.RFC3339))
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	id, err := ulid.New(ulid.Timestamp(now), g.entropy)
	if err != nil {
		return "", fmt.Errorf("ulid: %w", err)
	}
	return id.String(), nil
}

// TimestampIDs reproduces the legacy scheme of the mobile app: the creation
// time in milliseconds as a decimal string. Two creations within the same
// millisecond collide.
var TimestampIDs = IDGeneratorFunc(func(now time.Time) (string, error) {
	return strconv.FormatInt(now.UnixMilli(), 10), nil
})
