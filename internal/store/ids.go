package store

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Id prefixes per collection.
const (
	PizzaPrefix    = "p"
	BeveragePrefix = "b"
	OrderPrefix    = "o"
)

// IDGenerator synthesizes ids for new records.
type IDGenerator interface {
	NewID(prefix string) string
}

// UUIDs issues prefix + UUIDv7. The ids sort by creation time and do not
// collide within a millisecond.
type UUIDs struct{}

func (UUIDs) NewID(prefix string) string {
	return prefix + uuid.Must(uuid.NewV7()).String()
}

// TimestampIDs issues prefix + unix milliseconds. Two records created in the
// same millisecond get the same id.
type TimestampIDs struct {
	Now func() time.Time
}

func (g TimestampIDs) NewID(prefix string) string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	return prefix + strconv.FormatInt(now().UnixMilli(), 10)
}
