package session

import (
	"strings"

	"github.com/google/uuid"
)

// IDGenerator produces request and session identifiers.
type IDGenerator struct {
	newUUID func() string
}

// NewIDGenerator returns a generator backed by random v4 UUIDs.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{newUUID: uuid.NewString}
}

// Next returns a new identifier: a v4 UUID without dashes, upper-cased.
// This is the form the service expects in X-RequestId headers.
func (g *IDGenerator) Next() string {
	return strings.ToUpper(strings.ReplaceAll(g.newUUID(), "-", ""))
}
