// Package idgen hands out identifiers for objects that exist only on the
// client until the backend assigns them a real id.
package idgen

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

type Generator interface {
	NewID() string
}

// Counter returns prefix followed by a sequence number starting at 1.
type Counter struct {
	prefix string
	seq    atomic.Uint64
}

func NewCounter(prefix string) *Counter {
	return &Counter{prefix: prefix}
}

func (c *Counter) NewID() string {
	return c.prefix + strconv.FormatUint(c.seq.Add(1), 10)
}

type UUID struct{}

func (UUID) NewID() string {
	return uuid.NewString()
}

// Func adapts a plain function to Generator.
type Func func() string

func (f Func) NewID() string {
	return f()
}
