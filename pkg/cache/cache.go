// Package cache keeps the encoded avatars in memory, so that the same text
// rendered with the same options is only drawn once.
package cache

import (
	"io"
	"strings"
)

// Cache is a rudimentary key/value caching store. It offers a Get/Set
// interface as well a its gzip compressed alternative
// GetCompressed/SetCompressed
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, data []byte)
	GetCompressed(key string) (io.Reader, bool)
	SetCompressed(key string, data []byte)
	Len() int
}

// New instantiates a Cache with room for size entries. When size is not
// positive, nothing is kept and every Get is a miss.
func New(size int) Cache {
	if size <= 0 {
		return Nop{}
	}
	c, err := NewLRU(size)
	if err != nil {
		return Nop{}
	}
	return c
}

// Key joins the parts of a cache key with colons, like
// "png:64x64:JD".
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

// Nop is a Cache that never keeps anything.
type Nop struct{}

func (Nop) Get(string) ([]byte, bool)              { return nil, false }
func (Nop) Set(string, []byte)                     {}
func (Nop) GetCompressed(string) (io.Reader, bool) { return nil, false }
func (Nop) SetCompressed(string, []byte)           {}
func (Nop) Len() int                               { return 0 }
