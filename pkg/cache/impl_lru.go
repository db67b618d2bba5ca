package cache

import (
	"bytes"
	"compress/gzip"
	"io"

	lru "github.com/hashicorp/golang-lru/v2"
)

// LRU implementation of the Cache client. The least recently used entries
// are evicted when the cache is full.
type LRU struct {
	c *lru.Cache[string, []byte]
}

// NewLRU instantiates a new LRU Cache Client.
func NewLRU(size int) (*LRU, error) {
	c, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, err
	}
	return &LRU{c: c}, nil
}

// Get fetch the cached asset at the given key, and returns true only if the
// asset was found.
func (c *LRU) Get(key string) ([]byte, bool) {
	return c.c.Get(key)
}

// Set stores an asset to the given key.
func (c *LRU) Set(key string, data []byte) {
	c.c.Add(key, data)
}

// GetCompressed works like Get but expect a compressed asset that is
// uncompressed.
func (c *LRU) GetCompressed(key string) (io.Reader, bool) {
	r, ok := c.Get(key)
	if !ok {
		return nil, false
	}
	gr, err := gzip.NewReader(bytes.NewReader(r))
	if err != nil {
		c.c.Remove(key)
		return nil, false
	}
	return gr, true
}

// SetCompressed works like Set but compress the asset data before storing
// it.
func (c *LRU) SetCompressed(key string, data []byte) {
	dataCompressed := new(bytes.Buffer)
	gw := gzip.NewWriter(dataCompressed)
	defer gw.Close()
	if _, err := io.Copy(gw, bytes.NewReader(data)); err != nil {
		return
	}
	if err := gw.Close(); err != nil {
		return
	}
	c.Set(key, dataCompressed.Bytes())
}

// Len returns the number of entries in the cache.
func (c *LRU) Len() int {
	return c.c.Len()
}
