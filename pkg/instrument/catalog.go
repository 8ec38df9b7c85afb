package instrument

import "sync"

// Catalog is the descriptor registry. The engine reads it, it never
// writes back; registration happens once at startup.
type Catalog struct {
	mu          sync.RWMutex
	descriptors map[Key]Descriptor
}

func NewCatalog() *Catalog {
	return &Catalog{
		descriptors: make(map[Key]Descriptor),
	}
}

func (c *Catalog) Register(key Key, d Descriptor) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.descriptors[key] = d
}

func (c *Catalog) Lookup(key Key) (Descriptor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	d, ok := c.descriptors[key]
	return d, ok
}

func (c *Catalog) Keys() []Key {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]Key, 0, len(c.descriptors))
	for k := range c.descriptors {
		keys = append(keys, k)
	}
	return keys
}
