package doc

// GrpprlPointer is a stable handle to an opcode stream held by a grpprlCache.
// The zero value is the empty stream.
type GrpprlPointer int32

// grpprlCache is an append-only arena of opcode streams. Blocks are never
// freed individually; the whole cache goes away with the document.
type grpprlCache struct {
	blocks [][]byte
}

// Add stores b and returns its handle. Empty streams share the zero handle.
func (c *grpprlCache) Add(b []byte) GrpprlPointer {
	if len(b) == 0 {
		return 0
	}
	c.blocks = append(c.blocks, b)
	return GrpprlPointer(len(c.blocks))
}

// Get returns the stream behind p, or nil for the zero handle.
func (c *grpprlCache) Get(p GrpprlPointer) []byte {
	if p <= 0 || int(p) > len(c.blocks) {
		return nil
	}
	return c.blocks[p-1]
}

// Len returns the number of stored streams.
func (c *grpprlCache) Len() int { return len(c.blocks) }
