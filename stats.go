package mpool

// Stats is a snapshot of the pool counters
type Stats struct {
	Name        string
	MemType     MemType
	ObjectSize  int
	ElementSize int
	PerChunk    uint32
	MaxTotal    uint32
	Allocated   uint32
	InUse       uint32
	Chunks      int

	Gets         uint64
	Puts         uint64
	Grows        uint64
	GrowFailures uint64
	// Exhausted counts Get calls that returned nil
	Exhausted uint64
	// Notifies counts calls of the non-empty callback
	Notifies uint64
}

// Stats returns a snapshot of the pool counters
func (p *Pool) Stats() Stats {
	return Stats{
		Name:         p.options.name,
		MemType:      p.options.memType,
		ObjectSize:   p.layout.objectSize,
		ElementSize:  p.layout.elementSize,
		PerChunk:     p.perChunk,
		MaxTotal:     p.maxTotal,
		Allocated:    p.total,
		InUse:        p.inUse,
		Chunks:       p.next,
		Gets:         p.stats.gets,
		Puts:         p.stats.puts,
		Grows:        p.stats.grows,
		GrowFailures: p.stats.growFailures,
		Exhausted:    p.stats.exhausted,
		Notifies:     p.stats.notifies,
	}
}
