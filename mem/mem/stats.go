package mem

// KindStats counts what happened to the accesses of one kind.
type KindStats struct {
	Accesses   uint64
	BufferHits uint64
	Coalesced  uint64
	Issued     uint64
	Completed  uint64
	Delivered  uint64
	Annulled   uint64
	Rejected   uint64
	Overdue    uint64
}

// Add accumulates another set of counters.
func (s *KindStats) Add(o KindStats) {
	s.Accesses += o.Accesses
	s.BufferHits += o.BufferHits
	s.Coalesced += o.Coalesced
	s.Issued += o.Issued
	s.Completed += o.Completed
	s.Delivered += o.Delivered
	s.Annulled += o.Annulled
	s.Rejected += o.Rejected
	s.Overdue += o.Overdue
}

// Stats holds the counters of a controller, indexed by AccessKind.
type Stats struct {
	Kinds [NumAccessKinds]KindStats
}

// Of returns the counters of the given kind.
func (s *Stats) Of(kind AccessKind) *KindStats {
	return &s.Kinds[kind]
}

// Kind returns a copy of the counters of the given kind.
func (s Stats) Kind(kind AccessKind) KindStats {
	return s.Kinds[kind]
}

// Add accumulates another Stats.
func (s *Stats) Add(o Stats) {
	for k := range s.Kinds {
		s.Kinds[k].Add(o.Kinds[k])
	}
}

// Total sums the counters of all kinds.
func (s Stats) Total() KindStats {
	total := KindStats{}
	for _, k := range s.Kinds {
		total.Add(k)
	}

	return total
}
