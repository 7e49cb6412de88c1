package catalog

import (
	"sync/atomic"
)

// Snapshot is a read-only, indexed view of one generation.
type Snapshot struct {
	Generation *Generation

	brands      map[int]Brand
	tags        map[int]Tag
	tagsByProd  map[int][]Tag
	coilBrands  map[int]CoilBrand
	resistances map[int]Resistance
}

func NewSnapshot(gen *Generation) *Snapshot {
	s := &Snapshot{
		Generation:  gen,
		brands:      make(map[int]Brand, len(gen.Brands)),
		tags:        make(map[int]Tag, len(gen.Tags)),
		tagsByProd:  make(map[int][]Tag),
		coilBrands:  make(map[int]CoilBrand, len(gen.CoilBrands)),
		resistances: make(map[int]Resistance, len(gen.Resistances)),
	}
	for _, b := range gen.Brands {
		s.brands[b.ID] = b
	}
	for _, t := range gen.Tags {
		s.tags[t.ID] = t
	}
	for _, l := range gen.Links {
		if t, ok := s.tags[l.TagID]; ok {
			s.tagsByProd[l.ProductID] = append(s.tagsByProd[l.ProductID], t)
		}
	}
	for _, b := range gen.CoilBrands {
		s.coilBrands[b.ID] = b
	}
	for _, r := range gen.Resistances {
		s.resistances[r.ID] = r
	}
	return s
}

func (s *Snapshot) Brand(id int) (Brand, bool) {
	b, ok := s.brands[id]
	return b, ok
}

func (s *Snapshot) Tag(id int) (Tag, bool) {
	t, ok := s.tags[id]
	return t, ok
}

func (s *Snapshot) ProductTags(productID int) []Tag {
	return s.tagsByProd[productID]
}

func (s *Snapshot) HasTag(productID, tagID int) bool {
	for _, t := range s.tagsByProd[productID] {
		if t.ID == tagID {
			return true
		}
	}
	return false
}

func (s *Snapshot) CoilBrand(id int) (CoilBrand, bool) {
	b, ok := s.coilBrands[id]
	return b, ok
}

func (s *Snapshot) Resistance(id int) (Resistance, bool) {
	r, ok := s.resistances[id]
	return r, ok
}

var emptySnapshot = NewSnapshot(&Generation{})

// Current holds the generation served to readers. Load never blocks and a
// Swap publishes a fully built snapshot in a single pointer store.
type Current struct {
	ptr atomic.Pointer[Snapshot]
}

func NewCurrent() *Current {
	return &Current{}
}

// Load returns the served snapshot, or an empty one before the first swap.
func (c *Current) Load() *Snapshot {
	if s := c.ptr.Load(); s != nil {
		return s
	}
	return emptySnapshot
}

// Swap publishes gen and returns the snapshot it replaced, if any.
func (c *Current) Swap(gen *Generation) *Snapshot {
	return c.ptr.Swap(NewSnapshot(gen))
}
