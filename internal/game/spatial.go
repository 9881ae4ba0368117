package game

import (
	"math"
	"sort"

	"github.com/solarlune/resolv"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Tags of objects stored in the spatial index.
const (
	tagPlatform    = "platform"
	tagCollectible = "collectible"
	tagPickup      = "pickup"
	tagNote        = "note"
	tagEnemy       = "enemy"
	tagProbe       = "probe"
)

// spatialCellSize is the broad-phase cell edge in world units.
const spatialCellSize = 32

// spatialEntry links a resolv object back to its slice index.
type spatialEntry struct {
	index int
}

// SpatialIndex is a uniform-grid broad phase over the current level's
// entities. It only narrows candidates; exact tests use core.Overlaps.
type SpatialIndex struct {
	space *resolv.Space
	probe *resolv.Object
}

// NewSpatialIndex creates an index covering a level of the given size.
// Objects outside the covered area are never reported.
func NewSpatialIndex(width, height float64) *SpatialIndex {
	w := int(math.Ceil(width)) + spatialCellSize
	h := int(math.Ceil(height)) + spatialCellSize
	space := resolv.NewSpace(w, h, spatialCellSize, spatialCellSize)

	probe := resolv.NewObject(0, 0, 1, 1, tagProbe)
	space.Add(probe)

	return &SpatialIndex{space: space, probe: probe}
}

// Insert adds an entity rectangle under tag and returns its handle.
func (s *SpatialIndex) Insert(tag string, index int, r core.Rect) *resolv.Object {
	obj := resolv.NewObject(r.X, r.Y, r.W, r.H, tag)
	obj.Data = spatialEntry{index: index}
	s.space.Add(obj)
	return obj
}

// Move updates the stored rectangle of a handle.
func (s *SpatialIndex) Move(obj *resolv.Object, r core.Rect) {
	if obj == nil {
		return
	}
	obj.X, obj.Y, obj.W, obj.H = r.X, r.Y, r.W, r.H
	obj.Update()
}

// Remove drops a handle from the index.
func (s *SpatialIndex) Remove(obj *resolv.Object) {
	if obj == nil {
		return
	}
	s.space.Remove(obj)
}

// Query returns the indices of tagged entities whose cells touch r, in
// ascending order.
func (s *SpatialIndex) Query(r core.Rect, tag string) []int {
	s.probe.X, s.probe.Y, s.probe.W, s.probe.H = r.X, r.Y, r.W, r.H
	s.probe.Update()

	collision := s.probe.Check(0, 0, tag)
	if collision == nil {
		return nil
	}

	indices := make([]int, 0, len(collision.Objects))
	for _, obj := range collision.Objects {
		if entry, ok := obj.Data.(spatialEntry); ok {
			indices = append(indices, entry.index)
		}
	}
	sort.Ints(indices)
	return indices
}
