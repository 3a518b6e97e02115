package geometry

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

var (
	// ErrMissingBoundingBox is returned when an object without a bounding box is put in a BVH
	ErrMissingBoundingBox = errors.New("object has no bounding box")
	// ErrInvalidBoundingBox is returned for an inverted or NaN bounding box
	ErrInvalidBoundingBox = errors.New("object has an invalid bounding box")
	// ErrEmptyBVH is returned when a BVH is built from no objects
	ErrEmptyBVH = errors.New("cannot build BVH from zero objects")
)

// bvhNode is an internal node of the hierarchy. Children are node indices
// when non-negative, or ^primitiveIndex when they refer to a primitive.
type bvhNode struct {
	box   core.AABB
	left  int
	right int
}

// BVH is a bounding volume hierarchy stored as a flat node arena
type BVH struct {
	nodes      []bvhNode
	primitives []Hittable
	boxes      []core.AABB // primitive boxes over the build interval
	root       int
}

// NewBVH builds a hierarchy over objects. Each internal node splits on a
// randomly chosen axis, sorting its range by box minimum and cutting at the
// median. Construction fails if any object lacks a bounding box.
func NewBVH(objects []Hittable, time0, time1 float64, random *rand.Rand) (*BVH, error) {
	if len(objects) == 0 {
		return nil, ErrEmptyBVH
	}

	bvh := &BVH{
		primitives: make([]Hittable, len(objects)),
		boxes:      make([]core.AABB, len(objects)),
		nodes:      make([]bvhNode, 0, len(objects)),
	}
	copy(bvh.primitives, objects)

	for i, object := range bvh.primitives {
		box, ok := object.BoundingBox(time0, time1)
		if !ok {
			return nil, fmt.Errorf("object %d (%T): %w", i, object, ErrMissingBoundingBox)
		}
		if !box.IsValid() {
			return nil, fmt.Errorf("object %d (%T) box %v: %w", i, object, box, ErrInvalidBoundingBox)
		}
		bvh.boxes[i] = box
	}

	indices := make([]int, len(objects))
	for i := range indices {
		indices[i] = i
	}
	bvh.root = bvh.build(indices, random)

	return bvh, nil
}

// build appends the node covering indices and returns its index
func (bvh *BVH) build(indices []int, random *rand.Rand) int {
	idx := len(bvh.nodes)
	bvh.nodes = append(bvh.nodes, bvhNode{})

	axis := random.Intn(3)
	less := func(a, b int) bool {
		return bvh.boxes[a].Min.Axis(axis) < bvh.boxes[b].Min.Axis(axis)
	}

	var left, right int
	switch len(indices) {
	case 1:
		left = ^indices[0]
		right = left
	case 2:
		if less(indices[0], indices[1]) {
			left, right = ^indices[0], ^indices[1]
		} else {
			left, right = ^indices[1], ^indices[0]
		}
	default:
		sort.SliceStable(indices, func(i, j int) bool {
			return less(indices[i], indices[j])
		})
		mid := len(indices) / 2
		left = bvh.build(indices[:mid], random)
		right = bvh.build(indices[mid:], random)
	}

	// nodes may have grown during recursion, so index rather than hold a pointer
	bvh.nodes[idx] = bvhNode{
		box:   core.SurroundingBox(bvh.refBox(left), bvh.refBox(right)),
		left:  left,
		right: right,
	}
	return idx
}

func (bvh *BVH) refBox(ref int) core.AABB {
	if ref < 0 {
		return bvh.boxes[^ref]
	}
	return bvh.nodes[ref].box
}

// Hit tests if a ray intersects any object in the BVH
func (bvh *BVH) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	return bvh.hitRef(bvh.root, ray, tMin, tMax, sampler)
}

func (bvh *BVH) hitRef(ref int, ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	if ref < 0 {
		return bvh.primitives[^ref].Hit(ray, tMin, tMax, sampler)
	}

	node := &bvh.nodes[ref]
	if !node.box.Hit(ray, tMin, tMax) {
		return nil, false
	}

	leftHit, hitLeft := bvh.hitRef(node.left, ray, tMin, tMax, sampler)
	// Single-primitive nodes alias both children; a second test would
	// redraw a medium's free-flight sample
	if node.right == node.left {
		return leftHit, hitLeft
	}
	if hitLeft {
		tMax = leftHit.T
	}
	rightHit, hitRight := bvh.hitRef(node.right, ray, tMin, tMax, sampler)
	if hitRight {
		return rightHit, true
	}
	return leftHit, hitLeft
}

// BoundingBox returns the root box
func (bvh *BVH) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return bvh.nodes[bvh.root].box, true
}

// BVHStats describes the shape of a built hierarchy
type BVHStats struct {
	Nodes      int
	Primitives int
	MaxDepth   int
	AvgDepth   float64 // average depth of primitive references
}

// Stats walks the hierarchy and reports its size and depth
func (bvh *BVH) Stats() BVHStats {
	stats := BVHStats{Nodes: len(bvh.nodes), Primitives: len(bvh.primitives)}
	leafRefs := 0
	bvh.collectStats(bvh.root, 0, &stats, &leafRefs)

	if leafRefs > 0 {
		stats.AvgDepth /= float64(leafRefs)
	}
	return stats
}

func (bvh *BVH) collectStats(ref, depth int, stats *BVHStats, leafRefs *int) {
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}
	if ref < 0 {
		*leafRefs++
		stats.AvgDepth += float64(depth)
		return
	}
	node := bvh.nodes[ref]
	bvh.collectStats(node.left, depth+1, stats, leafRefs)
	if node.right != node.left {
		bvh.collectStats(node.right, depth+1, stats, leafRefs)
	}
}
