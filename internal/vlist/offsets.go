package vlist

import "sort"

// offsetIndex maintains cumulative row offsets for a list of items whose
// heights start as an estimate and are corrected as items get measured.
// Offsets are stored as prefix sums: offsets[i] is the first row of item i
// and offsets[len] is the total content height. Recomputation is lazy and
// restarts from the lowest index whose height changed since the last settle.
type offsetIndex struct {
	estimate int
	heights  []int
	measured []bool
	offsets  []int
	// offsets[j] is valid for all j <= settledTo
	settledTo int
}

func newOffsetIndex(estimate int) *offsetIndex {
	return &offsetIndex{
		estimate: max(1, estimate),
		offsets:  []int{0},
	}
}

func (x *offsetIndex) len() int {
	return len(x.heights)
}

// reset discards all measurements and resizes the index to n estimated items
func (x *offsetIndex) reset(n int) {
	n = max(0, n)
	x.heights = make([]int, n)
	x.measured = make([]bool, n)
	for i := range x.heights {
		x.heights[i] = x.estimate
	}
	x.offsets = make([]int, n+1)
	x.settledTo = 0
}

// grow appends n estimated items, keeping existing measurements
func (x *offsetIndex) grow(n int) {
	for i := 0; i < n; i++ {
		x.heights = append(x.heights, x.estimate)
		x.measured = append(x.measured, false)
		x.offsets = append(x.offsets, 0)
	}
}

// setEstimate changes the fallback height and reverts unmeasured items to it
func (x *offsetIndex) setEstimate(estimate int) {
	x.estimate = max(1, estimate)
	for i := range x.heights {
		if !x.measured[i] {
			x.heights[i] = x.estimate
		}
	}
	x.settledTo = 0
}

// resetMeasurements reverts every item to the estimate, e.g. after the
// width or wrapping behavior changes and all prior measurements are stale
func (x *offsetIndex) resetMeasurements() {
	for i := range x.heights {
		x.heights[i] = x.estimate
		x.measured[i] = false
	}
	x.settledTo = 0
}

// setHeight records a measured height for item i, returning true if it
// changed. Heights are clamped to at least one row
func (x *offsetIndex) setHeight(i, h int) bool {
	if i < 0 || i >= len(x.heights) {
		return false
	}
	h = max(1, h)
	if x.measured[i] && x.heights[i] == h {
		return false
	}
	x.heights[i] = h
	x.measured[i] = true
	x.settledTo = min(x.settledTo, i)
	return true
}

func (x *offsetIndex) heightAt(i int) int {
	if i < 0 || i >= len(x.heights) {
		return 0
	}
	return x.heights[i]
}

// offsetOf returns the first row of item i
func (x *offsetIndex) offsetOf(i int) int {
	x.settle()
	if i < 0 {
		return 0
	}
	if i >= len(x.heights) {
		return x.offsets[len(x.heights)]
	}
	return x.offsets[i]
}

func (x *offsetIndex) totalHeight() int {
	x.settle()
	return x.offsets[len(x.heights)]
}

// indexAt returns the item covering row y, or -1 when the index is empty.
// An item starting exactly at y is the one returned (inclusive boundary)
func (x *offsetIndex) indexAt(y int) int {
	n := len(x.heights)
	if n == 0 {
		return -1
	}
	x.settle()
	y = clampValMinMax(y, 0, x.offsets[n]-1)
	return sort.Search(n, func(i int) bool {
		return x.offsets[i+1] > y
	})
}

func (x *offsetIndex) settle() {
	n := len(x.heights)
	for j := x.settledTo; j < n; j++ {
		x.offsets[j+1] = x.offsets[j] + x.heights[j]
	}
	x.settledTo = n
}
