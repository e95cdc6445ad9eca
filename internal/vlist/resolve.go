package vlist

// rowRange is an inclusive range of item indices to render
type rowRange struct {
	start, end int
}

func emptyRange() rowRange {
	return rowRange{0, -1}
}

func (r rowRange) empty() bool {
	return r.end < r.start
}

func (r rowRange) contains(i int) bool {
	return !r.empty() && r.start <= i && i <= r.end
}

// visibleRange resolves the minimal item range covering viewHeight rows
// starting at scrollTop, inflated by overscan on both ends and clamped to
// valid indices. Resolving the same inputs twice yields the same range.
// Invalid inputs degrade to safe values rather than panicking
func (x *offsetIndex) visibleRange(scrollTop, viewHeight, overscan int) rowRange {
	n := x.len()
	viewHeight = max(0, viewHeight)
	overscan = max(0, overscan)
	if n == 0 || viewHeight == 0 {
		return emptyRange()
	}
	scrollTop = clampValMinMax(scrollTop, 0, max(0, x.totalHeight()-viewHeight))
	start := x.indexAt(scrollTop)
	end := x.indexAt(scrollTop + viewHeight - 1)
	return rowRange{
		start: max(0, start-overscan),
		end:   min(n-1, end+overscan),
	}
}

// fixedRange is the uniform-height fast path: no binary search, no
// measurement, just division
func fixedRange(n, rowHeight, scrollTop, viewHeight, overscan int) rowRange {
	rowHeight = max(1, rowHeight)
	viewHeight = max(0, viewHeight)
	overscan = max(0, overscan)
	if n <= 0 || viewHeight == 0 {
		return emptyRange()
	}
	scrollTop = clampValMinMax(scrollTop, 0, max(0, n*rowHeight-viewHeight))
	start := scrollTop / rowHeight
	end := (scrollTop + viewHeight - 1) / rowHeight
	return rowRange{
		start: max(0, start-overscan),
		end:   min(n-1, end+overscan),
	}
}
