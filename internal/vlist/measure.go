package vlist

import (
	"strings"

	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

// Measurer reports the number of terminal rows an item occupies at the given
// width. The second return is false when measurement is impossible, in which
// case the item keeps its estimated height. Injecting a Measurer keeps the
// offset and range logic testable without rendering anything
type Measurer interface {
	Rows(item Renderable, width int) (int, bool)
}

// MeasurerFunc adapts a function to the Measurer interface
type MeasurerFunc func(item Renderable, width int) (int, bool)

func (f MeasurerFunc) Rows(item Renderable, width int) (int, bool) {
	return f(item, width)
}

// NewRenderMeasurer measures items by rendering them the same way View does,
// so measured heights always match painted rows
func NewRenderMeasurer(wrapText bool) Measurer {
	return renderMeasurer{wrapText: wrapText}
}

type renderMeasurer struct {
	wrapText bool
}

func (m renderMeasurer) Rows(item Renderable, width int) (int, bool) {
	if item == nil || width <= 0 {
		return 0, false
	}
	return len(renderLines(item.Render(), width, m.wrapText)), true
}

// renderLines converts an item's content into terminal rows at the given
// width. With wrapping on, long lines flow onto continuation rows; with
// wrapping off, each content line is one row, truncated with an indicator.
// Both measurement and painting go through here so they cannot disagree
func renderLines(content string, width int, wrapText bool) []string {
	if width <= 0 {
		return nil
	}
	if wrapText {
		// wordwrap respects word boundaries, wrap hard-breaks anything left over
		content = wrap.String(wordwrap.String(content, width), width)
	}
	lines := strings.Split(content, "\n")
	if !wrapText {
		for i := range lines {
			lines[i] = truncate.StringWithTail(lines[i], uint(width), continuationIndicator)
		}
	}
	return lines
}
