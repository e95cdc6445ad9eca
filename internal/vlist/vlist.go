package vlist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"
	"github.com/vlscroll/vl/internal/dev"
)

// Terminology:
// - item: one Renderable in the list, occupying one or more terminal rows
// - row: a single terminal row of rendered content
// - offset: the cumulative row distance from the top of the list to an item
// - window: the contiguous range of items intersecting the viewport, plus
//   overscan items on each end that are measured but not painted
//
// The list renders only the items in the window. Item heights start as an
// estimate and are corrected by measurement the first time an item enters
// the window; corrected heights shift the offsets of everything below.

const continuationIndicator = "..."

// measureSettleLimit bounds the measure/re-resolve loop within one frame.
// Each pass measures every item in the window, so the window's offsets are
// exact after a single pass unless corrections moved the window itself
const measureSettleLimit = 4

const defaultOverscan = 5

// Model is a virtualized list component
type Model struct {
	// styles
	FooterStyle      lipgloss.Style
	SelectedRowStyle lipgloss.Style

	// keyMap is the keymap for the list
	keyMap KeyMap

	// items is the complete list of items, only a window of which is rendered
	items []Renderable

	// index tracks per-item heights and cumulative offsets
	index *offsetIndex

	// measurer corrects estimated heights once items are rendered
	measurer Measurer

	// loader, when set, fetches more items as scrolling nears the bottom
	loader *Loader

	// width is the width of the entire list in terminal columns
	width int

	// height is the height of the entire list in rows, including the footer
	height int

	// scrollTop is the number of rows scrolled out of view above the viewport
	scrollTop int

	// overscan is the number of extra items resolved beyond the strictly
	// visible window on each end
	overscan int

	// rowHeight, when positive, fixes every item at that height and disables
	// measurement entirely
	rowHeight int

	// wrapText is true if long lines flow onto continuation rows rather than
	// being truncated
	wrapText bool

	// selectionEnabled is true if the list allows individual item selection
	selectionEnabled bool

	// selectedItemIdx is the index of the current selection (only relevant
	// when selectionEnabled is true)
	selectedItemIdx int

	// footerVisible is false if the footer should never show
	footerVisible bool

	// onScroll, when set, is invoked after the scroll position changes
	onScroll func(scrollTop, totalRows int)
}

// New creates a new list model with reasonable defaults
func New(width, height int, keyMap KeyMap) (m Model) {
	m.width, m.height = max(0, width), max(0, height)
	m.keyMap = keyMap
	m.index = newOffsetIndex(1)
	m.measurer = NewRenderMeasurer(false)
	m.overscan = defaultOverscan
	m.footerVisible = true
	return m
}

// Update processes messages and updates the model
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	dev.DebugUpdateMsg("List", msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keyMap.Up):
			if m.selectionEnabled {
				m.selectTo(m.selectedItemIdx - 1)
			} else {
				m.scrollBy(-1)
			}

		case key.Matches(msg, m.keyMap.Down):
			if m.selectionEnabled {
				m.selectTo(m.selectedItemIdx + 1)
			} else {
				m.scrollBy(1)
			}

		case key.Matches(msg, m.keyMap.HalfPageUp):
			offset := max(1, m.visibleItemCount()/2)
			m.scrollBy(-m.contentRows() / 2)
			if m.selectionEnabled {
				m.selectTo(m.selectedItemIdx - offset)
			}

		case key.Matches(msg, m.keyMap.HalfPageDown):
			offset := max(1, m.visibleItemCount()/2)
			m.scrollBy(m.contentRows() / 2)
			if m.selectionEnabled {
				m.selectTo(m.selectedItemIdx + offset)
			}

		case key.Matches(msg, m.keyMap.PageUp):
			offset := max(1, m.visibleItemCount())
			m.scrollBy(-m.contentRows())
			if m.selectionEnabled {
				m.selectTo(m.selectedItemIdx - offset)
			}

		case key.Matches(msg, m.keyMap.PageDown):
			offset := max(1, m.visibleItemCount())
			m.scrollBy(m.contentRows())
			if m.selectionEnabled {
				m.selectTo(m.selectedItemIdx + offset)
			}

		case key.Matches(msg, m.keyMap.Top):
			if m.selectionEnabled {
				m.selectTo(0)
			} else {
				m.scrollTo(0)
			}

		case key.Matches(msg, m.keyMap.Bottom):
			if m.selectionEnabled {
				m.selectTo(len(m.items) - 1)
			} else {
				m.scrollTo(m.maxScrollTop())
			}
		}

		// every scroll movement is a chance to start loading the next page
		if m.loader != nil {
			return m, m.loader.MaybeLoad(m.rowsBelow())
		}

	case LoadedMsg:
		if m.loader == nil || !m.loader.Settle(msg) {
			// stale or unexpected settle, ignore entirely
			return m, nil
		}
		if msg.Err != nil {
			// loaded items stay intact; the embedding model surfaces the error
			return m, nil
		}
		if len(msg.Items) > 0 {
			m.AppendItems(msg.Items...)
		}
		// early pages may not fill the viewport, keep going until they do
		return m, m.loader.MaybeLoad(m.rowsBelow())
	}

	return m, nil
}

// View renders the list
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	window := m.reconcile()
	contentRows := m.contentRows()
	top := clampValMinMax(m.scrollTop, 0, m.maxScrollTop())

	var rows []string
	bottomItemIdx := -1
	if !window.empty() {
	paint:
		for i, y := window.start, m.offsetOfItem(window.start); i <= window.end; i++ {
			lines := m.renderItem(i)
			for j := range lines {
				rowY := y + j
				if rowY < top {
					continue
				}
				if rowY >= top+contentRows {
					break paint
				}
				rows = append(rows, lines[j])
				bottomItemIdx = i
			}
			y += len(lines)
		}
	}

	var viewString string
	for i := range rows {
		viewString += rows[i] + "\n"
	}

	if m.footerRows() > 0 {
		// pad so the footer shows up at the bottom
		viewString += strings.Repeat("\n", max(0, contentRows-len(rows)))
		viewString += m.footerLine(bottomItemIdx)
	} else {
		viewString = strings.TrimSuffix(viewString, "\n")
	}

	return lipgloss.NewStyle().Width(m.width).Height(m.height).Render(viewString)
}

func (m *Model) SetKeyMap(keyMap KeyMap) {
	m.keyMap = keyMap
}

// SetItems replaces the full item list, dropping all measured heights. When
// selection is enabled, the previous selection is maintained by item key
func (m *Model) SetItems(items []Renderable) {
	var prevKey string
	if m.selectionEnabled && 0 <= m.selectedItemIdx && m.selectedItemIdx < len(m.items) {
		prevKey = m.items[m.selectedItemIdx].Key()
	}

	m.items = items
	m.index.reset(len(items))
	m.scrollTop = clampValMinMax(m.scrollTop, 0, m.maxScrollTop())

	if m.selectionEnabled {
		m.selectedItemIdx = 0
		if prevKey != "" {
			for i := range items {
				if items[i].Key() == prevKey {
					m.selectedItemIdx = i
					break
				}
			}
		}
		m.scrollSoItemInView(m.selectedItemIdx)
	}
}

// AppendItems extends the list, growing the offset index rather than
// rebuilding it, so heights measured so far stay exact
func (m *Model) AppendItems(items ...Renderable) {
	m.items = append(m.items, items...)
	m.index.grow(len(items))
}

// SetLoader attaches a loader that fetches further items on demand
func (m *Model) SetLoader(loader *Loader) {
	m.loader = loader
}

// SetMeasurer overrides how item heights are measured
func (m *Model) SetMeasurer(measurer Measurer) {
	m.measurer = measurer
	m.index.resetMeasurements()
}

// SetOverscan sets how many extra items are resolved beyond the visible
// window on each end
func (m *Model) SetOverscan(overscan int) {
	m.overscan = max(0, overscan)
}

// SetFixedRowHeight fixes every item at the given height, skipping
// measurement entirely. A non-positive height returns to measured mode
func (m *Model) SetFixedRowHeight(rowHeight int) {
	m.rowHeight = max(0, rowHeight)
}

// SetRowEstimate sets the assumed height for items that have not been
// measured yet
func (m *Model) SetRowEstimate(estimate int) {
	m.index.setEstimate(estimate)
}

// SetWrapText sets whether the list wraps long lines. All measurements are
// invalidated since every item's height may change
func (m *Model) SetWrapText(wrapText bool) {
	if m.wrapText == wrapText {
		return
	}
	m.wrapText = wrapText
	m.measurer = NewRenderMeasurer(wrapText)
	m.index.resetMeasurements()
	m.scrollTop = clampValMinMax(m.scrollTop, 0, m.maxScrollTop())
}

// GetWrapText returns whether the list wraps long lines
func (m Model) GetWrapText() bool {
	return m.wrapText
}

// SetSelectionEnabled sets whether the list allows item selection
func (m *Model) SetSelectionEnabled(selectionEnabled bool) {
	m.selectionEnabled = selectionEnabled
	m.selectedItemIdx = clampValMinMax(m.selectedItemIdx, 0, max(0, len(m.items)-1))
}

// GetSelectionEnabled returns whether the list allows item selection
func (m Model) GetSelectionEnabled() bool {
	return m.selectionEnabled
}

// SetFooterVisible sets whether the footer can show when content overflows
func (m *Model) SetFooterVisible(footerVisible bool) {
	m.footerVisible = footerVisible
}

// SetOnScroll registers a callback invoked after the scroll position
// changes, for embedder side effects
func (m *Model) SetOnScroll(onScroll func(scrollTop, totalRows int)) {
	m.onScroll = onScroll
}

// SetSelectedItemIdx sets the selected item index, scrolling it into view
func (m *Model) SetSelectedItemIdx(selectedItemIdx int) {
	m.selectTo(selectedItemIdx)
}

// GetSelectedItemIdx returns the currently selected item index
func (m Model) GetSelectedItemIdx() int {
	if !m.selectionEnabled {
		return 0
	}
	return m.selectedItemIdx
}

// SelectedItem returns the currently selected item, or nil
func (m Model) SelectedItem() Renderable {
	if !m.selectionEnabled || m.selectedItemIdx < 0 || m.selectedItemIdx >= len(m.items) {
		return nil
	}
	return m.items[m.selectedItemIdx]
}

// SetWidth sets the list's width. Changing width invalidates all measured
// heights since wrapping and truncation depend on it
func (m *Model) SetWidth(width int) {
	m.setWidthHeight(width, m.height)
}

// SetHeight sets the list's height, including the footer
func (m *Model) SetHeight(height int) {
	m.setWidthHeight(m.width, height)
}

// ScrollTop returns the current scroll position in rows
func (m Model) ScrollTop() int {
	return clampValMinMax(m.scrollTop, 0, m.maxScrollTop())
}

// TotalRows returns the total content height in rows, estimates included
func (m Model) TotalRows() int {
	if m.rowHeight > 0 {
		return len(m.items) * m.rowHeight
	}
	return m.index.totalHeight()
}

// NumItems returns the number of items in the list
func (m Model) NumItems() int {
	return len(m.items)
}

func (m *Model) setWidthHeight(width, height int) {
	width, height = max(0, width), max(0, height)
	if width != m.width {
		m.index.resetMeasurements()
	}
	m.width, m.height = width, height
	m.scrollTop = clampValMinMax(m.scrollTop, 0, m.maxScrollTop())
}

// reconcile measures every item in the window and re-resolves until the
// window is stable, so painted rows always match the offset index. Returns
// the settled window including overscan
func (m Model) reconcile() rowRange {
	n := len(m.items)
	if n == 0 || m.width == 0 || m.height == 0 {
		return emptyRange()
	}
	if m.rowHeight > 0 {
		return fixedRange(n, m.rowHeight, m.scrollTop, m.contentRows(), m.overscan)
	}

	var window rowRange
	for pass := 0; pass < measureSettleLimit; pass++ {
		window = m.index.visibleRange(m.scrollTop, m.contentRows(), m.overscan)
		changed := false
		if m.measurer != nil {
			for i := window.start; i <= window.end; i++ {
				h, ok := m.measurer.Rows(m.items[i], m.width)
				if !ok {
					// unmeasurable now, keep the estimate
					continue
				}
				if m.index.setHeight(i, h) {
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}
	return window
}

func (m Model) currentWindow(overscan int) rowRange {
	if m.rowHeight > 0 {
		return fixedRange(len(m.items), m.rowHeight, m.scrollTop, m.contentRows(), overscan)
	}
	return m.index.visibleRange(m.scrollTop, m.contentRows(), overscan)
}

func (m Model) visibleItemCount() int {
	window := m.currentWindow(0)
	if window.empty() {
		return 0
	}
	return window.end - window.start + 1
}

// contentRows returns the rows available for items, leaving one for the
// footer when it shows
func (m Model) contentRows() int {
	return max(0, m.height-m.footerRows())
}

func (m Model) footerRows() int {
	if m.footerVisible && m.TotalRows() > m.height {
		return 1
	}
	return 0
}

func (m Model) maxScrollTop() int {
	return max(0, m.TotalRows()-m.contentRows())
}

func (m Model) rowsBelow() int {
	return max(0, m.TotalRows()-(m.ScrollTop()+m.contentRows()))
}

func (m Model) offsetOfItem(i int) int {
	if m.rowHeight > 0 {
		return clampValMinMax(i, 0, len(m.items)) * m.rowHeight
	}
	return m.index.offsetOf(i)
}

func (m Model) heightOfItem(i int) int {
	if m.rowHeight > 0 {
		return m.rowHeight
	}
	return m.index.heightAt(i)
}

func (m *Model) scrollTo(t int) {
	newTop := clampValMinMax(t, 0, m.maxScrollTop())
	if newTop == m.scrollTop {
		return
	}
	m.scrollTop = newTop
	if m.onScroll != nil {
		m.onScroll(m.scrollTop, m.TotalRows())
	}
}

func (m *Model) scrollBy(n int) {
	m.scrollTo(m.scrollTop + n)
}

func (m *Model) selectTo(i int) {
	if !m.selectionEnabled || len(m.items) == 0 {
		return
	}
	m.selectedItemIdx = clampValMinMax(i, 0, len(m.items)-1)
	m.scrollSoItemInView(m.selectedItemIdx)
}

func (m *Model) scrollSoItemInView(i int) {
	if i < 0 || i >= len(m.items) {
		return
	}
	// settle heights around the current window first so nearby moves are exact;
	// offsets of far-away items are estimates until they are rendered
	m.reconcile()
	top := m.offsetOfItem(i)
	bottom := top + m.heightOfItem(i)
	if top < m.scrollTop {
		m.scrollTo(top)
	} else if bottom > m.scrollTop+m.contentRows() {
		m.scrollTo(bottom - m.contentRows())
	}
}

// renderItem returns the terminal rows for item i, normalized to the height
// the offset index has recorded so painting and geometry cannot drift apart
func (m Model) renderItem(i int) []string {
	lines := renderLines(m.items[i].Render(), m.width, m.wrapText)
	want := m.heightOfItem(i)
	for len(lines) < want {
		lines = append(lines, "")
	}
	if len(lines) > want {
		lines = lines[:want]
	}
	if m.selectionEnabled && i == m.selectedItemIdx {
		for j := range lines {
			line := lines[j]
			if line == "" {
				// ensure selection is visible even if content empty
				line = " "
			}
			lines[j] = m.SelectedRowStyle.Render(line)
		}
	}
	return lines
}

func (m Model) footerLine(bottomItemIdx int) string {
	numerator := bottomItemIdx + 1
	if m.selectionEnabled {
		numerator = m.selectedItemIdx + 1
	}
	denominator := len(m.items)
	suffix := ""
	if m.loader != nil && m.loader.HasMore() {
		suffix = "+"
	}
	footerString := fmt.Sprintf("%d%% (%d/%d%s)", percent(numerator, denominator), numerator, denominator, suffix)
	return m.FooterStyle.Render(truncate.StringWithTail(footerString, uint(m.width), continuationIndicator))
}
