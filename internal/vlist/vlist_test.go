package vlist

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/vlscroll/vl/internal/util"
)

var (
	downKeyMsg       = tea.KeyPressMsg{Code: 'j', Text: "j"}
	upKeyMsg         = tea.KeyPressMsg{Code: 'k', Text: "k"}
	halfPgDownKeyMsg = tea.KeyPressMsg{Code: 'd', Text: "d"}
	goToTopKeyMsg    = tea.KeyPressMsg{Code: 'g', Text: "g"}
	goToBottomKeyMsg = tea.KeyPressMsg{Code: 'g', Text: "g", Mod: tea.ModShift}
	blue             = lipgloss.Color("#0000ff")
	selectionStyle   = lipgloss.NewStyle().Foreground(blue)
)

func newList(width, height int) Model {
	m := New(width, height, DefaultKeyMap())
	m.SelectedRowStyle = selectionStyle
	return m
}

func strItems(contents ...string) []Renderable {
	items := make([]Renderable, 0, len(contents))
	for _, c := range contents {
		items = append(items, RenderableString{Content: c})
	}
	return items
}

func TestList_Empty(t *testing.T) {
	m := newList(10, 4)
	util.CmpStr(t, pad(10, 4, []string{}), m.View())
}

func TestList_SmolDimensions(t *testing.T) {
	m := newList(0, 0)
	m.SetItems(strItems("a"))
	util.CmpStr(t, "", m.View())

	m.SetWidth(5)
	util.CmpStr(t, "", m.View())

	m.SetHeight(1)
	util.CmpStr(t, pad(5, 1, []string{"a"}), m.View())
}

func TestList_FitsWithoutFooter(t *testing.T) {
	m := newList(10, 5)
	m.SetItems(strItems("a", "b", "c"))
	util.CmpStr(t, pad(10, 5, []string{"a", "b", "c"}), m.View())
}

func TestList_ScrollKeys(t *testing.T) {
	m := newList(10, 3)
	m.SetItems(strItems("a", "b", "c", "d", "e", "f"))
	util.CmpStr(t, pad(10, 3, []string{"a", "b", "33% (2/6)"}), m.View())

	m, _ = m.Update(downKeyMsg)
	util.CmpStr(t, pad(10, 3, []string{"b", "c", "50% (3/6)"}), m.View())

	m, _ = m.Update(upKeyMsg)
	util.CmpStr(t, pad(10, 3, []string{"a", "b", "33% (2/6)"}), m.View())

	// scrolling above the top is a no-op
	m, _ = m.Update(upKeyMsg)
	util.CmpStr(t, pad(10, 3, []string{"a", "b", "33% (2/6)"}), m.View())

	m, _ = m.Update(goToBottomKeyMsg)
	util.CmpStr(t, pad(10, 3, []string{"e", "f", "100% (6/6)"}), m.View())

	// scrolling below the bottom is a no-op
	m, _ = m.Update(downKeyMsg)
	util.CmpStr(t, pad(10, 3, []string{"e", "f", "100% (6/6)"}), m.View())

	m, _ = m.Update(goToTopKeyMsg)
	util.CmpStr(t, pad(10, 3, []string{"a", "b", "33% (2/6)"}), m.View())
}

func TestList_HalfPageScroll(t *testing.T) {
	m := newList(10, 5)
	m.SetItems(strItems("a", "b", "c", "d", "e", "f"))
	util.CmpStr(t, pad(10, 5, []string{"a", "b", "c", "d", "66% (4/6)"}), m.View())

	m, _ = m.Update(halfPgDownKeyMsg)
	util.CmpStr(t, pad(10, 5, []string{"c", "d", "e", "f", "100% (6/6)"}), m.View())
}

func TestList_ViewIdempotent(t *testing.T) {
	m := newList(10, 3)
	m.SetItems(strItems("a", "b\nc", "d", "e"))
	first := m.View()
	second := m.View()
	util.CmpStr(t, first, second)
}

func TestList_TruncatesLongLines(t *testing.T) {
	m := newList(5, 2)
	m.SetItems(strItems("abcdefgh"))
	util.CmpStr(t, pad(5, 2, []string{"ab..."}), m.View())
}

func TestList_MeasuredHeights(t *testing.T) {
	m := newList(10, 4)
	m.SetItems(strItems("one", "two\nthree", "four", "five", "six"))

	// item 1 measures at two rows, pushing everything below it down
	util.CmpStr(t, pad(10, 4, []string{"one", "two", "three", "40% (2/5)"}), m.View())

	m, _ = m.Update(downKeyMsg)
	util.CmpStr(t, pad(10, 4, []string{"two", "three", "four", "60% (3/5)"}), m.View())

	m, _ = m.Update(goToBottomKeyMsg)
	util.CmpStr(t, pad(10, 4, []string{"four", "five", "six", "100% (5/5)"}), m.View())
}

func TestList_MeasurementUpdatesTotalRows(t *testing.T) {
	m := newList(10, 3)
	m.SetItems(strItems("a", "b\nc\nd", "e"))
	if total := m.TotalRows(); total != 3 {
		t.Errorf("expected estimated total 3, got %d", total)
	}
	_ = m.View()
	if total := m.TotalRows(); total != 5 {
		t.Errorf("expected measured total 5, got %d", total)
	}
}

func TestList_WidthChangeInvalidatesMeasurements(t *testing.T) {
	m := newList(6, 3)
	m.SetWrapText(true)
	m.SetItems(strItems("hello world", "x"))
	_ = m.View()
	if total := m.TotalRows(); total != 3 {
		t.Errorf("expected wrapped total 3, got %d", total)
	}

	m.SetWidth(20)
	if total := m.TotalRows(); total != 2 {
		t.Errorf("expected total back at estimates after width change, got %d", total)
	}
	_ = m.View()
	if total := m.TotalRows(); total != 2 {
		t.Errorf("expected remeasured total 2, got %d", total)
	}
}

func TestList_WrapText(t *testing.T) {
	m := newList(9, 3)
	m.SetWrapText(true)
	m.SetItems(strItems("aaaa bbbb cccc", "x", "y"))
	util.CmpStr(t, pad(9, 3, []string{"aaaa bbbb", "cccc", "33% (1/3)"}), m.View())

	// with wrapping off everything fits again and the footer goes away
	m.SetWrapText(false)
	util.CmpStr(t, pad(9, 3, []string{"aaaa b...", "x", "y"}), m.View())
}

func TestList_FixedRowHeight(t *testing.T) {
	m := newList(10, 4)
	m.SetFixedRowHeight(2)
	m.SetItems(strItems("a", "b", "c"))
	util.CmpStr(t, pad(10, 4, []string{"a", "", "b", "66% (2/3)"}), m.View())

	// the bottom-most rows are b's filler row, then c and its filler row
	m, _ = m.Update(goToBottomKeyMsg)
	util.CmpStr(t, pad(10, 4, []string{"", "c", "", "100% (3/3)"}), m.View())
}

func TestList_Selection(t *testing.T) {
	m := newList(10, 3)
	m.SetSelectionEnabled(true)
	m.SetItems(strItems("a", "b", "c", "d", "e", "f"))
	util.CmpStr(t, pad(10, 3, []string{selectionStyle.Render("a"), "b", "16% (1/6)"}), m.View())

	m, _ = m.Update(downKeyMsg)
	util.CmpStr(t, pad(10, 3, []string{"a", selectionStyle.Render("b"), "33% (2/6)"}), m.View())

	// selection moving past the viewport bottom scrolls it into view
	m, _ = m.Update(downKeyMsg)
	util.CmpStr(t, pad(10, 3, []string{"b", selectionStyle.Render("c"), "50% (3/6)"}), m.View())

	m, _ = m.Update(goToBottomKeyMsg)
	util.CmpStr(t, pad(10, 3, []string{"e", selectionStyle.Render("f"), "100% (6/6)"}), m.View())

	m, _ = m.Update(goToTopKeyMsg)
	util.CmpStr(t, pad(10, 3, []string{selectionStyle.Render("a"), "b", "16% (1/6)"}), m.View())
}

func TestList_SelectionMaintainedByKey(t *testing.T) {
	m := newList(10, 5)
	m.SetSelectionEnabled(true)
	m.SetItems(strItems("a", "b", "c"))
	m.SetSelectedItemIdx(2)

	m.SetItems(strItems("x", "c", "y"))
	if idx := m.GetSelectedItemIdx(); idx != 1 {
		t.Errorf("expected selection to follow key to index 1, got %d", idx)
	}
	if item := m.SelectedItem(); item == nil || item.Key() != "c" {
		t.Errorf("expected selected item c, got %v", item)
	}
}

func TestList_SelectionGoneKeyResets(t *testing.T) {
	m := newList(10, 5)
	m.SetSelectionEnabled(true)
	m.SetItems(strItems("a", "b", "c"))
	m.SetSelectedItemIdx(2)

	m.SetItems(strItems("x", "y"))
	if idx := m.GetSelectedItemIdx(); idx != 0 {
		t.Errorf("expected selection to reset to 0, got %d", idx)
	}
}

func TestList_LoadTriggeredNearBottom(t *testing.T) {
	fetched := false
	fetch := func(ctx context.Context, page int) ([]Renderable, bool, error) {
		fetched = true
		return strItems("e", "f"), false, nil
	}
	m := newList(10, 3)
	m.SetLoader(NewLoader(context.Background(), fetch, 50))
	m.SetItems(strItems("a", "b", "c", "d"))

	// footer advertises that more items exist
	util.CmpStr(t, pad(10, 3, []string{"a", "b", "50% (2/4+)"}), m.View())

	m, cmd := m.Update(downKeyMsg)
	if cmd == nil {
		t.Fatal("expected scroll near the bottom to start a load")
	}
	msg := cmd().(LoadedMsg)
	if !fetched {
		t.Fatal("expected the fetch to have run")
	}

	m, _ = m.Update(msg)
	if n := m.NumItems(); n != 6 {
		t.Errorf("expected 6 items after append, got %d", n)
	}
	// exhausted source drops the footer suffix
	util.CmpStr(t, pad(10, 3, []string{"b", "c", "50% (3/6)"}), m.View())
}

func TestList_StaleLoadedMsgIgnored(t *testing.T) {
	fetch := func(ctx context.Context, page int) ([]Renderable, bool, error) {
		return strItems("x"), true, nil
	}
	m := newList(10, 3)
	m.SetLoader(NewLoader(context.Background(), fetch, 50))
	m.SetItems(strItems("a", "b", "c", "d"))

	m, _ = m.Update(LoadedMsg{ID: "from-a-previous-life", Items: strItems("zzz")})
	if n := m.NumItems(); n != 4 {
		t.Errorf("expected stale message to be ignored, got %d items", n)
	}
}

func TestList_AppendKeepsScrollPosition(t *testing.T) {
	m := newList(10, 3)
	m.SetItems(strItems("a", "b", "c", "d"))
	m, _ = m.Update(downKeyMsg)
	if top := m.ScrollTop(); top != 1 {
		t.Fatalf("expected scrollTop 1, got %d", top)
	}

	m.AppendItems(strItems("e", "f")...)
	if top := m.ScrollTop(); top != 1 {
		t.Errorf("expected scrollTop to stay at 1 after append, got %d", top)
	}
	util.CmpStr(t, pad(10, 3, []string{"b", "c", "50% (3/6)"}), m.View())
}

func TestList_OnScroll(t *testing.T) {
	var gotTop, gotTotal int
	calls := 0
	m := newList(10, 3)
	m.SetItems(strItems("a", "b", "c", "d", "e"))
	m.SetOnScroll(func(scrollTop, totalRows int) {
		gotTop, gotTotal = scrollTop, totalRows
		calls++
	})

	m, _ = m.Update(downKeyMsg)
	if calls != 1 || gotTop != 1 || gotTotal != 5 {
		t.Errorf("expected callback (1, 5) once, got (%d, %d) after %d calls", gotTop, gotTotal, calls)
	}

	// clamped no-op movement does not fire the callback
	m, _ = m.Update(upKeyMsg)
	m, _ = m.Update(upKeyMsg)
	if calls != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
}

func TestList_FooterHidden(t *testing.T) {
	m := newList(10, 3)
	m.SetFooterVisible(false)
	m.SetItems(strItems("a", "b", "c", "d", "e", "f"))
	util.CmpStr(t, pad(10, 3, []string{"a", "b", "c"}), m.View())
}

func TestList_InjectedMeasurer(t *testing.T) {
	m := newList(10, 4)
	m.SetMeasurer(MeasurerFunc(func(item Renderable, width int) (int, bool) {
		return 2, true
	}))
	m.SetItems(strItems("a", "b", "c"))

	// every item takes two rows per the injected measurer, content padded
	util.CmpStr(t, pad(10, 4, []string{"a", "", "b", "66% (2/3)"}), m.View())
	if total := m.TotalRows(); total != 6 {
		t.Errorf("expected total 6, got %d", total)
	}
}
