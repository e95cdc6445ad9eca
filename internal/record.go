package internal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/vlscroll/vl/internal/source"
	"github.com/vlscroll/vl/internal/style"
	"github.com/vlscroll/vl/internal/vlist"
)

// RecordItem adapts a record for the list: a styled sequence number gutter
// followed by the record body, continuation lines indented under the gutter
type RecordItem struct {
	record source.Record
}

var _ vlist.Renderable = RecordItem{}

func NewRecordItem(record source.Record) RecordItem {
	return RecordItem{record: record}
}

func (r RecordItem) Render() string {
	gutter := fmt.Sprintf("%6d │ ", r.record.Seq)
	indent := strings.Repeat(" ", lipgloss.Width(gutter))
	lines := strings.Split(r.record.Body, "\n")
	for i := 1; i < len(lines); i++ {
		lines[i] = indent + lines[i]
	}
	return style.Gutter.Render(gutter) + strings.Join(lines, "\n")
}

func (r RecordItem) Key() string {
	return r.record.Key
}

// Record returns the underlying record, e.g. for copying its raw body
func (r RecordItem) Record() source.Record {
	return r.record
}
