package internal

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/v2/spinner"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/vlscroll/vl/internal/constants"
	"github.com/vlscroll/vl/internal/dev"
	"github.com/vlscroll/vl/internal/message"
	"github.com/vlscroll/vl/internal/style"
	"github.com/vlscroll/vl/internal/vlist"
)

func (m Model) initialize() (Model, tea.Cmd) {
	dev.Debug("initializing")
	defer dev.Debug("done initializing")

	if m.config.Source == nil {
		m.list = vlist.New(m.width, m.height, m.keyMap.ListKeyMap())
		m.initialized = true
		return m, func() tea.Msg { return message.ErrMsg{Err: errors.New("no record source configured")} }
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	m.spin = spinner.New(spinner.WithSpinner(spinner.MiniDot))
	m.spin.Style = style.Loading

	m.topBarHeight = lipgloss.Height(m.topBar())

	list := vlist.New(m.width, m.height-m.topBarHeight, m.keyMap.ListKeyMap())
	list.FooterStyle = style.Footer
	list.SelectedRowStyle = style.SelectedRow
	list.SetOverscan(m.config.Overscan)
	list.SetRowEstimate(m.config.RowEstimate)
	list.SetWrapText(m.config.Wrap)
	list.SetSelectionEnabled(m.config.SelectionEnabled)

	pageSize := m.config.PageSize
	if pageSize <= 0 {
		pageSize = constants.DefaultPageSize
	}
	pager := m.config.Source
	fetch := func(ctx context.Context, page int) ([]vlist.Renderable, bool, error) {
		loaded, err := pager.Load(ctx, page, pageSize)
		if err != nil {
			return nil, true, err
		}
		items := make([]vlist.Renderable, 0, len(loaded.Records))
		for _, record := range loaded.Records {
			items = append(items, NewRecordItem(record))
		}
		return items, loaded.HasMore, nil
	}
	m.loader = vlist.NewLoader(ctx, fetch, constants.LoadThresholdRows)
	list.SetLoader(m.loader)
	m.list = list

	m.initialized = true

	// kick off the first page immediately rather than waiting for a scroll
	m.spinning = true
	return m, tea.Batch(m.loader.LoadCmd(), m.spin.Tick)
}
