package internal

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/charmbracelet/bubbles/v2/spinner"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wrap"
	"github.com/vlscroll/vl/internal/command"
	"github.com/vlscroll/vl/internal/constants"
	"github.com/vlscroll/vl/internal/dev"
	"github.com/vlscroll/vl/internal/keymap"
	"github.com/vlscroll/vl/internal/message"
	"github.com/vlscroll/vl/internal/style"
	"github.com/vlscroll/vl/internal/toast"
	"github.com/vlscroll/vl/internal/util"
	"github.com/vlscroll/vl/internal/vlist"
)

type Model struct {
	config        Config
	keyMap        keymap.KeyMap
	list          vlist.Model
	loader        *vlist.Loader
	spin          spinner.Model
	spinning      bool
	toast         toast.Model
	err           error
	width, height int
	topBarHeight  int // assumed constant
	initialized   bool
	cancel        context.CancelFunc
}

func InitialModel(c Config) Model {
	return Model{
		config: c,
		keyMap: c.KeyMap,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	dev.DebugUpdateMsg("App", msg)
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case message.ErrMsg:
		m.err = msg.Err
		return m, nil

	// WindowSizeMsg arrives once on startup, then again every time the window is resized
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if !m.initialized {
			m, cmd = m.initialize()
			cmds = append(cmds, cmd)
		}
		m.list.SetWidth(m.width)
		m.list.SetHeight(m.height - m.topBarHeight)
		return m, tea.Batch(cmds...)

	case vlist.LoadedMsg:
		if msg.Err != nil {
			newToast := toast.New(fmt.Sprintf("load failed: %s", msg.Err), style.ToastError)
			m.toast = newToast
			cmds = append(cmds, newToast.TimeoutCmd(constants.ToastDuration))
		}
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd, m.spinCmd())
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		if m.loader.Fetching() {
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		m.spinning = false
		return m, nil

	case toast.TimeoutMsg:
		m.toast, cmd = m.toast.Update(msg)
		return m, cmd

	case command.ContentCopiedToClipboardMsg:
		toastMsg := "copied to clipboard"
		toastStyle := style.ToastInfo
		if msg.Err != nil {
			toastMsg = fmt.Sprintf("copy failed: %s", msg.Err)
			toastStyle = style.ToastError
		}
		newToast := toast.New(toastMsg, toastStyle)
		m.toast = newToast
		return m, newToast.TimeoutCmd(constants.ToastDuration)
	}

	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd, m.spinCmd())
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.err != nil {
		errString := wrap.String(m.err.Error(), max(1, m.width))
		return lipgloss.JoinVertical(
			lipgloss.Left,
			"Error:",
			"",
			errString,
			"",
			fmt.Sprintf("%s to quit", m.keyMap.Quit.Help().Key),
		)
	}
	if !m.initialized {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.topBar(), m.list.View())
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	if key.Matches(msg, m.keyMap.Quit) {
		m.cleanup()
		return m, tea.Quit
	}

	// ignore key messages other than exit if an error is present
	if m.err != nil {
		return m, nil
	}
	if !m.initialized {
		return m, nil
	}

	if key.Matches(msg, m.keyMap.Wrap) {
		m.list.SetWrapText(!m.list.GetWrapText())
		return m, nil
	}

	if key.Matches(msg, m.keyMap.Selection) {
		m.list.SetSelectionEnabled(!m.list.GetSelectionEnabled())
		return m, nil
	}

	if key.Matches(msg, m.keyMap.Copy) {
		if item, ok := m.list.SelectedItem().(RecordItem); ok {
			return m, command.CopyContentToClipboardCmd(item.Record().Body)
		}
		return m, nil
	}

	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd, m.spinCmd())
	return m, tea.Batch(cmds...)
}

func (m Model) topBar() string {
	padding := "   "
	left := style.Title.Render("vl") + " " + m.config.Version
	if m.loader.Fetching() {
		left += padding + style.Loading.Render(m.spin.View()+" loading")
	}
	if m.toast.Visible {
		left += padding + m.toast.View()
	}
	right := fmt.Sprintf("%s to quit", m.keyMap.Quit.Help().Key)
	return style.TopBar.Render(util.JoinWithSpacing(m.width, left, right))
}

// spinCmd starts the spinner ticking when a fetch has just gone in flight.
// Ticks stop on their own once the loader settles
func (m *Model) spinCmd() tea.Cmd {
	if m.loader.Fetching() && !m.spinning {
		m.spinning = true
		return m.spin.Tick
	}
	return nil
}

func (m Model) cleanup() {
	if m.cancel != nil {
		m.cancel()
	}
	if closer, ok := m.config.Source.(io.Closer); ok {
		_ = closer.Close()
	}
}
