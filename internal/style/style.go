package style

import "github.com/charmbracelet/lipgloss/v2"

var (
	Regular = lipgloss.NewStyle()
	Bold    = Regular.Bold(true)

	Title       = Bold.Foreground(lipgloss.Color("#58A2EE"))
	TopBar      = Regular
	Footer      = Bold
	SelectedRow = Regular.Reverse(true)
	Gutter      = Regular.Foreground(lipgloss.Color("#7C60D7"))
	Loading     = Regular.Foreground(lipgloss.Color("#FE7A00"))
	ToastInfo   = Regular.Foreground(lipgloss.Color("#3FE34B"))
	ToastError  = Regular.Foreground(lipgloss.Color("#FD2C4C"))
)
