package internal

import (
	"github.com/vlscroll/vl/internal/keymap"
	"github.com/vlscroll/vl/internal/source"
)

type Config struct {
	KeyMap           keymap.KeyMap
	Source           source.Pager
	PageSize         int
	RowEstimate      int
	Overscan         int
	Wrap             bool
	SelectionEnabled bool
	Version          string
}
