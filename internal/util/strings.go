package util

import (
	"runtime"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/google/go-cmp/cmp"
)

// JoinWithSpacing lays out left and right at the edges of the given width,
// padding the middle with spaces. When they don't fit, right is dropped
// before left is truncated
func JoinWithSpacing(width int, left, right string) string {
	if width <= 0 {
		return ""
	}
	leftWidth, rightWidth := lipgloss.Width(left), lipgloss.Width(right)
	if leftWidth+rightWidth < width {
		return left + strings.Repeat(" ", width-leftWidth-rightWidth) + right
	}
	if leftWidth <= width {
		return left
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(left)
}

func CmpStr(t *testing.T, expected, actual string) {
	_, file, line, _ := runtime.Caller(1)
	testName := t.Name()
	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("\nTest %q failed at %s:%d\nDiff (-expected +actual):\n%s", testName, file, line, diff)
	}
}
