package vlist

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
)

func percent(a, b int) int {
	if b == 0 {
		return 0
	}
	return int(float32(a) / float32(b) * 100)
}

func clampValMinMax(v, minimum, maximum int) int {
	return max(minimum, min(maximum, v))
}

// pad is a test helper function that pads the given lines to the given width
// and height. for example, pad(5, 4, []string{"a", "b", "c"}) becomes:
// "a    "
// "b    "
// "c    "
// "     "
// as a single string
func pad(width, height int, lines []string) string {
	var res []string
	for _, line := range lines {
		resLine := line
		numSpaces := width - lipgloss.Width(line)
		if numSpaces > 0 {
			resLine += strings.Repeat(" ", numSpaces)
		}
		res = append(res, resLine)
	}
	numEmptyLines := height - len(lines)
	for i := 0; i < numEmptyLines; i++ {
		res = append(res, strings.Repeat(" ", width))
	}
	return strings.Join(res, "\n")
}
