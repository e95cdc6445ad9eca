package util

import (
	"testing"
)

func TestJoinWithSpacing(t *testing.T) {
	CmpStr(t, "left   right", JoinWithSpacing(12, "left", "right"))

	// right is dropped when both don't fit
	CmpStr(t, "left", JoinWithSpacing(9, "left", "right"))

	// left is truncated when it alone doesn't fit
	CmpStr(t, "lef", JoinWithSpacing(3, "left", "right"))

	CmpStr(t, "", JoinWithSpacing(0, "left", "right"))
}
