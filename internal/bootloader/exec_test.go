//go:build unix && !tinygo

package bootloader

import (
	"fmt"
	"strings"
	"testing"
)

func TestExecRequiresPath(t *testing.T) {
	err := (Exec{}).Enter()
	if err == nil {
		t.Fatal("expected error with empty path")
	}
	wrapped := fmt.Errorf("enter bootloader: %w", err).Error()
	if n := strings.Count(wrapped, "bootloader"); n != 1 {
		t.Errorf("wrapped error %q repeats bootloader %d times", wrapped, n)
	}
}

func TestExecMissingBinary(t *testing.T) {
	err := Exec{Path: "/nonexistent/joyhmi-update"}.Enter()
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
}
