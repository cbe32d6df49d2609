package bootloader

import (
	"errors"
	"testing"
)

func TestFakeEntry(t *testing.T) {
	var f FakeEntry
	if err := f.Enter(); err != nil {
		t.Fatalf("Enter: %v", err)
	}
	if f.Entered() != 1 {
		t.Errorf("Entered: got %d, want 1", f.Entered())
	}

	f.EnterError = errors.New("no update image")
	if err := f.Enter(); err == nil {
		t.Error("expected error")
	}
	if f.Entered() != 2 {
		t.Errorf("Entered: got %d, want 2", f.Entered())
	}
}
