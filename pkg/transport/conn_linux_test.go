//go:build linux

package transport

import "testing"

func TestHtons(t *testing.T) {
	if got := htons(0x0003); got != 0x0300 {
		t.Fatalf("got %x, want 0x0300", got)
	}
	if got := htons(0x88B5); got != 0xB588 {
		t.Fatalf("got %x, want 0xb588", got)
	}
}
