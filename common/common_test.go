package common

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestPresetSlot(t *testing.T) {
	cases := []struct {
		key  int
		want int
		ok   bool
	}{
		{Key1, 0, true},
		{Key9, 8, true},
		{Key0, 0, false},
		{KeySpace, 0, false},
	}
	for _, c := range cases {
		got, ok := PresetSlot(c.key)
		if ok != c.ok || got != c.want {
			t.Fatalf("key %d: expected (%d, %v), got (%d, %v)", c.key, c.want, c.ok, got, ok)
		}
	}
}

func TestCoalesce(t *testing.T) {
	if got := Coalesce("", "b", "c"); got != "b" {
		t.Fatalf("expected b, got %q", got)
	}
	if got := Coalesce(0, 0); got != 0 {
		t.Fatalf("expected zero, got %d", got)
	}
}

func TestSliceToBytes(t *testing.T) {
	if SliceToBytes([]float32(nil)) != nil {
		t.Fatalf("expected nil for empty slice")
	}
	raw := SliceToBytes([]float32{1.5, -2})
	if len(raw) != 8 {
		t.Fatalf("expected 8 bytes, got %d", len(raw))
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(raw[4:8])); got != -2 {
		t.Fatalf("expected -2, got %v", got)
	}
}
