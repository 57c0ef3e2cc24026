package crypto

import (
	"bytes"
	"testing"
)

func TestOSSource_Length(t *testing.T) {
	source := OSSource{}
	for _, n := range []int{0, 1, 16, 32, 4096} {
		buf, err := source.Bytes(n)
		if err != nil {
			t.Fatalf("Bytes(%d) failed: %v", n, err)
		}
		if len(buf) != n {
			t.Errorf("Bytes(%d) returned %d bytes", n, len(buf))
		}
	}
}

func TestOSSource_DistinctDraws(t *testing.T) {
	source := OSSource{}
	first, err := source.Bytes(32)
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}
	second, err := source.Bytes(32)
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}
	if bytes.Equal(first, second) {
		t.Error("Two 32-byte draws were identical")
	}
}
