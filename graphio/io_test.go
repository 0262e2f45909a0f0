package graphio

import (
	"bytes"
	"testing"
)

func TestWriteReadRoundTrip(t *testing.T) {
	edges := [][]Edge{
		{{Dst: 1, Weight: 2}, {Dst: 2, Weight: 4}},
		{{Dst: 2, Weight: 1}},
		{},
	}

	var buf bytes.Buffer
	if err := Write(&buf, edges); err != nil {
		t.Fatalf("Write: %v", err)
	}

	g, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if g.NumVertices() != 3 {
		t.Fatalf("NumVertices = %d, want 3", g.NumVertices())
	}
	if g.NumEdges() != 3 {
		t.Fatalf("NumEdges = %d, want 3", g.NumEdges())
	}
	for v, want := range edges {
		got := g.OutEdges(uint32(v))
		if len(got) != len(want) {
			t.Fatalf("vertex %d: got %d edges, want %d", v, len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("vertex %d edge %d: got %+v, want %+v", v, i, got[i], want[i])
			}
		}
	}
}

func TestReadRejectsBadVersion(t *testing.T) {
	var buf bytes.Buffer
	hdr := make([]byte, headerSize)
	byteOrder.PutUint64(hdr[0:8], 99)
	buf.Write(hdr)
	if _, err := Read(&buf); err == nil {
		t.Fatal("expected an error for an unsupported version")
	}
}

func TestPad8(t *testing.T) {
	cases := map[int]int{0: 0, 1: 8, 7: 8, 8: 8, 9: 16}
	for in, want := range cases {
		if got := pad8(in); got != want {
			t.Fatalf("pad8(%d) = %d, want %d", in, got, want)
		}
	}
}
