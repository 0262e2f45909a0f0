package graphio

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/obim-sssp/obim-sssp/enforce"
)

// Graph is an in-memory compressed-sparse-row graph: nodeIndex[v] is
// the offset into dst/weight where v's out-edges begin, nodeIndex[v+1]
// the offset where they end (so nodeIndex has NumNodes+1 entries, the
// classic CSR trick of an extra sentinel avoiding a branch on the last
// vertex).
type Graph struct {
	nodeIndex []uint64
	dst       []uint32
	weight    []uint32
}

// NumVertices implements engine.Graph.
func (g *Graph) NumVertices() uint32 { return uint32(len(g.nodeIndex) - 1) }

// NumEdges reports the total out-edge count.
func (g *Graph) NumEdges() uint64 { return uint64(len(g.dst)) }

// OutEdges implements engine.Graph.
func (g *Graph) OutEdges(v uint32) []Edge {
	start, end := g.nodeIndex[v], g.nodeIndex[v+1]
	edges := make([]Edge, end-start)
	for i := range edges {
		edges[i] = Edge{Dst: g.dst[start+uint64(i)], Weight: g.weight[start+uint64(i)]}
	}
	return edges
}

// Read parses the binary CSR format from r: a Header, then NumNodes+1
// node-index uint64s, then NumEdges uint32 destinations (padded to 8
// bytes), then NumEdges uint32 weights (padded to 8 bytes).
// EdgeDataSize must be 4; this package only supports a single
// uint32-wide weight column on disk.
func Read(r io.Reader) (*Graph, error) {
	br := bufio.NewReader(r)

	hdrBuf := make([]byte, headerSize)
	if _, err := io.ReadFull(br, hdrBuf); err != nil {
		return nil, fmt.Errorf("graphio: reading header: %w", err)
	}
	hdr := Header{
		Version:      byteOrder.Uint64(hdrBuf[0:8]),
		EdgeDataSize: byteOrder.Uint64(hdrBuf[8:16]),
		NumNodes:     byteOrder.Uint64(hdrBuf[16:24]),
		NumEdges:     byteOrder.Uint64(hdrBuf[24:32]),
	}
	if hdr.Version != CurrentVersion {
		return nil, fmt.Errorf("graphio: unsupported version %d", hdr.Version)
	}
	if hdr.EdgeDataSize != 4 {
		return nil, fmt.Errorf("graphio: unsupported edge data size %d", hdr.EdgeDataSize)
	}

	nodeIndex := make([]uint64, hdr.NumNodes+1)
	if err := readUint64Array(br, nodeIndex); err != nil {
		return nil, fmt.Errorf("graphio: reading node index: %w", err)
	}

	dst, err := readUint32ArrayPadded(br, hdr.NumEdges)
	if err != nil {
		return nil, fmt.Errorf("graphio: reading edge destinations: %w", err)
	}
	weight, err := readUint32ArrayPadded(br, hdr.NumEdges)
	if err != nil {
		return nil, fmt.Errorf("graphio: reading edge weights: %w", err)
	}

	return &Graph{nodeIndex: nodeIndex, dst: dst, weight: weight}, nil
}

// ReadFile opens path and reads it as a CSR graph.
func ReadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

func readUint64Array(r io.Reader, out []uint64) error {
	buf := make([]byte, len(out)*8)
	if _, err := io.ReadFull(r, buf); err != nil {
		return err
	}
	for i := range out {
		out[i] = byteOrder.Uint64(buf[i*8:])
	}
	return nil
}

func readUint32ArrayPadded(r io.Reader, n uint64) ([]uint32, error) {
	raw := pad8(int(n) * 4)
	buf := make([]byte, raw)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	out := make([]uint32, n)
	for i := range out {
		out[i] = byteOrder.Uint32(buf[i*4:])
	}
	return out, nil
}

// Write serializes a CSR graph described by per-vertex adjacency lists
// (edges[v] are v's out-edges, any order) to the binary format Read
// understands.
func Write(w io.Writer, edges [][]Edge) error {
	numNodes := uint64(len(edges))
	var numEdges uint64
	for _, es := range edges {
		numEdges += uint64(len(es))
	}

	bw := bufio.NewWriter(w)
	hdrBuf := make([]byte, headerSize)
	byteOrder.PutUint64(hdrBuf[0:8], CurrentVersion)
	byteOrder.PutUint64(hdrBuf[8:16], 4)
	byteOrder.PutUint64(hdrBuf[16:24], numNodes)
	byteOrder.PutUint64(hdrBuf[24:32], numEdges)
	if _, err := bw.Write(hdrBuf); err != nil {
		return err
	}

	nodeIndex := make([]uint64, numNodes+1)
	var offset uint64
	for v, es := range edges {
		nodeIndex[v] = offset
		offset += uint64(len(es))
	}
	nodeIndex[numNodes] = offset
	if err := writeUint64Array(bw, nodeIndex); err != nil {
		return err
	}

	dst := make([]uint32, 0, numEdges)
	weight := make([]uint32, 0, numEdges)
	for _, es := range edges {
		for _, e := range es {
			dst = append(dst, e.Dst)
			weight = append(weight, e.Weight)
		}
	}
	if err := writeUint32ArrayPadded(bw, dst); err != nil {
		return err
	}
	if err := writeUint32ArrayPadded(bw, weight); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteFile serializes edges to path, overwriting it if present.
func WriteFile(path string, edges [][]Edge) error {
	f, err := os.Create(path)
	enforce.ENFORCE(err)
	defer f.Close()
	return Write(f, edges)
}

func writeUint64Array(w io.Writer, vals []uint64) error {
	buf := make([]byte, len(vals)*8)
	for i, v := range vals {
		byteOrder.PutUint64(buf[i*8:], v)
	}
	_, err := w.Write(buf)
	return err
}

func writeUint32ArrayPadded(w io.Writer, vals []uint32) error {
	buf := make([]byte, pad8(len(vals)*4))
	for i, v := range vals {
		byteOrder.PutUint32(buf[i*4:], v)
	}
	_, err := w.Write(buf)
	return err
}
