package workset

import (
	"sync"
	"sync/atomic"

	"github.com/obim-sssp/obim-sssp/utils"
)

// HSet is a two-level hash set: the table is partitioned into fixed
// shards by hash, and within a shard membership is tracked by a
// lock-free open-addressing CAS probe (slot value is v+1, 0 is empty),
// so two workers hashing into the same shard still never block each
// other. A shard that fills up (extremely unlikely at the shard widths
// used here, but possible under adversarial hash collisions) spills
// into a small mutex-guarded overflow map shared across all shards —
// the "shared overflow" half of the two-level design. Table capacity
// is rounded up to a power of two via utils.RoundUpPow; the shard index
// is the hash modulo the shard count.
type HSet struct {
	shardWidth uint32
	numShards  uint32
	table      []atomic.Uint32

	overflowMu sync.Mutex
	overflow   map[uint32]struct{}
}

// NewHSet sizes the table for roughly n expected entries, spread over
// shards of width 8 (32 bytes of uint32 slots).
func NewHSet(n int) *HSet {
	if n < 64 {
		n = 64
	}
	cap := utils.RoundUpPow(uint64(n) * 2)
	const shardWidth = 8
	numShards := uint32(cap) / shardWidth
	if numShards == 0 {
		numShards = 1
	}
	return &HSet{
		shardWidth: shardWidth,
		numShards:  numShards,
		table:      make([]atomic.Uint32, numShards*shardWidth),
		overflow:   make(map[uint32]struct{}),
	}
}

func hash32(v uint32) uint32 {
	// Integer mixing: xor-shift, multiply by an odd 32-bit constant,
	// xor-shift again, so high bits of v influence the low bits that
	// the shard modulo uses and low-order collisions in v don't
	// cluster in the same shard.
	v ^= v >> 16
	v *= 0x45d9f3b
	v ^= v >> 16
	return v
}

func (h *HSet) shardStart(v uint32) uint32 {
	return (hash32(v) % h.numShards) * h.shardWidth
}

func (h *HSet) TryEnter(v uint32) bool {
	start := h.shardStart(v)
	tag := v + 1
	for i := uint32(0); i < h.shardWidth; i++ {
		slot := &h.table[start+i]
	retry:
		cur := slot.Load()
		switch {
		case cur == tag:
			return false
		case cur == 0:
			if slot.CompareAndSwap(0, tag) {
				return true
			}
			goto retry // lost the race for this slot; re-examine it
		}
	}
	h.overflowMu.Lock()
	defer h.overflowMu.Unlock()
	if _, present := h.overflow[v]; present {
		return false
	}
	h.overflow[v] = struct{}{}
	return true
}

func (h *HSet) Leave(v uint32) {
	start := h.shardStart(v)
	tag := v + 1
	for i := uint32(0); i < h.shardWidth; i++ {
		slot := &h.table[start+i]
		if slot.Load() == tag {
			slot.Store(0)
			return
		}
	}
	h.overflowMu.Lock()
	delete(h.overflow, v)
	h.overflowMu.Unlock()
}

var _ Set = (*HSet)(nil)
