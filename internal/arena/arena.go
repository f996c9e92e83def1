// Package arena implements a bump-allocated region that owns every AST
// node, symbol, and interned byte string produced by the compiler
// pipeline. The whole region is freed at once; individual allocations
// are never released.
package arena

import "unsafe"

// blockSize is the capacity of each backing block, in bytes. Large
// single allocations (arrays bigger than this) get a dedicated block.
const blockSize = 64 * 1024

// Arena is a growable list of fixed-capacity blocks. It is not safe
// for concurrent use: the pipeline accesses it from a single logical
// owner at a time (spec §5).
type Arena struct {
	blocks []*block
	cur    *block
}

type block struct {
	data []byte
	used int
}

// New creates an empty Arena with one initial block.
func New() *Arena {
	a := &Arena{}
	a.addBlock(blockSize)
	return a
}

func (a *Arena) addBlock(size int) *block {
	b := &block{data: make([]byte, size)}
	a.blocks = append(a.blocks, b)
	a.cur = b
	return b
}

func alignUp(offset, align int) int {
	if align <= 1 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}

// alloc reserves size bytes aligned to align bytes and returns a
// pointer to the start of the reservation.
func (a *Arena) alloc(size, align int) unsafe.Pointer {
	start := alignUp(a.cur.used, align)
	if start+size > len(a.cur.data) {
		need := size + align
		if need < blockSize {
			need = blockSize
		}
		b := a.addBlock(need)
		start = alignUp(0, align)
		b.used = start + size
		return unsafe.Pointer(&b.data[start])
	}
	a.cur.used = start + size
	return unsafe.Pointer(&a.cur.data[start])
}

// Alloc allocates and zero-initializes a single T, owned by the arena
// for the arena's lifetime.
func Alloc[T any](a *Arena) *T {
	var zero T
	p := (*T)(a.alloc(int(unsafe.Sizeof(zero)), int(unsafe.Alignof(zero))))
	*p = zero
	return p
}

// AllocSlice allocates a zero-initialized slice of n contiguous Ts.
func AllocSlice[T any](a *Arena, n int) []T {
	if n == 0 {
		return nil
	}
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	p := a.alloc(elemSize*n, int(unsafe.Alignof(zero)))
	return unsafe.Slice((*T)(p), n)
}

// AllocBytes allocates n raw bytes, 1-byte aligned, used for interned
// strings and scratch buffers that outlive the tokenizer call that
// produced them.
func (a *Arena) AllocBytes(n int) []byte {
	if n == 0 {
		return nil
	}
	p := a.alloc(n, 1)
	return unsafe.Slice((*byte)(p), n)
}

// InternString copies s into arena-owned memory and returns the copy.
// The arena, not the original string's backing array, owns the
// returned string's bytes from this point on.
func (a *Arena) InternString(s string) string {
	buf := a.AllocBytes(len(s))
	copy(buf, s)
	return unsafe.String(unsafe.SliceData(buf), len(buf))
}

// Blocks reports how many backing blocks are currently allocated.
// Exposed for tests that assert growth behavior; not part of the
// pipeline's functional contract.
func (a *Arena) Blocks() int { return len(a.blocks) }

// Destroy releases every block. The Arena (and every node/symbol it
// owns) must not be used afterward.
func (a *Arena) Destroy() {
	a.blocks = nil
	a.cur = nil
}
