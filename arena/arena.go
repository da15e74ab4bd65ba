// Package arena implements a monotonic bump allocator that backs the
// storage of a single parse: every AST node and every interned
// (escape-decoded) string produced while parsing one source buffer lives here
// for the arena's lifetime and is freed collectively when it is
// dropped.
package arena

import "reflect"

const minChunkSize = 4096

// Arena is a monotonic region allocator. The zero value is an empty
// arena ready to use. An Arena must not be used from more than one
// goroutine at a time; independent parses should use independent
// Arenas.
type Arena struct {
	chunks [][]byte
	cur    []byte
	used   int
	pools  map[reflect.Type]any
}

// New returns an empty Arena.
func New() *Arena {
	return &Arena{}
}

// Bytes returns n zeroed bytes bump-allocated from the arena. The
// returned slice is valid for the lifetime of the Arena.
func (a *Arena) Bytes(n int) []byte {
	if n == 0 {
		return nil
	}
	if a.used+n > len(a.cur) {
		a.grow(n)
	}
	b := a.cur[a.used : a.used+n : a.used+n]
	a.used += n
	return b
}

// grow allocates a fresh chunk large enough to hold at least n bytes,
// doubling the previous chunk size each time (amortized O(1) bump
// allocation).
func (a *Arena) grow(n int) {
	size := minChunkSize
	if prev := cap(a.cur); prev*2 > size {
		size = prev * 2
	}
	if n > size {
		size = n
	}
	a.chunks = append(a.chunks, a.cur)
	a.cur = make([]byte, size)
	a.used = 0
}

// Intern copies b into arena-owned storage and returns the copy. Used
// by the scanner whenever a literal must be rewritten (escape
// decoding) rather than sliced directly from the source buffer.
func (a *Arena) Intern(b []byte) []byte {
	dst := a.Bytes(len(b))
	copy(dst, b)
	return dst
}

// InternString is Intern for a Go string, returning arena-owned bytes.
func (a *Arena) InternString(s string) []byte {
	dst := a.Bytes(len(s))
	copy(dst, s)
	return dst
}

// Reset drops all allocations, leaving the Arena empty and ready for a
// subsequent parse, which allocates fresh chunks and pools. Every slice
// and pointer previously handed out must no longer be used.
func (a *Arena) Reset() {
	a.chunks = a.chunks[:0]
	a.cur = nil
	a.used = 0
	a.pools = nil
}

const minPoolSize = 64

// typedPool is Arena's per-concrete-type analogue of the raw byte
// chunks: a geometrically-growing slice of T, so that AST nodes of the
// same type are batch-allocated from one backing array instead of each
// living in its own heap allocation. Earlier chunks are kept in
// chunks so every pointer handed out by alloc stays valid for the
// Arena's lifetime.
type typedPool[T any] struct {
	chunks [][]T
	cur    []T
	used   int
}

func (p *typedPool[T]) alloc(v T) *T {
	if p.used == len(p.cur) {
		size := minPoolSize
		if prev := len(p.cur); prev*2 > size {
			size = prev * 2
		}
		p.chunks = append(p.chunks, p.cur)
		p.cur = make([]T, size)
		p.used = 0
	}
	p.cur[p.used] = v
	ptr := &p.cur[p.used]
	p.used++
	return ptr
}

// Alloc copies v into a type-specific pool owned by a and returns a
// pointer to the copy. Every concrete AST node type gets its own pool
// (keyed by reflect.Type), batch-allocated the same way Bytes batches
// raw byte storage, so nodes built while parsing one source buffer are
// collectively owned by its Arena rather than individually by the Go
// heap.
func Alloc[T any](a *Arena, v T) *T {
	if a.pools == nil {
		a.pools = make(map[reflect.Type]any)
	}
	var zero T
	typ := reflect.TypeOf(zero)
	pool, ok := a.pools[typ].(*typedPool[T])
	if !ok {
		pool = &typedPool[T]{}
		a.pools[typ] = pool
	}
	return pool.alloc(v)
}

// Builder is an append-only growable vector that materializes as a
// plain Go slice once Build is called. It exists so parser code reads
// like "accumulate then freeze" instead of manual append bookkeeping,
// mirroring the arena-owned-slice role bumpalo::collections::Vec plays
// in the original implementation. The backing array it appends into is
// ordinary Go-heap memory -- append needs to be able to reallocate it
// freely -- so the built slice itself is not arena-owned; only items
// that were themselves Alloc'd (such as AST node pointers) live in
// arena storage.
type Builder[T any] struct {
	items []T
}

// NewBuilder returns an empty Builder. The Arena parameter is accepted
// for symmetry with Alloc/Intern and is not used; the Builder does not
// allocate from it.
func NewBuilder[T any](a *Arena) *Builder[T] {
	return &Builder[T]{}
}

// Push appends v.
func (b *Builder[T]) Push(v T) {
	b.items = append(b.items, v)
}

// Len reports the number of items pushed so far.
func (b *Builder[T]) Len() int {
	return len(b.items)
}

// Build returns the accumulated items as a slice. The Builder must not
// be reused after Build.
func (b *Builder[T]) Build() []T {
	if len(b.items) == 0 {
		return nil
	}
	return b.items
}
