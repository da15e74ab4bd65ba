package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArena_BytesDoesNotAlias(t *testing.T) {
	a := New()

	first := a.Bytes(8)
	for i := range first {
		first[i] = byte(i)
	}

	second := a.Bytes(8)
	for i := range second {
		second[i] = 0xFF
	}

	for i, b := range first {
		assert.Equal(t, byte(i), b, "earlier allocation must survive a later one")
	}
}

func TestArena_Intern(t *testing.T) {
	a := New()

	src := []byte("hello")
	out := a.Intern(src)

	assert.Equal(t, src, out)

	src[0] = 'H'
	assert.NotEqual(t, src[0], out[0], "intern must copy, not alias")
}

func TestArena_GrowsAcrossChunks(t *testing.T) {
	a := New()

	// Force several chunk growths.
	total := 0
	for i := 0; i < 100; i++ {
		n := 1000
		b := a.Bytes(n)
		assert.Len(t, b, n)
		total += n
	}
	assert.Greater(t, total, minChunkSize)
}

func TestArena_Reset(t *testing.T) {
	a := New()
	a.Bytes(64)
	assert.NotZero(t, a.used)

	a.Reset()
	assert.Zero(t, a.used)
	assert.Nil(t, a.cur)
}

func TestBuilder_PushBuild(t *testing.T) {
	a := New()
	b := NewBuilder[int](a)

	for i := 0; i < 5; i++ {
		b.Push(i)
	}

	assert.Equal(t, []int{0, 1, 2, 3, 4}, b.Build())
	assert.Equal(t, 5, b.Len())
}

func TestBuilder_EmptyBuildsNil(t *testing.T) {
	a := New()
	b := NewBuilder[string](a)
	assert.Nil(t, b.Build())
}

func TestAlloc(t *testing.T) {
	a := New()
	p := Alloc(a, 42)
	assert.Equal(t, 42, *p)
}

func TestAlloc_DistinctPointersSurviveLaterAllocs(t *testing.T) {
	a := New()

	type node struct{ n int }
	ptrs := make([]*node, 0, minPoolSize*2+3)
	for i := 0; i < minPoolSize*2+3; i++ {
		ptrs = append(ptrs, Alloc(a, node{n: i}))
	}
	for i, p := range ptrs {
		assert.Equal(t, i, p.n, "earlier allocation must survive a pool growth")
	}
}

func TestAlloc_SeparatePoolsPerType(t *testing.T) {
	a := New()
	ip := Alloc(a, 1)
	sp := Alloc(a, "x")
	assert.Equal(t, 1, *ip)
	assert.Equal(t, "x", *sp)
}

func TestArena_ResetClearsPools(t *testing.T) {
	a := New()
	Alloc(a, 7)
	a.Reset()
	assert.Nil(t, a.pools)
}
