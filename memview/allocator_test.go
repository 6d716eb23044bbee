package memview

import (
	"testing"
	"unsafe"
)

func asBytes(v View) []byte {
	return unsafe.Slice((*byte)(v.First), v.Size)
}

func TestSystemAllocator(t *testing.T) {
	a := NewSystemAllocator()

	t.Run("BasicAllocation", func(t *testing.T) {
		v := a.Allocate(1024)
		if v.IsNull() {
			t.Fatal("allocation failed")
		}

		data := asBytes(v)
		for i := range data {
			data[i] = byte(i % 256)
		}

		for i, b := range data {
			if b != byte(i%256) {
				t.Fatalf("data corruption at index %d", i)
			}
		}

		if !a.Deallocate(v) {
			t.Fatal("deallocate failed")
		}
	})

	t.Run("ZeroAllocation", func(t *testing.T) {
		v := a.Allocate(0)
		if !v.IsNull() {
			t.Error("zero-byte allocation should return the null view")
		}
	})

	t.Run("Reallocation", func(t *testing.T) {
		v := a.Allocate(512)
		if v.IsNull() {
			t.Fatal("initial allocation failed")
		}

		data := asBytes(v)
		for i := range data {
			data[i] = byte(i % 256)
		}

		grown := a.Reallocate(v, 1024)
		if grown.IsNull() {
			t.Fatal("reallocation failed")
		}

		newData := asBytes(grown)
		for i := 0; i < 512; i++ {
			if newData[i] != byte(i%256) {
				t.Fatalf("data corruption after realloc at index %d", i)
			}
		}
	})

	t.Run("DeallocateIdempotentOnNullView", func(t *testing.T) {
		if !a.Deallocate(View{}) {
			t.Error("Deallocate on the null view must report true")
		}
	})
}

func TestArenaAllocator(t *testing.T) {
	under := NewSystemAllocator()

	arena, err := NewArenaAllocator(under, 256)
	if err != nil {
		t.Fatalf("NewArenaAllocator: %v", err)
	}

	t.Run("BumpAllocation", func(t *testing.T) {
		v1 := arena.Allocate(64)
		v2 := arena.Allocate(64)

		if v1.IsNull() || v2.IsNull() {
			t.Fatal("expected both allocations to succeed")
		}

		if v1.First == v2.First {
			t.Error("expected distinct addresses")
		}
	})

	t.Run("ExhaustionReturnsNullView", func(t *testing.T) {
		if v := arena.Allocate(1 << 20); !v.IsNull() {
			t.Error("expected exhaustion to return the null view")
		}
	})

	t.Run("DeallocateAllRewindsCursor", func(t *testing.T) {
		before := arena.Used()
		if before == 0 {
			t.Fatal("expected prior allocations to have advanced the cursor")
		}

		arena.DeallocateAll()

		if arena.Used() != 0 {
			t.Errorf("Used() = %d after DeallocateAll, want 0", arena.Used())
		}
	})

	t.Run("IndividualDeallocateIsNoOp", func(t *testing.T) {
		v := arena.Allocate(16)
		if !arena.Deallocate(v) {
			t.Error("Deallocate should always report true for an arena")
		}

		if arena.Used() == 0 {
			t.Error("an individual Deallocate must not rewind the cursor")
		}
	})
}

func TestNewArenaAllocatorRejectsNonPositiveSize(t *testing.T) {
	under := NewSystemAllocator()

	if _, err := NewArenaAllocator(under, 0); err == nil {
		t.Error("expected an error for a zero-sized arena")
	}
}
