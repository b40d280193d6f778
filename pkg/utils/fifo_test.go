package utils

import "testing"

func TestFIFOPushPop(t *testing.T) {
	f := NewFIFO[int](4)

	for i := 0; i < 4; i++ {
		if !f.Push(i) {
			t.Fatalf("push %d: expected success", i)
		}
	}
	if f.Push(4) {
		t.Fatal("push into full FIFO: expected failure")
	}

	for i := 0; i < 4; i++ {
		got := f.Pop()
		if got == nil || *got != i {
			t.Fatalf("pop %d: got %v", i, got)
		}
	}
	if f.Pop() != nil {
		t.Fatal("pop from empty FIFO: expected nil")
	}
}

func TestFIFOWrapsAround(t *testing.T) {
	f := NewFIFO[int](3)
	f.Push(1)
	f.Push(2)
	f.Pop()
	f.Push(3)
	f.Push(4)

	var got []int
	for {
		v := f.Pop()
		if v == nil {
			break
		}
		got = append(got, *v)
	}

	want := []int{2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestFIFOPeekDoesNotConsume(t *testing.T) {
	f := NewFIFO[string](2)
	f.Push("a")

	if p := f.Peek(); p == nil || *p != "a" {
		t.Fatalf("peek: got %v", p)
	}
	if f.Size != 1 {
		t.Fatalf("peek should not consume, size = %d", f.Size)
	}
}

func TestFIFOClear(t *testing.T) {
	f := NewFIFO[int](2)
	f.Push(1)
	f.Push(2)
	f.Clear()

	if f.Size != 0 {
		t.Fatalf("size after clear = %d, want 0", f.Size)
	}
	if !f.Push(9) {
		t.Fatal("push after clear should succeed")
	}
}
