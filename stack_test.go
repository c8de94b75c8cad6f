package overlay

import "testing"

func TestGroupStackPushMovesToFront(t *testing.T) {
	var s groupStack
	s.Push("a")
	s.Push("b")
	s.Push("c")
	if got := s.Peek(); got != "c" {
		t.Fatalf("Peek() = %q, want %q", got, "c")
	}

	// Re-pushing an existing name promotes it without duplicating.
	s.Push("a")
	if got := s.Peek(); got != "a" {
		t.Errorf("Peek() = %q, want %q", got, "a")
	}
	if got := s.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}

	want := []string{"a", "c", "b"}
	for i, name := range want {
		if got := s.Pop(); got != name {
			t.Errorf("Pop() #%d = %q, want %q", i, got, name)
		}
	}
}

func TestGroupStackEmpty(t *testing.T) {
	var s groupStack
	if got := s.Peek(); got != "" {
		t.Errorf("Peek() on empty stack = %q, want \"\"", got)
	}
	if got := s.Pop(); got != "" {
		t.Errorf("Pop() on empty stack = %q, want \"\"", got)
	}
}

func TestGroupStackClear(t *testing.T) {
	var s groupStack
	s.Push("a")
	s.Push("b")
	s.Clear()
	if got := s.Len(); got != 0 {
		t.Errorf("Len() after Clear = %d, want 0", got)
	}
}
