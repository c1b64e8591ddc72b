package state

import (
	"sync"
	"testing"
)

func TestManagerDefaultsToNone(t *testing.T) {
	t.Parallel()
	m := NewManager()
	if got := m.GetUserState(42); got != None {
		t.Errorf("unset state = %q, want %q", got, None)
	}
}

func TestManagerSetAndGet(t *testing.T) {
	t.Parallel()
	m := NewManager()
	m.SetUserState(42, Chatting)
	if got := m.GetUserState(42); got != Chatting {
		t.Errorf("state = %q, want %q", got, Chatting)
	}
	if got := m.GetUserState(43); got != None {
		t.Errorf("other user's state = %q, want %q", got, None)
	}
}

func TestManagerTempData(t *testing.T) {
	t.Parallel()
	m := NewManager()

	if _, ok := m.GetTempData(1, "diary_day"); ok {
		t.Error("temp data should start empty")
	}

	m.SetTempData(1, "diary_day", "2026-03-14")
	v, ok := m.GetTempData(1, "diary_day")
	if !ok || v != "2026-03-14" {
		t.Errorf("temp data = %v, %v", v, ok)
	}

	m.ClearTempData(1)
	if _, ok := m.GetTempData(1, "diary_day"); ok {
		t.Error("temp data should be gone after clear")
	}
}

func TestManagerConcurrentAccess(t *testing.T) {
	t.Parallel()
	m := NewManager()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.SetUserState(int64(i%5), WaitingForFoodEntry)
			m.GetUserState(int64(i % 5))
			m.SetTempData(int64(i%5), "k", i)
			m.GetTempData(int64(i%5), "k")
		}()
	}
	wg.Wait()
}
