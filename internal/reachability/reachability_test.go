package reachability_test

import (
	"sync"
	"testing"

	"github.com/edgard/birthdaybot/internal/reachability"
)

func TestSet(t *testing.T) {
	t.Parallel()

	s := reachability.New()

	if s.Contains(42) {
		t.Fatal("new set should be empty")
	}
	if !s.Add(42) {
		t.Error("Add() on a new owner should report true")
	}
	if s.Add(42) {
		t.Error("Add() on an existing owner should report false")
	}
	if !s.Contains(42) {
		t.Error("owner should be reachable after Add()")
	}
	if got := s.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}
	if !s.Remove(42) {
		t.Error("Remove() on a present owner should report true")
	}
	if s.Remove(42) {
		t.Error("Remove() on an absent owner should report false")
	}
	if s.Contains(42) {
		t.Error("owner should not be reachable after Remove()")
	}
}

func TestSetConcurrentAccess(t *testing.T) {
	t.Parallel()

	s := reachability.New()

	var wg sync.WaitGroup
	for i := int64(0); i < 50; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			s.Add(i)
		}()
		go func() {
			defer wg.Done()
			_ = s.Contains(i)
		}()
		go func() {
			defer wg.Done()
			s.Remove(i + 1000)
		}()
	}
	wg.Wait()

	if got := s.Len(); got != 50 {
		t.Errorf("Len() = %d, want 50", got)
	}
}
