package utils

import "testing"

func TestStringSetNoDuplicates(t *testing.T) {
	s := NewStringSet()

	if !s.Add("ABC123") {
		t.Error("first Add should return true")
	}
	if s.Add("ABC123") {
		t.Error("second Add of same value should return false")
	}
	if !s.Contains("ABC123") {
		t.Error("Contains should report an added value")
	}
	if s.Contains("XYZ") {
		t.Error("Contains should not report a value never added")
	}
	if s.Size() != 1 {
		t.Errorf("size: got %d, want 1", s.Size())
	}
}

func TestStringSetEmptyString(t *testing.T) {
	s := NewStringSet()
	if !s.Add("") {
		t.Error("empty string is a valid member")
	}
	if s.Size() != 1 {
		t.Errorf("size: got %d, want 1", s.Size())
	}
}
