package domain

import "testing"

func TestDailyStore_GetAbsent(t *testing.T) {
	s := NewDailyStore()

	if rec := s.Get("u1", "draw"); rec != nil {
		t.Errorf("Expected nil for absent key, got %+v", rec)
	}
}

func TestDailyStore_PutOverwrites(t *testing.T) {
	s := NewDailyStore()

	s.Put("u1", "draw", "2024-05-01", 3)
	s.Put("u1", "draw", "2024-05-02", 7)

	rec := s.Get("u1", "draw")
	if rec == nil {
		t.Fatal("Expected record")
	}
	if rec.Date != "2024-05-02" || rec.Payload != 7 {
		t.Errorf("Expected overwritten record, got %+v", rec)
	}
}

func TestDailyStore_IsFresh(t *testing.T) {
	s := NewDailyStore()
	s.Put("u1", "draw", "2024-05-01", 3)

	if !s.IsFresh("u1", "draw", "2024-05-01") {
		t.Error("Expected same-date record to be fresh")
	}
	if s.IsFresh("u1", "draw", "2024-05-02") {
		t.Error("Expected stale record not to be fresh")
	}
	if s.IsFresh("u2", "draw", "2024-05-01") {
		t.Error("Expected absent record not to be fresh")
	}
	if s.IsFresh("u1", "quote", "2024-05-01") {
		t.Error("Expected other feature not to be fresh")
	}
}

func TestDailyStore_UnresolvedDateNeverFresh(t *testing.T) {
	s := NewDailyStore()
	s.Put("u1", "draw", "", 3)

	if s.IsFresh("u1", "draw", "") {
		t.Error("Expected unresolved date never to be fresh")
	}
}

func TestDailyStore_KeysAreIndependent(t *testing.T) {
	s := NewDailyStore()
	s.Put("u1", "draw", "2024-05-01", 1)
	s.Put("u1", "quote", "2024-05-01", "text")
	s.Put("u2", "draw", "2024-05-01", 2)

	if rec := s.Get("u1", "draw"); rec.Payload != 1 {
		t.Errorf("u1/draw payload mismatch: %+v", rec)
	}
	if rec := s.Get("u1", "quote"); rec.Payload != "text" {
		t.Errorf("u1/quote payload mismatch: %+v", rec)
	}
	if rec := s.Get("u2", "draw"); rec.Payload != 2 {
		t.Errorf("u2/draw payload mismatch: %+v", rec)
	}
}
