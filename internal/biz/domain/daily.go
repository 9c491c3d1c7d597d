package domain

// DailyRecord is the per-user, per-feature state of a date-gated skill.
// The date comes from the external date source, not the process clock,
// so every user and feature shares one authoritative day boundary.
type DailyRecord struct {
	Date    string // YYYY-MM-DD
	Payload any
}

type dailyKey struct {
	UserID  string
	Feature string
}

// DailyStore keeps at most one DailyRecord per (user, feature) key.
// Records are overwritten when the date advances and never evicted.
//
// Not safe for concurrent use: the dispatcher handles one event at a
// time, so no locking is needed here. Callers that dispatch
// concurrently must serialize access themselves.
type DailyStore struct {
	records map[dailyKey]DailyRecord
}

// NewDailyStore creates an empty store
func NewDailyStore() *DailyStore {
	return &DailyStore{records: make(map[dailyKey]DailyRecord)}
}

// Get returns the record for (user, feature), or nil if absent
func (s *DailyStore) Get(userID, feature string) *DailyRecord {
	if rec, ok := s.records[dailyKey{userID, feature}]; ok {
		return &rec
	}
	return nil
}

// Put overwrites the record for (user, feature)
func (s *DailyStore) Put(userID, feature, date string, payload any) {
	s.records[dailyKey{userID, feature}] = DailyRecord{Date: date, Payload: payload}
}

// IsFresh reports whether a record exists and was written today.
// An unresolved date (empty string) is never fresh.
func (s *DailyStore) IsFresh(userID, feature, today string) bool {
	if today == "" {
		return false
	}
	rec := s.Get(userID, feature)
	return rec != nil && rec.Date == today
}
