package cache

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	bolt "go.etcd.io/bbolt"
)

// setupTestCache creates a temporary endpoint cache for testing
func setupTestCache(t *testing.T, ttl time.Duration, compression bool) (*EndpointCache, func()) {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "endpoints.db")

	ec, err := NewEndpointCache(dbPath, ttl, compression)
	if err != nil {
		t.Fatalf("Failed to create test cache: %v", err)
	}

	cleanup := func() {
		ec.Close()
	}
	return ec, cleanup
}

func scheduleParams() map[string]any {
	return map[string]any{"team_id": 147, "start_date": "2025-03-01", "end_date": "2025-11-15"}
}

func TestNewEndpointCacheRequiresPositiveTTL(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "endpoints.db")

	if _, err := NewEndpointCache(dbPath, 0, false); err == nil {
		t.Error("Expected error for zero TTL")
	}
	if _, err := NewEndpointCache(dbPath, -time.Hour, false); err == nil {
		t.Error("Expected error for negative TTL")
	}
}

func TestHashParamsOrderIndependent(t *testing.T) {
	p1 := map[string]any{"team_id": 147, "start_date": "2025-06-01", "end_date": "2025-06-30"}
	p2 := map[string]any{"end_date": "2025-06-30", "team_id": 147, "start_date": "2025-06-01"}

	h1 := HashParams(p1)
	h2 := HashParams(p2)
	if h1 != h2 {
		t.Errorf("Expected identical hashes for set-equal params, got %q and %q", h1, h2)
	}
	if len(h1) != 8 {
		t.Errorf("Expected 8-char hash, got %q", h1)
	}

	p3 := map[string]any{"team_id": 111, "start_date": "2025-06-01", "end_date": "2025-06-30"}
	if HashParams(p3) == h1 {
		t.Error("Expected different hash for different params")
	}
}

func TestSetAndGet(t *testing.T) {
	ec, cleanup := setupTestCache(t, 6*time.Hour, false)
	defer cleanup()

	payload := map[string]any{"games": []string{"NYY@BOS"}}
	if err := ec.Set("mlb", "schedule", scheduleParams(), payload); err != nil {
		t.Fatalf("Failed to set value: %v", err)
	}

	raw, found := ec.Get("mlb", "schedule", scheduleParams())
	if !found {
		t.Fatal("Expected to find the entry, but it was not found")
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal payload: %v", err)
	}
	games, ok := decoded["games"].([]any)
	if !ok || len(games) != 1 || games[0] != "NYY@BOS" {
		t.Errorf("Unexpected payload contents: %v", decoded)
	}
}

func TestGetMissingKey(t *testing.T) {
	ec, cleanup := setupTestCache(t, 6*time.Hour, false)
	defer cleanup()

	if _, found := ec.Get("mlb", "schedule", scheduleParams()); found {
		t.Error("Expected a miss for an unset key")
	}
}

func TestSetReplacesExistingEntry(t *testing.T) {
	ec, cleanup := setupTestCache(t, 6*time.Hour, false)
	defer cleanup()

	params := scheduleParams()
	if err := ec.Set("mlb", "schedule", params, "first"); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}
	if err := ec.Set("mlb", "schedule", params, "second"); err != nil {
		t.Fatalf("Failed to replace: %v", err)
	}

	raw, found := ec.Get("mlb", "schedule", params)
	if !found {
		t.Fatal("Expected entry after replacement")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s != "second" {
		t.Errorf("Expected replaced payload %q, got %q (err: %v)", "second", s, err)
	}

	if stats := ec.Stats(); stats.Total != 1 {
		t.Errorf("Expected 1 entry after replacement, got %d", stats.Total)
	}
}

func TestTTLBoundary(t *testing.T) {
	ec, cleanup := setupTestCache(t, time.Hour, false)
	defer cleanup()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ec.now = func() time.Time { return base }

	if err := ec.Set("mlb", "team_record", map[string]any{"team_id": 147}, "28-14"); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}

	// Just inside the TTL
	ec.now = func() time.Time { return base.Add(time.Hour - time.Second) }
	if _, found := ec.Get("mlb", "team_record", map[string]any{"team_id": 147}); !found {
		t.Error("Expected entry to be retrievable just before expiry")
	}

	// Just past the TTL
	ec.now = func() time.Time { return base.Add(time.Hour + time.Second) }
	if _, found := ec.Get("mlb", "team_record", map[string]any{"team_id": 147}); found {
		t.Error("Expected entry to be absent just after expiry")
	}
}

func TestClearExpired(t *testing.T) {
	ec, cleanup := setupTestCache(t, time.Hour, false)
	defer cleanup()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ec.now = func() time.Time { return base }
	if err := ec.Set("mlb", "schedule", map[string]any{"team_id": 147}, "old"); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}

	ec.now = func() time.Time { return base.Add(2 * time.Hour) }
	if err := ec.Set("mlb", "schedule", map[string]any{"team_id": 111}, "fresh"); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}

	removed := ec.ClearExpired()
	if removed != 1 {
		t.Errorf("Expected 1 expired entry removed, got %d", removed)
	}

	// The live entry must survive the sweep
	if _, found := ec.Get("mlb", "schedule", map[string]any{"team_id": 111}); !found {
		t.Error("Expected live entry to survive ClearExpired")
	}

	stats := ec.Stats()
	if stats.Total != 1 || stats.Valid != 1 {
		t.Errorf("Expected 1 valid entry after sweep, got %+v", stats)
	}
}

func TestClearAll(t *testing.T) {
	ec, cleanup := setupTestCache(t, time.Hour, false)
	defer cleanup()

	for i, team := range []int{147, 111, 139} {
		if err := ec.Set("mlb", "schedule", map[string]any{"team_id": team}, i); err != nil {
			t.Fatalf("Failed to set: %v", err)
		}
	}

	removed := ec.ClearAll()
	if removed != 3 {
		t.Errorf("Expected 3 entries removed, got %d", removed)
	}

	stats := ec.Stats()
	if stats.Total != 0 {
		t.Errorf("Expected empty cache after ClearAll, got %+v", stats)
	}

	// Cache must remain usable after a full clear
	if err := ec.Set("mlb", "schedule", scheduleParams(), "again"); err != nil {
		t.Fatalf("Failed to set after ClearAll: %v", err)
	}
	if _, found := ec.Get("mlb", "schedule", scheduleParams()); !found {
		t.Error("Expected entry after post-clear set")
	}
}

func TestInvalidate(t *testing.T) {
	ec, cleanup := setupTestCache(t, time.Hour, false)
	defer cleanup()

	if ec.Invalidate("mlb", "schedule", scheduleParams()) {
		t.Error("Expected false when invalidating a missing entry")
	}

	if err := ec.Set("mlb", "schedule", scheduleParams(), "payload"); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}
	if !ec.Invalidate("mlb", "schedule", scheduleParams()) {
		t.Error("Expected true when invalidating a present entry")
	}
	if _, found := ec.Get("mlb", "schedule", scheduleParams()); found {
		t.Error("Expected entry to be gone after invalidation")
	}
}

func TestCompressionRoundTrip(t *testing.T) {
	ec, cleanup := setupTestCache(t, time.Hour, true)
	defer cleanup()

	payload := map[string]any{"calendar": []map[string]string{
		{"gameDate": "2025-06-01", "opponentAbbr": "@ BOS", "result": "W"},
		{"gameDate": "2025-06-02", "opponentAbbr": "@ BOS", "result": "L"},
	}}
	if err := ec.Set("mlb", "schedule_context", map[string]any{"team": "NYY"}, payload); err != nil {
		t.Fatalf("Failed to set compressed payload: %v", err)
	}

	raw, found := ec.Get("mlb", "schedule_context", map[string]any{"team": "NYY"})
	if !found {
		t.Fatal("Expected compressed entry to be found")
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal decompressed payload: %v", err)
	}
	if _, ok := decoded["calendar"]; !ok {
		t.Errorf("Unexpected payload after round trip: %v", decoded)
	}
}

func TestCorruptEntryTreatedAsMiss(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "endpoints.db")

	ec, err := NewEndpointCache(dbPath, time.Hour, false)
	if err != nil {
		t.Fatalf("Failed to create cache: %v", err)
	}
	if err := ec.Set("mlb", "schedule", scheduleParams(), "good"); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}
	ec.Close()

	// Corrupt the stored bytes directly
	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		t.Fatalf("Failed to reopen db: %v", err)
	}
	k := key("mlb", "schedule", HashParams(scheduleParams()))
	err = db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(k), []byte("{not json"))
	})
	db.Close()
	if err != nil {
		t.Fatalf("Failed to corrupt entry: %v", err)
	}

	ec2, err := NewEndpointCache(dbPath, time.Hour, false)
	if err != nil {
		t.Fatalf("Failed to reopen cache: %v", err)
	}
	defer ec2.Close()

	if _, found := ec2.Get("mlb", "schedule", scheduleParams()); found {
		t.Error("Expected corrupt entry to behave as a miss")
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "endpoints.db")

	ec, err := NewEndpointCache(dbPath, 6*time.Hour, false)
	if err != nil {
		t.Fatalf("Failed to create cache: %v", err)
	}
	if err := ec.Set("statcast", "pitch_mix", map[string]any{"player": "Gerrit Cole"}, []string{"FF", "SL"}); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}
	ec.Close()

	ec2, err := NewEndpointCache(dbPath, 6*time.Hour, false)
	if err != nil {
		t.Fatalf("Failed to reopen cache: %v", err)
	}
	defer ec2.Close()

	raw, found := ec2.Get("statcast", "pitch_mix", map[string]any{"player": "Gerrit Cole"})
	if !found {
		t.Fatal("Expected entry to survive reopen")
	}
	var pitches []string
	if err := json.Unmarshal(raw, &pitches); err != nil || len(pitches) != 2 {
		t.Errorf("Unexpected payload after reopen: %s (err: %v)", raw, err)
	}
}

func TestStats(t *testing.T) {
	ec, cleanup := setupTestCache(t, time.Hour, false)
	defer cleanup()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ec.now = func() time.Time { return base }
	ec.Set("mlb", "schedule", map[string]any{"team_id": 147}, "a")

	ec.now = func() time.Time { return base.Add(2 * time.Hour) }
	ec.Set("mlb", "schedule", map[string]any{"team_id": 111}, "b")

	stats := ec.Stats()
	if stats.Total != 2 {
		t.Errorf("Expected 2 total entries, got %d", stats.Total)
	}
	if stats.Expired != 1 {
		t.Errorf("Expected 1 expired entry, got %d", stats.Expired)
	}
	if stats.Valid != 1 {
		t.Errorf("Expected 1 valid entry, got %d", stats.Valid)
	}
	if stats.TotalSizeBytes <= 0 {
		t.Errorf("Expected positive size, got %d", stats.TotalSizeBytes)
	}
}
