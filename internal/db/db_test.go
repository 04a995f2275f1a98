package db

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"), nil)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

type record struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestSaveLoadRoundTrip(t *testing.T) {
	db := openTestDB(t)

	if err := db.Save("records", []record{{Name: "a", Count: 1}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	// Overwrite keeps a single row
	if err := db.Save("records", []record{{Name: "b", Count: 2}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	var got []record
	ok, err := db.Load("records", &got)
	if err != nil || !ok {
		t.Fatalf("Load = %v, %v; want true, nil", ok, err)
	}
	if len(got) != 1 || got[0].Name != "b" {
		t.Errorf("Load returned %+v", got)
	}

	keys, err := db.Keys()
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if len(keys) != 1 || keys[0] != "records" {
		t.Errorf("Keys = %v", keys)
	}
}

func TestLoadMissingKey(t *testing.T) {
	db := openTestDB(t)

	var got []record
	ok, err := db.Load("nothing", &got)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if ok {
		t.Error("Load reported a missing key as found")
	}
}

func TestLoadMalformedValue(t *testing.T) {
	db := openTestDB(t)

	if err := db.Put("records", "{not json"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	var got []record
	ok, err := db.Load("records", &got)
	if err != nil {
		t.Fatalf("malformed value should not be an error, got %v", err)
	}
	if ok {
		t.Error("malformed value reported as found")
	}
}

func TestDelete(t *testing.T) {
	db := openTestDB(t)

	if err := db.Put("k", `"v"`); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := db.Delete("k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := db.Delete("k"); err != nil {
		t.Fatalf("Delete of missing key failed: %v", err)
	}
	if _, ok, _ := db.Get("k"); ok {
		t.Error("key still present after Delete")
	}
}

func TestSaveAll(t *testing.T) {
	db := openTestDB(t)

	err := db.SaveAll(map[string]any{
		"a": []int{1, 2},
		"b": map[string]bool{"on": true},
	})
	if err != nil {
		t.Fatalf("SaveAll failed: %v", err)
	}

	var a []int
	if ok, _ := db.Load("a", &a); !ok || len(a) != 2 {
		t.Errorf("a = %v (found %v)", a, ok)
	}
	var b map[string]bool
	if ok, _ := db.Load("b", &b); !ok || !b["on"] {
		t.Errorf("b = %v (found %v)", b, ok)
	}
}

func TestFirstTimeUser(t *testing.T) {
	db := openTestDB(t)

	first, err := db.FirstTimeUser()
	if err != nil {
		t.Fatalf("FirstTimeUser failed: %v", err)
	}
	if !first {
		t.Error("fresh database should report a first-time user")
	}

	if err := db.MarkOnboarded(); err != nil {
		t.Fatalf("MarkOnboarded failed: %v", err)
	}
	first, err = db.FirstTimeUser()
	if err != nil {
		t.Fatalf("FirstTimeUser failed: %v", err)
	}
	if first {
		t.Error("onboarded user reported as first-time")
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	if err := db.Save("settings", record{Name: "kept"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	db.Close()

	// Migrations are idempotent on an existing file
	db, err = Open(path, nil)
	if err != nil {
		t.Fatalf("Failed to reopen database: %v", err)
	}
	defer db.Close()

	var got record
	if ok, _ := db.Load("settings", &got); !ok || got.Name != "kept" {
		t.Errorf("settings = %+v (found %v)", got, ok)
	}
}

// TestLoadAfterKeysNoDeadlock guards the single-connection pool: Keys must
// release its rows before callers issue follow-up queries.
func TestLoadAfterKeysNoDeadlock(t *testing.T) {
	db := openTestDB(t)

	for _, k := range []string{"a", "b", "c"} {
		if err := db.Save(k, k); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	done := make(chan bool, 1)
	go func() {
		keys, err := db.Keys()
		if err != nil {
			t.Errorf("Keys failed: %v", err)
			done <- false
			return
		}
		for _, k := range keys {
			var v string
			if _, err := db.Load(k, &v); err != nil {
				t.Errorf("Load failed: %v", err)
				done <- false
				return
			}
		}
		done <- true
	}()

	select {
	case success := <-done:
		if !success {
			t.Fatal("Test failed during execution")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Test timed out - possible deadlock detected")
	}
}
