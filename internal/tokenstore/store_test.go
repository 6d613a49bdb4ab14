package tokenstore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFile(path)

	got, err := store.Get()
	if err != nil {
		t.Fatalf("Get() on missing file error = %v", err)
	}
	if !got.Empty() {
		t.Fatalf("Get() on missing file = %+v, want empty", got)
	}

	want := Record{Token: "abc.def.ghi", UserID: "42", Email: "a@example.com"}
	if err := store.Set(want); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err = store.Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != want {
		t.Fatalf("Get() = %+v, want %+v", got, want)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("session file mode = %v, want 0600", perm)
	}
}

func TestFileClearIsIdempotent(t *testing.T) {
	store := NewFile(filepath.Join(t.TempDir(), "session.json"))
	if err := store.Set(Record{Token: "t"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("second Clear() error = %v", err)
	}

	got, err := store.Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !got.Empty() {
		t.Fatalf("Get() after Clear = %+v, want empty", got)
	}
}

func TestMemoryClear(t *testing.T) {
	store := NewMemory(Record{Token: "t", Email: "x@example.com"})
	_ = store.Clear()
	_ = store.Clear()
	got, _ := store.Get()
	if got != (Record{}) {
		t.Fatalf("Get() after Clear = %+v, want zero record", got)
	}
}

func TestRedisHashMapping(t *testing.T) {
	record := Record{Token: "t", UserID: "7", Email: "e@example.com"}
	hash := recordToHash(record)

	fields := make(map[string]string, len(hash))
	for key, value := range hash {
		fields[key] = value.(string)
	}
	if got := recordFromHash(fields); got != record {
		t.Fatalf("recordFromHash(recordToHash()) = %+v, want %+v", got, record)
	}
}
