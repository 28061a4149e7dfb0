package cache

import (
	"bytes"
	"testing"
	"time"
)

func TestBoltCacheStoresAndExpiresResponses(t *testing.T) {
	dir := t.TempDir()
	opts := Options{
		ResponseTTL:     1 * time.Second,
		CleanupInterval: 1 * time.Second,
	}

	storeRaw, err := openBolt(dir+"/responses.db", opts)
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	store := storeRaw.(*boltCache)
	defer store.Close()

	key := "http://stats.example.org?method=API.get"
	body := []byte(`{"visits": 3}`)

	if _, ok, err := store.Get(key); err != nil || ok {
		t.Fatalf("expected miss on empty cache, ok=%v err=%v", ok, err)
	}

	if err := store.Put(key, body); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := store.Get(key)
	if err != nil || !ok {
		t.Fatalf("expected hit, ok=%v err=%v", ok, err)
	}
	if !bytes.Equal(got, body) {
		t.Fatalf("body = %s, want %s", got, body)
	}

	// Fast-forward cleanup cadence and trigger expiry.
	store.lastCleanup.Store(time.Now().Add(-2 * time.Second).Unix())
	time.Sleep(1100 * time.Millisecond)

	if _, ok, err := store.Get(key); err != nil {
		t.Fatalf("Get after expiry: %v", err)
	} else if ok {
		t.Fatalf("expected entry to expire and be removed")
	}
}

func TestNewStoreSupportsNoop(t *testing.T) {
	store, err := NewStore("none", "", Options{})
	if err != nil {
		t.Fatalf("NewStore none: %v", err)
	}
	if err := store.Put("k", []byte("{}")); err != nil {
		t.Fatalf("noop store Put: %v", err)
	}
	if _, ok, err := store.Get("k"); err != nil || ok {
		t.Fatalf("noop store must always miss")
	}
}

func TestNewStoreRejectsUnknownType(t *testing.T) {
	if _, err := NewStore("redis", "", Options{}); err == nil {
		t.Fatalf("expected error for unsupported cache type")
	}
}
