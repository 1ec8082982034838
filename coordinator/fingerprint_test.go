package coordinator_test

import (
	"encoding/json"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/deevus/matchday-tui/coordinator"
	"github.com/deevus/matchday-tui/match"
	"github.com/deevus/matchday-tui/store"
)

func TestCacheKey(t *testing.T) {
	if got := coordinator.CacheKey("42", match.KindPlayerStats); got != "matchday:42:playerStats" {
		t.Errorf("unexpected key %q", got)
	}
}

func TestFingerprintCache_Hit(t *testing.T) {
	clk := newClock(0)
	fc := coordinator.NewFingerprintCache(store.NewMemory(), clk.Now, nil)

	if err := fc.Put("k", json.RawMessage(`{"10":{"playerId":10}}`), "1,2,3", time.Second); err != nil {
		t.Fatal(err)
	}
	got, ok := fc.Get("k", "1,2,3")
	if !ok {
		t.Fatal("expected hit")
	}
	if string(got) != `{"10":{"playerId":10}}` {
		t.Errorf("unexpected data %s", got)
	}
}

func TestFingerprintCache_MismatchRemoves(t *testing.T) {
	mem := store.NewMemory()
	fc := coordinator.NewFingerprintCache(mem, newClock(0).Now, nil)

	if err := fc.Put("k", json.RawMessage(`[]`), "1,2,3", coordinator.DefaultFilledTTL); err != nil {
		t.Fatal(err)
	}
	if _, ok := fc.Get("k", "1,2,4"); ok {
		t.Error("expected miss for a different fingerprint")
	}
	if _, ok := mem.Read("k"); ok {
		t.Error("expected mismatched entry to be removed")
	}
	if _, ok := fc.Get("k", "1,2,3"); ok {
		t.Error("expected miss after removal")
	}
}

func TestFingerprintCache_TTL(t *testing.T) {
	clk := newClock(0)
	mem := store.NewMemory()
	fc := coordinator.NewFingerprintCache(mem, clk.Now, nil)

	if err := fc.Put("k", json.RawMessage(`[]`), "fp", time.Second); err != nil {
		t.Fatal(err)
	}

	clk.Set(999)
	if _, ok := fc.Get("k", "fp"); !ok {
		t.Error("expected hit at 999ms")
	}
	clk.Set(1001)
	if _, ok := fc.Get("k", "fp"); ok {
		t.Error("expected miss at 1001ms")
	}
	if mem.Len() != 0 {
		t.Error("expected expired entry to be removed")
	}
}

func TestFingerprintCache_CorruptEntry(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	mem := store.NewMemory()
	mem.Write("k", "{not json")
	fc := coordinator.NewFingerprintCache(mem, nil, zap.New(core))

	if _, ok := fc.Get("k", "fp"); ok {
		t.Error("expected miss for corrupt entry")
	}
	if mem.Len() != 0 {
		t.Error("expected corrupt entry to be removed")
	}
	if logs.FilterMessage("discarding corrupt cache entry").Len() != 1 {
		t.Errorf("expected one corruption warning, got %v", logs.All())
	}
}

func TestFingerprintCache_Invalidate(t *testing.T) {
	mem := store.NewMemory()
	fc := coordinator.NewFingerprintCache(mem, nil, nil)
	if err := fc.Put("k", json.RawMessage(`1`), "fp", coordinator.DefaultFilledTTL); err != nil {
		t.Fatal(err)
	}
	fc.Invalidate("k")
	if _, ok := fc.Get("k", "fp"); ok {
		t.Error("expected miss after Invalidate")
	}
}
