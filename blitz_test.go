package veloxcore

import "testing"

func TestBlitzLifecycle(t *testing.T) {
	if BlitzIsInitialized() {
		BlitzDeinit()
	}
	if !BlitzInit() {
		t.Fatal("BlitzInit() returned false")
	}
	if !BlitzIsInitialized() {
		t.Error("expected BlitzIsInitialized() to be true after BlitzInit")
	}
	if BlitzNumWorkers() <= 0 {
		t.Errorf("BlitzNumWorkers() = %d, want > 0", BlitzNumWorkers())
	}
	BlitzDeinit()
	if BlitzIsInitialized() {
		t.Error("expected BlitzIsInitialized() to be false after BlitzDeinit")
	}
}

func TestBlitzDeinit_Idempotent(t *testing.T) {
	BlitzDeinit()
	BlitzDeinit() // must not panic when already torn down
}
