package scheduler

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestSlotTimerStressConcurrentArm(t *testing.T) {
	timer, err := NewSlotTimer(30*time.Millisecond, 64)
	if err != nil {
		t.Fatalf("new timer: %v", err)
	}
	defer timer.Stop()

	const workers = 8
	const perWorker = 200

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		w := w
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				if _, err := timer.Arm(fmt.Sprintf("w%d-%d", w, i)); err != nil {
					t.Errorf("arm: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	waitExpiry(t, timer.C(), time.Second)
	select {
	case ev := <-timer.C():
		t.Fatalf("expected exactly one expiry, got extra %+v", ev)
	case <-time.After(120 * time.Millisecond):
	}
	if timer.Dropped() != 0 {
		t.Fatalf("expected no dropped expiries, got %d", timer.Dropped())
	}
}
