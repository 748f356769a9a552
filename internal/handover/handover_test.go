package handover

import (
	"sync"
	"testing"
)

// TestCriticalSection verifies the global lock actually excludes: a
// counter incremented only inside Lock/Unlock pairs never loses an
// update.
func TestCriticalSection(t *testing.T) {
	const goroutines = 8
	const rounds = 2000

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				Lock()
				counter++
				Unlock()
			}
		}()
	}
	wg.Wait()

	if counter != goroutines*rounds {
		t.Errorf("Expected %d, got %d", goroutines*rounds, counter)
	}
}
