package utils

import (
	"sync"
	"testing"
)

func TestBatchBufferAddAndClear(t *testing.T) {
	b := NewBatchBuffer[int]()

	if b.HasData() {
		t.Error("new buffer reports data")
	}
	if got := b.GetAndClear(); got != nil {
		t.Errorf("GetAndClear on empty buffer = %v, want nil", got)
	}

	for i := 0; i < 5; i++ {
		b.Add(i)
	}
	if got := b.Size(); got != 5 {
		t.Errorf("Size = %d, want 5", got)
	}

	batch := b.GetAndClear()
	if len(batch) != 5 {
		t.Fatalf("batch has %d items, want 5", len(batch))
	}
	if b.Size() != 0 {
		t.Errorf("buffer not cleared, size = %d", b.Size())
	}
}

func TestBatchBufferConcurrentAdds(t *testing.T) {
	b := NewBatchBuffer[int]()

	var wg sync.WaitGroup
	const workers = 8
	const perWorker = 100

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				b.Add(i)
			}
		}()
	}
	wg.Wait()

	if got := b.Size(); got != workers*perWorker {
		t.Errorf("Size = %d, want %d", got, workers*perWorker)
	}
}
