package concurrency

import "sync"

// WaitGroup is a sync.WaitGroup with an optional cap on how many
// goroutines run at once.
type WaitGroup struct {
	size      int
	pool      chan byte
	waitGroup sync.WaitGroup
}

// NewWaitGroup creates a pool of at most size concurrent goroutines.
// With size <= 0 it behaves like a plain sync.WaitGroup.
func NewWaitGroup(size int) *WaitGroup {
	wg := &WaitGroup{
		size: size,
	}
	if size > 0 {
		wg.pool = make(chan byte, size)
	}
	return wg
}

// Done marks one goroutine as finished and frees its pool slot.
func (wg *WaitGroup) Done() {
	if wg.size > 0 {
		<-wg.pool
	}
	wg.waitGroup.Done()
}

// Wait blocks until every registered goroutine called Done.
func (wg *WaitGroup) Wait() {
	wg.waitGroup.Wait()
}

// BlockAdd registers one goroutine, blocking while the pool is full.
func (wg *WaitGroup) BlockAdd() {
	if wg.size > 0 {
		wg.pool <- 1
	}
	wg.waitGroup.Add(1)
}
