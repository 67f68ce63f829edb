package service

import (
	"context"
	"fmt"
	"sync"
	"time"
)

const (
	// WaitTimeout caps how long a long-poll client hangs before it is
	// answered with the unchanged state.
	WaitTimeout = 25 * time.Second

	waitChannelBuffer = 1
)

// WaitRegistry tracks long-polling clients waiting for a room to change.
type WaitRegistry struct {
	mu       sync.RWMutex
	waiters  map[string][]*waitRequest // roomID -> waiting clients
	shutdown chan struct{}
	wg       sync.WaitGroup
}

type waitRequest struct {
	moveCount int
	notify    chan struct{}
	timer     *time.Timer
	roomID    string
}

func NewWaitRegistry() *WaitRegistry {
	return &WaitRegistry{
		waiters:  make(map[string][]*waitRequest),
		shutdown: make(chan struct{}),
	}
}

// RegisterWait returns a channel that fires when the room moves past
// moveCount, on timeout, or when the room is deleted.
func (w *WaitRegistry) RegisterWait(roomID string, moveCount int, ctx context.Context) <-chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()

	req := &waitRequest{
		moveCount: moveCount,
		notify:    make(chan struct{}, waitChannelBuffer),
		roomID:    roomID,
	}
	req.timer = time.AfterFunc(WaitTimeout, func() {
		w.fire(req)
	})

	w.waiters[roomID] = append(w.waiters[roomID], req)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		select {
		case <-ctx.Done():
			w.remove(roomID, req)
		case <-req.notify:
			req.timer.Stop()
			w.remove(roomID, req)
		case <-w.shutdown:
			req.timer.Stop()
			close(req.notify)
		}
	}()

	return req.notify
}

// NotifyRoom wakes every client whose known move count is stale.
func (w *WaitRegistry) NotifyRoom(roomID string, currentMoveCount int) {
	w.mu.RLock()
	waitList := w.waiters[roomID]
	w.mu.RUnlock()

	for _, req := range waitList {
		if req.moveCount != currentMoveCount {
			w.fire(req)
		}
	}
}

// RemoveRoom wakes and forgets every waiter of a deleted room.
func (w *WaitRegistry) RemoveRoom(roomID string) {
	w.mu.Lock()
	waitList := w.waiters[roomID]
	delete(w.waiters, roomID)
	w.mu.Unlock()

	for _, req := range waitList {
		w.fire(req)
	}
}

func (w *WaitRegistry) Shutdown(timeout time.Duration) error {
	close(w.shutdown)

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("wait registry shutdown timed out")
	}
}

// fire sends without blocking; a full or closed channel means the client
// is already being answered.
func (w *WaitRegistry) fire(req *waitRequest) {
	select {
	case req.notify <- struct{}{}:
	default:
	}
}

func (w *WaitRegistry) remove(roomID string, req *waitRequest) {
	w.mu.Lock()
	defer w.mu.Unlock()

	waitList := w.waiters[roomID]
	for i, waiter := range waitList {
		if waiter == req {
			w.waiters[roomID] = append(waitList[:i], waitList[i+1:]...)
			break
		}
	}
	if len(w.waiters[roomID]) == 0 {
		delete(w.waiters, roomID)
	}
	req.timer.Stop()
}
