// Package service owns the in-memory room store. All state is process
// resident and volatile; rooms disappear on restart and on cleanup.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"checkers/internal/server/room"
)

const (
	MaxRooms           = 1000
	IdleRoomTTL        = 24 * time.Hour
	FinishedRoomTTL    = 1 * time.Hour
	CleanupJobInterval = 15 * time.Minute
)

var ErrRoomNotFound = errors.New("room not found")

// Service coordinates room lifecycle and long-poll notification.
type Service struct {
	rooms  map[string]*room.Room
	mu     sync.RWMutex
	waiter *WaitRegistry
}

func New() *Service {
	return &Service{
		rooms:  make(map[string]*room.Room),
		waiter: NewWaitRegistry(),
	}
}

// CreateRoom makes a room with a fresh game and registers it.
func (s *Service) CreateRoom(creatorID, creatorUsername string) (*room.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.rooms) >= MaxRooms {
		return nil, fmt.Errorf("room limit reached (%d)", MaxRooms)
	}

	// Short IDs can collide; retry with a fresh one.
	id := room.NewID()
	for _, exists := s.rooms[id]; exists; _, exists = s.rooms[id] {
		id = room.NewID()
	}

	r := room.New(id, creatorID, creatorUsername)
	s.rooms[id] = r
	return r, nil
}

func (s *Service) Room(id string) (*room.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return r, nil
}

func (s *Service) DeleteRoom(id string) error {
	s.mu.Lock()
	_, ok := s.rooms[id]
	delete(s.rooms, id)
	s.mu.Unlock()

	if !ok {
		return ErrRoomNotFound
	}
	s.waiter.RemoveRoom(id)
	return nil
}

func (s *Service) RoomCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}

// RegisterWait registers a client waiting for the room to change past the
// given move count.
func (s *Service) RegisterWait(roomID string, moveCount int, ctx context.Context) <-chan struct{} {
	return s.waiter.RegisterWait(roomID, moveCount, ctx)
}

// NotifyRoom wakes long-poll clients after a state change.
func (s *Service) NotifyRoom(roomID string, moveCount int) {
	s.waiter.NotifyRoom(roomID, moveCount)
}

// RunCleanupJob periodically drops idle and finished rooms.
func (s *Service) RunCleanupJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.cleanupExpired(time.Now()); removed > 0 {
				log.Printf("cleanup: removed %d expired rooms", removed)
			}
		}
	}
}

func (s *Service) cleanupExpired(now time.Time) int {
	s.mu.Lock()
	var expired []string
	for id, r := range s.rooms {
		idle := now.Sub(r.LastActivity())
		if idle > IdleRoomTTL || (r.Finished() && idle > FinishedRoomTTL) {
			expired = append(expired, id)
			delete(s.rooms, id)
		}
	}
	s.mu.Unlock()

	for _, id := range expired {
		s.waiter.RemoveRoom(id)
	}
	return len(expired)
}

// Shutdown drains the wait registry and drops all rooms.
func (s *Service) Shutdown(timeout time.Duration) error {
	err := s.waiter.Shutdown(timeout)

	s.mu.Lock()
	s.rooms = make(map[string]*room.Room)
	s.mu.Unlock()

	return err
}
