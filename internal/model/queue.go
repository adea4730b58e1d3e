package model

import (
	"errors"
	"slices"
	"sync"
	"time"
)

var ErrAlreadyQueued = errors.New("player already in queue")

type QueuedPlayer struct {
	PlayerID string
	JoinedAt time.Time
}

// Queue holds players waiting for an opponent, oldest first.
type Queue struct {
	players []QueuedPlayer
	now     func() time.Time
	mu      sync.Mutex
}

func NewQueue() *Queue {
	return &Queue{
		players: []QueuedPlayer{},
		now:     time.Now,
	}
}

func (q *Queue) AddPlayer(playerID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.indexOf(playerID) >= 0 {
		return ErrAlreadyQueued
	}
	q.players = append(q.players, QueuedPlayer{
		PlayerID: playerID,
		JoinedAt: q.now(),
	})
	return nil
}

// RemovePlayer drops playerID from the queue and reports whether it was there.
func (q *Queue) RemovePlayer(playerID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	i := q.indexOf(playerID)
	if i < 0 {
		return false
	}
	q.players = slices.Delete(q.players, i, i+1)
	return true
}

func (q *Queue) Contains(playerID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.indexOf(playerID) >= 0
}

// NextPair removes and returns the two players who have waited longest.
// ok is false when fewer than two are waiting.
func (q *Queue) NextPair() (first, second QueuedPlayer, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.players) < 2 {
		return QueuedPlayer{}, QueuedPlayer{}, false
	}
	first, second = q.players[0], q.players[1]
	q.players = slices.Delete(q.players, 0, 2)
	return first, second, true
}

func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.players)
}

func (q *Queue) indexOf(playerID string) int {
	return slices.IndexFunc(q.players, func(p QueuedPlayer) bool {
		return p.PlayerID == playerID
	})
}
