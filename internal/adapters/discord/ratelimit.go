package discord

import (
	"sync"
	"time"
)

// userLimiter deja pasar una acción por usuario y clave cada win.
type userLimiter struct {
	mu   sync.Mutex
	next map[string]time.Time
	win  time.Duration
	now  func() time.Time
}

func newUserLimiter(window time.Duration) *userLimiter {
	return &userLimiter{next: map[string]time.Time{}, win: window, now: time.Now}
}

func (l *userLimiter) Allow(userID, key string) bool {
	now := l.now()
	k := userID + "/" + key
	l.mu.Lock()
	defer l.mu.Unlock()
	if until, ok := l.next[k]; ok && now.Before(until) {
		return false
	}
	l.next[k] = now.Add(l.win)
	if len(l.next) > 1024 {
		for id, until := range l.next {
			if now.After(until) {
				delete(l.next, id)
			}
		}
	}
	return true
}
