package guard

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultEvictFactor = 3

// MemoryCooldown хранит время последней попытки в памяти процесса. После рестарта окна обнуляются.
type MemoryCooldown struct {
	mu        sync.Mutex
	window    time.Duration
	lastSeen  map[int64]time.Time
	lastEvict time.Time
	now       func() time.Time
	l         logrus.FieldLogger
}

func NewMemoryCooldown(window time.Duration, l logrus.FieldLogger) *MemoryCooldown {
	if window <= 0 {
		window = DefaultCooldownWindow
	}
	return &MemoryCooldown{
		window:   window,
		lastSeen: make(map[int64]time.Time),
		now:      time.Now,
		l:        l.WithField("component", "memory-cooldown"),
	}
}

// SetClock подменяет источник времени. Используется в тестах.
func (m *MemoryCooldown) SetClock(now func() time.Time) *MemoryCooldown {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
	return m
}

func (m *MemoryCooldown) Acquire(_ context.Context, userID int64) (time.Duration, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if now.Sub(m.lastEvict) >= m.window {
		m.evictLocked(now)
	}

	if last, ok := m.lastSeen[userID]; ok {
		if elapsed := now.Sub(last); elapsed < m.window {
			return m.window - elapsed, false, nil
		}
	}
	m.lastSeen[userID] = now
	return 0, true, nil
}

// Evict удаляет записи старше evictFactor окон и возвращает их количество.
func (m *MemoryCooldown) Evict() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.evictLocked(m.now())
}

// Len количество отслеживаемых пользователей.
func (m *MemoryCooldown) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.lastSeen)
}

// RunEviction периодически чистит карту, пока не отменен ctx.
func (m *MemoryCooldown) RunEviction(ctx context.Context) {
	ticker := time.NewTicker(m.window)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if evicted := m.Evict(); evicted > 0 {
				m.l.WithField("evicted", evicted).Debug("cooldown entries evicted")
			}
		}
	}
}

func (m *MemoryCooldown) evictLocked(now time.Time) int {
	m.lastEvict = now
	threshold := now.Add(-defaultEvictFactor * m.window)
	var evicted int
	for id, last := range m.lastSeen {
		if last.Before(threshold) {
			delete(m.lastSeen, id)
			evicted++
		}
	}
	return evicted
}
