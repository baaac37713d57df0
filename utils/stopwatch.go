package utils

import (
	"sync"
	"time"
)

// Stopwatch that can be paused, and can report laps (time since the previous lap, or since start).
type Watch struct {
	mu           sync.RWMutex
	paused       bool
	pauseTime    time.Time
	startTime    time.Time
	adjustedTime time.Time
	lapTime      time.Time
}

func (w *Watch) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.paused {
		panic("watch cant start because paused")
	}
	w.startTime = time.Now()
	w.adjustedTime = w.startTime
	w.lapTime = w.startTime
}

// Elapsed time since start, excluding paused time.
func (w *Watch) Elapsed() time.Duration {
	w.mu.RLock()
	defer w.mu.RUnlock()
	mNow := time.Now()
	if w.paused {
		return mNow.Sub(w.adjustedTime) - mNow.Sub(w.pauseTime)
	}
	return mNow.Sub(w.adjustedTime)
}

func (w *Watch) AbsoluteElapsed() time.Duration {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return time.Since(w.startTime)
}

// Wall time since the previous call to Lap (or Start).
func (w *Watch) Lap() time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	mNow := time.Now()
	lap := mNow.Sub(w.lapTime)
	w.lapTime = mNow
	return lap
}

// Returns currently elapsed time.
func (w *Watch) Pause() time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.paused {
		panic("watch already paused")
	}
	w.pauseTime = time.Now()
	w.paused = true
	return w.pauseTime.Sub(w.adjustedTime)
}

func (w *Watch) UnPause() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.paused {
		panic("watch wasn't paused")
	}
	w.paused = false
	w.adjustedTime = w.adjustedTime.Add(time.Since(w.pauseTime))
}
