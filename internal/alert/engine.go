// Package alert turns unacknowledged orders into audible staff alerts.
//
// Browsers refuse to play audio before a user gesture, so the engine
// stays silent until EnableAudio is called once. After that, every new
// unacknowledged order triggers a bounded repeat sequence, and a slower
// cadence keeps reminding staff for as long as anything remains
// unacknowledged.
package alert

import (
	"sync"
	"time"
)

// Sounder plays the alert sound once. Implementations must be safe for
// concurrent use; the engine may call Play from multiple goroutines.
type Sounder interface {
	Play()
}

// SounderFunc adapts a plain function to the Sounder interface.
type SounderFunc func()

func (f SounderFunc) Play() { f() }

// Config tunes the alert timing. Zero values fall back to the defaults.
type Config struct {
	// RepeatInterval is the gap between plays inside one repeat sequence.
	RepeatInterval time.Duration
	// CadenceInterval is how often the engine re-alerts while any
	// order remains unacknowledged.
	CadenceInterval time.Duration
	// MaxPlays bounds a repeat sequence so a busy kitchen is not
	// alarmed indefinitely for a single order.
	MaxPlays int
}

const (
	defaultRepeatInterval  = 3 * time.Second
	defaultCadenceInterval = 60 * time.Second
	defaultMaxPlays        = 5
)

func (c Config) withDefaults() Config {
	if c.RepeatInterval <= 0 {
		c.RepeatInterval = defaultRepeatInterval
	}
	if c.CadenceInterval <= 0 {
		c.CadenceInterval = defaultCadenceInterval
	}
	if c.MaxPlays <= 0 {
		c.MaxPlays = defaultMaxPlays
	}
	return c
}

// Engine tracks unacknowledged orders and drives the Sounder.
type Engine struct {
	cfg     Config
	sounder Sounder

	mu           sync.Mutex
	audioEnabled bool
	pending      map[string]bool
	repeatCancel chan struct{}

	done     chan struct{}
	stopOnce sync.Once
}

// NewEngine creates an engine and starts its cadence loop.
// Call Stop to release it.
func NewEngine(sounder Sounder, cfg Config) *Engine {
	e := &Engine{
		cfg:     cfg.withDefaults(),
		sounder: sounder,
		pending: make(map[string]bool),
		done:    make(chan struct{}),
	}
	go e.cadenceLoop()
	return e
}

// EnableAudio arms the engine. The first call alerts immediately if
// orders are already waiting; later calls are no-ops.
func (e *Engine) EnableAudio() {
	e.mu.Lock()
	if e.audioEnabled {
		e.mu.Unlock()
		return
	}
	e.audioEnabled = true
	hasPending := len(e.pending) > 0
	e.mu.Unlock()

	if hasPending {
		e.startRepeat()
	}
}

// AudioEnabled reports whether EnableAudio has been called.
func (e *Engine) AudioEnabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.audioEnabled
}

// SetOrders replaces the set of unacknowledged order IDs, typically from
// a fresh dashboard fetch or a websocket event. If the set grew, a new
// repeat sequence starts.
func (e *Engine) SetOrders(ids []string) {
	e.mu.Lock()
	prev := len(e.pending)
	e.pending = make(map[string]bool, len(ids))
	for _, id := range ids {
		e.pending[id] = true
	}
	grew := len(e.pending) > prev
	enabled := e.audioEnabled
	e.mu.Unlock()

	if grew && enabled {
		e.startRepeat()
	}
}

// AddOrder marks a single order as unacknowledged and alerts if it is new.
func (e *Engine) AddOrder(id string) {
	e.mu.Lock()
	if e.pending[id] {
		e.mu.Unlock()
		return
	}
	e.pending[id] = true
	enabled := e.audioEnabled
	e.mu.Unlock()

	if enabled {
		e.startRepeat()
	}
}

// Acknowledge removes an order from the pending set and cancels any
// in-flight repeat sequence. The cadence loop still covers whatever
// remains unacknowledged.
func (e *Engine) Acknowledge(id string) {
	e.mu.Lock()
	delete(e.pending, id)
	cancel := e.repeatCancel
	e.repeatCancel = nil
	e.mu.Unlock()

	if cancel != nil {
		close(cancel)
	}
}

// Unacknowledged returns how many orders are still waiting.
func (e *Engine) Unacknowledged() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.pending)
}

// Stop shuts the engine down. Safe to call more than once.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		close(e.done)
	})

	e.mu.Lock()
	cancel := e.repeatCancel
	e.repeatCancel = nil
	e.mu.Unlock()

	if cancel != nil {
		close(cancel)
	}
}

// startRepeat begins a bounded sequence of plays, replacing any sequence
// already running so overlapping orders don't stack alarms.
func (e *Engine) startRepeat() {
	cancel := make(chan struct{})

	e.mu.Lock()
	prev := e.repeatCancel
	e.repeatCancel = cancel
	e.mu.Unlock()

	if prev != nil {
		close(prev)
	}

	go e.repeatLoop(cancel)
}

func (e *Engine) repeatLoop(cancel chan struct{}) {
	e.sounder.Play()

	ticker := time.NewTicker(e.cfg.RepeatInterval)
	defer ticker.Stop()

	for played := 1; played < e.cfg.MaxPlays; played++ {
		select {
		case <-ticker.C:
			e.sounder.Play()
		case <-cancel:
			return
		case <-e.done:
			return
		}
	}
}

// cadenceLoop restarts the bounded repeat on a slow interval while
// orders sit unacknowledged, so a missed sequence is not the last word.
func (e *Engine) cadenceLoop() {
	ticker := time.NewTicker(e.cfg.CadenceInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			e.mu.Lock()
			ring := e.audioEnabled && len(e.pending) > 0
			e.mu.Unlock()
			if ring {
				e.startRepeat()
			}
		case <-e.done:
			return
		}
	}
}
