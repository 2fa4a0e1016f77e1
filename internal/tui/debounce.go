package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Debouncer collapses bursts of calls into the last one. Each call returns a command that
// waits out the window and yields its message only if no newer call arrived meanwhile.
type Debouncer struct {
	mu       sync.Mutex
	duration time.Duration
	seq      uint64
	done     chan struct{}
	stopOnce sync.Once
}

func NewDebouncer(duration time.Duration) *Debouncer {
	return &Debouncer{
		duration: duration,
		done:     make(chan struct{}),
	}
}

// Debounce returns a command yielding msg after the window, or nil if superseded.
func (d *Debouncer) Debounce(msg tea.Msg) tea.Cmd {
	d.mu.Lock()
	d.seq++
	seq := d.seq
	d.mu.Unlock()

	return func() tea.Msg {
		timer := time.NewTimer(d.duration)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-d.done:
			return nil
		}

		d.mu.Lock()
		defer d.mu.Unlock()

		if seq != d.seq {
			return nil
		}

		return msg
	}
}

// Cancel drops the pending call, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	d.seq++
	d.mu.Unlock()
}

// Stop releases every waiting command. The debouncer yields nothing afterwards.
func (d *Debouncer) Stop() {
	d.stopOnce.Do(func() { close(d.done) })
}
