package form

import (
	"sync"
	"time"
)

const DefaultDebounceDelay = 300 * time.Millisecond

type ValidateFunc func(value string) error

// Debouncer runs per-field validation after the field has been quiet for
// the configured delay. A field that currently shows an error is
// re-validated immediately so a correction clears it without waiting.
type Debouncer struct {
	mu       sync.Mutex
	delay    time.Duration
	timers   map[string]*time.Timer
	gens     map[string]uint64
	errs     map[string]error
	onResult func(field string, err error)
}

// NewDebouncer creates a Debouncer. onResult, when set, is called from the
// timer goroutine with every applied result.
func NewDebouncer(delay time.Duration, onResult func(field string, err error)) *Debouncer {
	return &Debouncer{
		delay:    delay,
		timers:   make(map[string]*time.Timer),
		gens:     make(map[string]uint64),
		errs:     make(map[string]error),
		onResult: onResult,
	}
}

// Validate schedules fn(value) for field, replacing any pending run.
func (d *Debouncer) Validate(field, value string, fn ValidateFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.timers[field]; ok {
		t.Stop()
	}
	d.gens[field]++
	gen := d.gens[field]

	wait := d.delay
	if d.errs[field] != nil {
		wait = 0
	}

	d.timers[field] = time.AfterFunc(wait, func() {
		err := fn(value)

		d.mu.Lock()
		if d.gens[field] != gen {
			// superseded by a newer edit
			d.mu.Unlock()
			return
		}
		delete(d.timers, field)
		if err != nil {
			d.errs[field] = err
		} else {
			delete(d.errs, field)
		}
		d.mu.Unlock()

		if d.onResult != nil {
			d.onResult(field, err)
		}
	})
}

// ValidateField schedules the shared rule for field.
func (d *Debouncer) ValidateField(field, value string) {
	d.Validate(field, value, func(v string) error {
		return ValidateField(field, v)
	})
}

func (d *Debouncer) Err(field string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.errs[field]
}

func (d *Debouncer) Errors() map[string]error {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[string]error, len(d.errs))
	for k, v := range d.errs {
		out[k] = v
	}
	return out
}

// Stop cancels every pending validation.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for field, t := range d.timers {
		t.Stop()
		d.gens[field]++
		delete(d.timers, field)
	}
}
