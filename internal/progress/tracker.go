// Package progress derives form completion and the submission gate.
package progress

import (
	"context"
	"fmt"

	"github.com/harrison/aqscreen/internal/event"
	"github.com/harrison/aqscreen/internal/form"
)

// Sink receives the progress outputs.
type Sink interface {
	SetProgress(percent float64, text string)
	SetSubmitEnabled(enabled bool)
}

// State is the derived completion of the form.
type State struct {
	Filled   int
	Total    int
	Complete bool
}

// Percent returns the completion percentage in [0,100].
func (s State) Percent() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Filled) * 100 / float64(s.Total)
}

// Text returns the readout shown next to the progress bar.
func (s State) Text() string {
	return fmt.Sprintf("%d/%d fields completed", s.Filled, s.Total)
}

// Tracker recomputes State from the live form on every evaluation.
type Tracker struct {
	registry *form.Registry
	source   form.FieldReader
	sink     Sink
}

// NewTracker creates a tracker reading from source and writing to sink.
func NewTracker(registry *form.Registry, source form.FieldReader, sink Sink) *Tracker {
	return &Tracker{registry: registry, source: source, sink: sink}
}

// Evaluate reads a fresh snapshot, updates the progress outputs and enables
// the submit action if and only if every field is filled.
func (t *Tracker) Evaluate() State {
	snap := t.registry.CurrentSnapshot(t.source)
	s := State{
		Filled: snap.FilledCount(),
		Total:  t.registry.Len(),
	}
	s.Complete = s.Filled == s.Total

	t.sink.SetProgress(s.Percent(), s.Text())
	t.sink.SetSubmitEnabled(s.Complete)
	return s
}

// Subscribe registers the tracker for field changes. Call it before any other
// FieldChanged subscriber so the gate is current when they run.
func (t *Tracker) Subscribe(bus *event.Bus) {
	bus.Subscribe(event.FieldChanged, func(context.Context, event.Event) error {
		t.Evaluate()
		return nil
	})
}
