// Package view defines the view context the controller reads fields from and
// writes output slots into, plus an in-memory implementation.
package view

import (
	"github.com/harrison/aqscreen/internal/form"
	"github.com/harrison/aqscreen/internal/result"
)

// Sink receives everything the controller renders.
type Sink interface {
	// SetProgress updates the progress fill (0..100) and the "X/18" readout.
	SetProgress(percent float64, text string)

	// SetSubmitEnabled enables or disables (and dims) the submit action.
	SetSubmitEnabled(enabled bool)

	// SetLoading swaps the submit label for the loading indicator.
	SetLoading(loading bool)

	// ShowForm shows the form view and hides the results view.
	ShowForm()

	// ShowResults fills the result slots, hides the form and shows the results view.
	ShowResults(p result.Presentation)

	// ShowError surfaces a single blocking failure notice.
	ShowError(message string)
}

// Context is the whole surface the controller depends on.
type Context interface {
	form.FieldReader
	Sink

	// ClearFields restores every field to its empty initial state.
	ClearFields()
}
