package view

import (
	"fmt"
	"sync"

	"github.com/harrison/aqscreen/internal/form"
	"github.com/harrison/aqscreen/internal/result"
)

// Memory is a Context backed by plain fields. It records every slot write so
// callers can inspect what would have been rendered.
type Memory struct {
	mu       sync.Mutex
	registry *form.Registry
	choices  map[string]string
	text     map[string]string

	percent        float64
	progressText   string
	submitEnabled  bool
	loading        bool
	formVisible    bool
	resultsVisible bool
	result         *result.Presentation
	errors         []string
}

var _ Context = (*Memory)(nil)

// NewMemory creates an empty form with the form view visible.
func NewMemory(registry *form.Registry) *Memory {
	return &Memory{
		registry:    registry,
		choices:     make(map[string]string),
		text:        make(map[string]string),
		formVisible: true,
	}
}

// Select sets the answer of a screening item.
func (m *Memory) Select(name, value string) error {
	spec, err := m.registry.Lookup(name)
	if err != nil {
		return err
	}
	if spec.Kind != form.KindChoice {
		return fmt.Errorf("%s is not a choice field", name)
	}
	if !spec.HasOption(value) {
		return fmt.Errorf("%w %q for %s", form.ErrInvalidOption, value, name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.choices[name] = value
	return nil
}

// Unselect clears the answer of a screening item.
func (m *Memory) Unselect(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.choices, name)
}

// SetText sets the raw value of a demographic field.
func (m *Memory) SetText(name, value string) error {
	spec, err := m.registry.Lookup(name)
	if err != nil {
		return err
	}
	if spec.Kind != form.KindText {
		return fmt.Errorf("%s is not a text field", name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.text[name] = value
	return nil
}

// Set assigns value to any field, dispatching on its kind. An empty value for a
// choice field clears the selection.
func (m *Memory) Set(name, value string) error {
	spec, err := m.registry.Lookup(name)
	if err != nil {
		return err
	}
	if spec.Kind == form.KindChoice {
		if value == "" {
			m.Unselect(name)
			return nil
		}
		return m.Select(name, value)
	}
	return m.SetText(name, value)
}

// Choice implements form.FieldReader.
func (m *Memory) Choice(name string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.choices[name]
	return v, ok
}

// Text implements form.FieldReader.
func (m *Memory) Text(name string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text[name]
}

// Answers returns the raw value of every set field.
func (m *Memory) Answers() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.choices)+len(m.text))
	for k, v := range m.choices {
		out[k] = v
	}
	for k, v := range m.text {
		out[k] = v
	}
	return out
}

// ClearFields implements Context.
func (m *Memory) ClearFields() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.choices = make(map[string]string)
	m.text = make(map[string]string)
}

// SetProgress implements Sink.
func (m *Memory) SetProgress(percent float64, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.percent, m.progressText = percent, text
}

// SetSubmitEnabled implements Sink.
func (m *Memory) SetSubmitEnabled(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submitEnabled = enabled
}

// SetLoading implements Sink.
func (m *Memory) SetLoading(loading bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading = loading
}

// ShowForm implements Sink.
func (m *Memory) ShowForm() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.formVisible, m.resultsVisible = true, false
}

// ShowResults implements Sink.
func (m *Memory) ShowResults(p result.Presentation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.result = &p
	m.formVisible, m.resultsVisible = false, true
}

// ShowError implements Sink.
func (m *Memory) ShowError(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, message)
}

// Progress returns the last progress fill and readout.
func (m *Memory) Progress() (float64, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.percent, m.progressText
}

// SubmitEnabled reports whether the submit action is enabled.
func (m *Memory) SubmitEnabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.submitEnabled
}

// Loading reports whether the loading indicator is shown.
func (m *Memory) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// FormVisible reports whether the form view is shown.
func (m *Memory) FormVisible() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.formVisible
}

// ResultsVisible reports whether the results view is shown.
func (m *Memory) ResultsVisible() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resultsVisible
}

// Result returns the last rendered result, if any.
func (m *Memory) Result() (result.Presentation, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.result == nil {
		return result.Presentation{}, false
	}
	return *m.result, true
}

// Errors returns every surfaced error message in order.
func (m *Memory) Errors() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.errors))
	copy(out, m.errors)
	return out
}
