package form

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldReader exposes the current value of each field of a live form.
type FieldReader interface {
	// Choice returns the selected option value of a choice group, if any.
	Choice(name string) (string, bool)

	// Text returns the current raw value of a text field.
	Text(name string) string
}

// Registry holds the fixed, ordered set of required fields.
// It is never mutated after construction.
type Registry struct {
	fields []FieldSpec
	byName map[string]int
}

// NewRegistry returns the registry of the 10 screening items followed by the
// 8 demographic fields.
func NewRegistry() *Registry {
	fields := append(questionnaireFields(), demographicFields()...)
	byName := make(map[string]int, len(fields))
	for i, f := range fields {
		byName[f.Name] = i
	}
	return &Registry{fields: fields, byName: byName}
}

// Fields returns a copy of all field specs in form order.
func (r *Registry) Fields() []FieldSpec {
	out := make([]FieldSpec, len(r.fields))
	copy(out, r.fields)
	return out
}

// Questions returns the screening item specs.
func (r *Registry) Questions() []FieldSpec {
	return r.Fields()[:QuestionCount]
}

// Demographics returns the demographic field specs.
func (r *Registry) Demographics() []FieldSpec {
	return r.Fields()[QuestionCount:]
}

// Lookup returns the field named name.
func (r *Registry) Lookup(name string) (FieldSpec, error) {
	i, ok := r.byName[name]
	if !ok {
		return FieldSpec{}, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return r.fields[i], nil
}

// Len returns the number of required fields.
func (r *Registry) Len() int {
	return len(r.fields)
}

// CurrentSnapshot reads every field from r at call time.
//
// An unselected screening item scores 0 but stays unfilled: an unanswered
// question must not read as answered negatively. A selection that is not one of
// the field's options is treated as unselected.
func (r *Registry) CurrentSnapshot(src FieldReader) Snapshot {
	s := Snapshot{
		scores: make(map[string]int, QuestionCount),
		text:   make(map[string]string, DemographicCount),
		filled: make(map[string]bool, len(r.fields)),
	}

	for _, f := range r.fields {
		switch f.Kind {
		case KindChoice:
			s.scores[f.Name] = 0
			v, ok := src.Choice(f.Name)
			if !ok || !f.HasOption(v) {
				continue
			}
			n, err := strconv.Atoi(v)
			if err != nil {
				continue
			}
			s.scores[f.Name] = n
			s.filled[f.Name] = true
		case KindText:
			v := src.Text(f.Name)
			s.text[f.Name] = v
			if strings.TrimSpace(v) != "" {
				s.filled[f.Name] = true
			}
		}
	}
	return s
}
