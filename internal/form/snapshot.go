package form

// Snapshot is the state of the form at one point in time.
type Snapshot struct {
	scores map[string]int
	text   map[string]string
	filled map[string]bool
}

// Score returns the numeric value of a screening item (0 when unselected).
func (s Snapshot) Score(name string) int {
	return s.scores[name]
}

// Text returns the raw value of a demographic field.
func (s Snapshot) Text(name string) string {
	return s.text[name]
}

// Filled reports whether the named field counts as answered.
func (s Snapshot) Filled(name string) bool {
	return s.filled[name]
}

// FilledCount returns the number of answered fields.
func (s Snapshot) FilledCount() int {
	return len(s.filled)
}

// TotalScore sums the screening items.
func (s Snapshot) TotalScore() int {
	total := 0
	for _, v := range s.scores {
		total += v
	}
	return total
}

// Missing returns the names of unfilled fields in registry order.
func (s Snapshot) Missing(r *Registry) []string {
	var missing []string
	for _, f := range r.fields {
		if !s.filled[f.Name] {
			missing = append(missing, f.Name)
		}
	}
	return missing
}

// Values returns the collected form data keyed by field name: screening items
// as ints and demographics as their raw strings. All fields are present.
func (s Snapshot) Values() map[string]any {
	out := make(map[string]any, len(s.scores)+len(s.text))
	for k, v := range s.scores {
		out[k] = v
	}
	for k, v := range s.text {
		out[k] = v
	}
	return out
}
