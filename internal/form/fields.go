// Package form describes the fixed set of required questionnaire inputs and reads
// their current values from a live form.
//
// The form has exactly 18 required fields: the ten AQ-10 screening items
// (A1_Score..A10_Score), each a single-choice group scored 0 or 1, and eight
// demographic fields read as raw text.
package form

import (
	"errors"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind identifies how a field is answered and read.
type Kind string

const (
	// KindChoice is a mutually exclusive choice group with numeric option values.
	KindChoice Kind = "single-choice-numeric"

	// KindText is a free-text input or an enumerated select read as a string.
	KindText Kind = "free-text-or-enum"
)

const (
	// QuestionCount is the number of AQ-10 screening items.
	QuestionCount = 10

	// DemographicCount is the number of demographic fields.
	DemographicCount = 8

	// TotalFields is the number of fields that must be filled before submission.
	TotalFields = QuestionCount + DemographicCount
)

var (
	// ErrUnknownField is returned when a field name is not part of the registry.
	ErrUnknownField = errors.New("unknown field")

	// ErrInvalidOption is returned when a choice value is not one of the field's options.
	ErrInvalidOption = errors.New("invalid option")
)

// Option is one selectable answer of a field.
type Option struct {
	Value string
	Label string
}

// Display returns the label in title case for prompts and reports.
func (o Option) Display() string {
	if o.Label == "" {
		return o.Value
	}
	return cases.Title(language.English).String(o.Label)
}

// FieldSpec identifies one required input.
type FieldSpec struct {
	Name        string
	Kind        Kind
	Label       string
	Description string
	Options     []Option
}

// HasOption reports whether value is one of the field's option values.
func (f FieldSpec) HasOption(value string) bool {
	for _, o := range f.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// OptionLabel returns the display label of value, or value itself when it is
// not one of the field's options.
func (f FieldSpec) OptionLabel(value string) string {
	for _, o := range f.Options {
		if o.Value == value {
			return o.Display()
		}
	}
	return value
}

// QuestionName returns the field name of the i-th screening item (1-based).
func QuestionName(i int) string {
	return fmt.Sprintf("A%d_Score", i)
}

var agreeOptions = []Option{
	{Value: "1", Label: "Agree"},
	{Value: "0", Label: "Disagree"},
}

var yesNo = []Option{
	{Value: "yes", Label: "yes"},
	{Value: "no", Label: "no"},
}

var questionText = [QuestionCount][2]string{
	{"I often notice small sounds when others do not",
		"Do you notice subtle sounds that others might miss?"},
	{"I usually concentrate more on the whole picture, rather than the small details",
		"Do you focus on the overall picture rather than details?"},
	{"I find it easy to do more than one thing at once",
		"Can you easily multitask or handle multiple activities?"},
	{"If there is an interruption, I can switch back to what I was doing very quickly",
		"Can you quickly return to tasks after being interrupted?"},
	{"I find it easy to 'read between the lines' when someone is talking to me",
		"Do you easily understand implied meanings in conversations?"},
	{"I know how to tell if someone listening to me is getting bored",
		"Can you recognize when someone is losing interest?"},
	{"When I'm reading a story I find it difficult to work out the characters' intentions",
		"Do you have difficulty understanding characters' motivations?"},
	{"I like to collect information about categories of things",
		"Do you enjoy collecting detailed information about specific topics?"},
	{"I find it easy to work out what someone is thinking or feeling by looking at their face",
		"Can you easily read emotions from facial expressions?"},
	{"I find it difficult to work out people's intentions",
		"Do you have trouble understanding what people really mean?"},
}

func questionnaireFields() []FieldSpec {
	fields := make([]FieldSpec, 0, QuestionCount)
	for i := 1; i <= QuestionCount; i++ {
		fields = append(fields, FieldSpec{
			Name:        QuestionName(i),
			Kind:        KindChoice,
			Label:       questionText[i-1][0],
			Description: questionText[i-1][1],
			Options:     agreeOptions,
		})
	}
	return fields
}

// Demographic options are suggestions for prompting. Text fields are never
// validated against them.
func demographicFields() []FieldSpec {
	return []FieldSpec{
		{Name: "age", Kind: KindText, Label: "Age"},
		{Name: "gender", Kind: KindText, Label: "Gender", Options: []Option{
			{Value: "m", Label: "male"},
			{Value: "f", Label: "female"},
		}},
		{Name: "ethnicity", Kind: KindText, Label: "Ethnicity", Options: []Option{
			{Value: "White-European", Label: "white-european"},
			{Value: "Asian", Label: "asian"},
			{Value: "Middle Eastern ", Label: "middle eastern"},
			{Value: "Black", Label: "black"},
			{Value: "South Asian", Label: "south asian"},
			{Value: "Hispanic", Label: "hispanic"},
			{Value: "Latino", Label: "latino"},
			{Value: "Pasifika", Label: "pasifika"},
			{Value: "Turkish", Label: "turkish"},
			{Value: "Others", Label: "others"},
		}},
		{Name: "contry_of_res", Kind: KindText, Label: "Country of residence"},
		{Name: "jaundice", Kind: KindText, Label: "Born with jaundice", Options: yesNo},
		{Name: "austim", Kind: KindText, Label: "Family member with autism", Options: yesNo},
		{Name: "used_app_before", Kind: KindText, Label: "Used a screening app before", Options: yesNo},
		{Name: "relation", Kind: KindText, Label: "Who is completing the test", Options: []Option{
			{Value: "Self", Label: "self"},
			{Value: "Parent", Label: "parent"},
			{Value: "Relative", Label: "relative"},
			{Value: "Health care professional", Label: "health care professional"},
			{Value: "Others", Label: "others"},
		}},
	}
}
