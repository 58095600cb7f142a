package scoring

import (
	"testing"

	"github.com/harrison/aqscreen/internal/form"
)

func TestPredictRequestAnswers(t *testing.T) {
	reg := form.NewRegistry()
	src := mapReader{
		"A1_Score":      "1",
		"A10_Score":     "1",
		"A5_Score":      "0",
		"age":           "25",
		"contry_of_res": "Jordan",
		"austim":        "no",
	}

	answers := NewPredictRequest(reg.CurrentSnapshot(src)).Answers()

	if len(answers) != form.TotalFields {
		t.Fatalf("expected %d answers, got %d", form.TotalFields, len(answers))
	}
	want := map[string]string{
		"A1_Score":      "1",
		"A2_Score":      "0",
		"A10_Score":     "1",
		"age":           "25",
		"contry_of_res": "Jordan",
		"austim":        "no",
		"relation":      "",
	}
	for k, v := range want {
		if answers[k] != v {
			t.Errorf("answers[%q] = %q, want %q", k, answers[k], v)
		}
	}
}
