// Package result turns a scoring service response into what the results view shows.
package result

import (
	"strconv"

	"github.com/harrison/aqscreen/internal/scoring"
)

// Score bucket thresholds on the AQ-10 total.
const (
	HighScoreThreshold   = 6
	MediumScoreThreshold = 4
)

const (
	PositiveLabel    = "Autism Traits Detected"
	NegativeLabel    = "No Autism Traits Detected"
	PositiveSubtitle = "The assessment suggests autism spectrum traits may be present"
	NegativeSubtitle = "The assessment suggests autism spectrum traits are unlikely"

	HigherRisk = "Higher Risk"
	LowerRisk  = "Lower Risk"

	HighScoreLabel   = "Score indicates possible autism spectrum traits"
	MediumScoreLabel = "Score indicates some autism spectrum traits"
	LowScoreLabel    = "Score indicates few autism spectrum traits"

	// Disclaimer closes every synthesized recommendation list.
	Disclaimer = "This assessment should not replace professional medical evaluation"
)

var positiveFallback = []string{
	"Consider consulting with a qualified healthcare professional for comprehensive evaluation",
	"Explore resources about autism spectrum conditions",
	"Connect with autism support communities if helpful",
}

var negativeFallback = []string{
	"This screening suggests lower likelihood of autism spectrum traits",
	"If you still have concerns, consider speaking with a healthcare professional",
	"Remember that this is a screening tool, not a diagnostic assessment",
}

// Presentation is the presentation-ready form of a prediction.
type Presentation struct {
	CategoryLabel string
	CategoryClass string
	Subtitle      string

	ConfidenceText string
	// ModelRisk is the service's own confidence band (High/Medium/Low), if sent.
	ModelRisk string

	ScoreText                string
	ScoreInterpretationLabel string
	ScoreInterpretationClass string

	RiskLabel string
	RiskClass string

	Explanation     string
	Recommendations []string
}

// Positive reports whether the category is the positive outcome.
func (p Presentation) Positive() bool {
	return p.CategoryClass == "positive"
}

// Interpret maps a prediction to a Presentation. It is pure: the same payload
// always yields the same result.
func Interpret(p scoring.Prediction) Presentation {
	positive := p.Prediction == "YES"

	out := Presentation{
		ConfidenceText: FormatConfidence(p.Confidence),
		ModelRisk:      p.RiskLevel,
		ScoreText:      strconv.Itoa(p.AQTotalScore),
		Explanation:    p.Explanation,
	}

	if positive {
		out.CategoryLabel, out.CategoryClass, out.Subtitle = PositiveLabel, "positive", PositiveSubtitle
		out.RiskLabel, out.RiskClass = HigherRisk, "high"
	} else {
		out.CategoryLabel, out.CategoryClass, out.Subtitle = NegativeLabel, "negative", NegativeSubtitle
		out.RiskLabel, out.RiskClass = LowerRisk, "low"
	}

	out.ScoreInterpretationClass = ScoreBucket(p.AQTotalScore)
	switch out.ScoreInterpretationClass {
	case "high":
		out.ScoreInterpretationLabel = HighScoreLabel
	case "medium":
		out.ScoreInterpretationLabel = MediumScoreLabel
	default:
		out.ScoreInterpretationLabel = LowScoreLabel
	}

	out.Recommendations = recommendations(p.Recommendations, positive)
	return out
}

// ScoreBucket classifies an AQ-10 total as high (>= 6), medium (4..5) or low.
func ScoreBucket(score int) string {
	switch {
	case score >= HighScoreThreshold:
		return "high"
	case score >= MediumScoreThreshold:
		return "medium"
	default:
		return "low"
	}
}

// FormatConfidence renders the confidence with a trailing percent sign and no
// rounding beyond what the service sent.
func FormatConfidence(c float64) string {
	return strconv.FormatFloat(c, 'f', -1, 64) + "%"
}

func recommendations(given []string, positive bool) []string {
	if len(given) > 0 {
		out := make([]string, len(given))
		copy(out, given)
		return out
	}

	base := negativeFallback
	if positive {
		base = positiveFallback
	}
	out := make([]string, 0, len(base)+1)
	out = append(out, base...)
	return append(out, Disclaimer)
}
