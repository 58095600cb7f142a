package scoring

import (
	"strconv"

	"github.com/harrison/aqscreen/internal/form"
)

// PredictRequest is the body of POST /api/predict. All 18 keys are always sent;
// unanswered screening items are sent as 0.
type PredictRequest struct {
	A1Score  int `json:"A1_Score"`
	A2Score  int `json:"A2_Score"`
	A3Score  int `json:"A3_Score"`
	A4Score  int `json:"A4_Score"`
	A5Score  int `json:"A5_Score"`
	A6Score  int `json:"A6_Score"`
	A7Score  int `json:"A7_Score"`
	A8Score  int `json:"A8_Score"`
	A9Score  int `json:"A9_Score"`
	A10Score int `json:"A10_Score"`

	Age           string `json:"age"`
	Gender        string `json:"gender"`
	Ethnicity     string `json:"ethnicity"`
	CountryOfRes  string `json:"contry_of_res"`
	Jaundice      string `json:"jaundice"`
	Autism        string `json:"austim"`
	UsedAppBefore string `json:"used_app_before"`
	Relation      string `json:"relation"`
}

// NewPredictRequest collects the form data of a snapshot into a request body.
func NewPredictRequest(s form.Snapshot) PredictRequest {
	return PredictRequest{
		A1Score:  s.Score("A1_Score"),
		A2Score:  s.Score("A2_Score"),
		A3Score:  s.Score("A3_Score"),
		A4Score:  s.Score("A4_Score"),
		A5Score:  s.Score("A5_Score"),
		A6Score:  s.Score("A6_Score"),
		A7Score:  s.Score("A7_Score"),
		A8Score:  s.Score("A8_Score"),
		A9Score:  s.Score("A9_Score"),
		A10Score: s.Score("A10_Score"),

		Age:           s.Text("age"),
		Gender:        s.Text("gender"),
		Ethnicity:     s.Text("ethnicity"),
		CountryOfRes:  s.Text("contry_of_res"),
		Jaundice:      s.Text("jaundice"),
		Autism:        s.Text("austim"),
		UsedAppBefore: s.Text("used_app_before"),
		Relation:      s.Text("relation"),
	}
}

// Answers returns the request as raw field values keyed by field name.
func (r PredictRequest) Answers() map[string]string {
	scores := []int{r.A1Score, r.A2Score, r.A3Score, r.A4Score, r.A5Score,
		r.A6Score, r.A7Score, r.A8Score, r.A9Score, r.A10Score}
	out := make(map[string]string, form.TotalFields)
	for i, v := range scores {
		out[form.QuestionName(i+1)] = strconv.Itoa(v)
	}
	out["age"] = r.Age
	out["gender"] = r.Gender
	out["ethnicity"] = r.Ethnicity
	out["contry_of_res"] = r.CountryOfRes
	out["jaundice"] = r.Jaundice
	out["austim"] = r.Autism
	out["used_app_before"] = r.UsedAppBefore
	out["relation"] = r.Relation
	return out
}

// Prediction is the response body of POST /api/predict.
type Prediction struct {
	Success         bool     `json:"success"`
	Prediction      string   `json:"prediction"`
	Confidence      float64  `json:"confidence"`
	RiskLevel       string   `json:"risk_level,omitempty"`
	AQTotalScore    int      `json:"aq_total_score"`
	Explanation     string   `json:"explanation"`
	Recommendations []string `json:"recommendations"`
	Error           string   `json:"error,omitempty"`
}

// Question is one item of GET /api/questions.
type Question struct {
	ID          string `json:"id"`
	Question    string `json:"question"`
	Description string `json:"description"`
}

// Health is the response body of GET /api/health.
type Health struct {
	Status         string `json:"status"`
	ModelLoaded    bool   `json:"model_loaded"`
	EncodersLoaded bool   `json:"encoders_loaded"`
}

// Ready reports whether the service can score requests.
func (h Health) Ready() bool {
	return h.Status == "healthy" && h.ModelLoaded && h.EncodersLoaded
}
