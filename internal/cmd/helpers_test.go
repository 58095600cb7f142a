package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/harrison/aqscreen/internal/config"
)

const positivePrediction = `{
	"success": true,
	"prediction": "YES",
	"confidence": 87.5,
	"risk_level": "High",
	"aq_total_score": 7,
	"explanation": "Several social communication traits were reported.",
	"recommendations": ["Consider a specialist assessment"]
}`

const completeAnswers = `A1_Score: 1
A2_Score: 1
A3_Score: 1
A4_Score: 1
A5_Score: 1
A6_Score: 1
A7_Score: 1
A8_Score: 0
A9_Score: 0
A10_Score: 0
age: 29
gender: f
ethnicity: White-European
contry_of_res: United Kingdom
jaundice: "no"
austim: "no"
used_app_before: "no"
relation: Self
`

// fakeService stands in for the scoring service.
type fakeService struct {
	*httptest.Server

	mu            sync.Mutex
	predictStatus int
	predictBody   string
	failures      int // predict calls to fail before answering normally
	healthBody    string
	requests      []map[string]any
}

func newFakeService(t *testing.T) *fakeService {
	t.Helper()
	fs := &fakeService{
		predictStatus: http.StatusOK,
		predictBody:   positivePrediction,
		healthBody:    `{"status":"healthy","model_loaded":true,"encoders_loaded":true}`,
	}
	fs.Server = httptest.NewServer(http.HandlerFunc(fs.handle))
	t.Cleanup(fs.Close)
	return fs
}

func (fs *fakeService) handle(w http.ResponseWriter, r *http.Request) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")

	switch r.URL.Path {
	case "/api/predict":
		var body map[string]any
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &body)
		fs.requests = append(fs.requests, body)
		if fs.failures > 0 {
			fs.failures--
			w.WriteHeader(http.StatusServiceUnavailable)
			io.WriteString(w, `{"success": false, "error": "Model not loaded"}`)
			return
		}
		w.WriteHeader(fs.predictStatus)
		io.WriteString(w, fs.predictBody)
	case "/api/health":
		io.WriteString(w, fs.healthBody)
	case "/api/questions":
		io.WriteString(w, `[
			{"id":"A1_Score","question":"I often notice small sounds when others do not","description":"Do you notice subtle sounds?"},
			{"id":"A2_Score","question":"I usually concentrate more on the whole picture","description":""}
		]`)
	default:
		http.NotFound(w, r)
	}
}

func (fs *fakeService) predictCount() int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return len(fs.requests)
}

func (fs *fakeService) setPredict(status int, body string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.predictStatus, fs.predictBody = status, body
}

// setupHome points AQSCREEN_HOME at a fresh temp dir.
func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.HomeEnv, home)
	return home
}

func writeAnswers(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "answers.yaml")
	writeFile(t, path, content)
	return path
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// runCommand executes the root command with args and stdin.
func runCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}
