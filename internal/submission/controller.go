package submission

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/harrison/aqscreen/internal/event"
	"github.com/harrison/aqscreen/internal/form"
	"github.com/harrison/aqscreen/internal/logger"
	"github.com/harrison/aqscreen/internal/progress"
	"github.com/harrison/aqscreen/internal/result"
	"github.com/harrison/aqscreen/internal/scoring"
	"github.com/harrison/aqscreen/internal/view"
)

// Scorer performs the remote scoring call.
type Scorer interface {
	Predict(ctx context.Context, req scoring.PredictRequest) (*scoring.Prediction, error)
}

// Recorder keeps settled attempts. Recording failures are logged, never shown.
type Recorder interface {
	Record(ctx context.Context, a Attempt) error
}

// Options tune a Controller. The zero value is usable.
type Options struct {
	// Timeout bounds the remote call; zero means no bound.
	Timeout  time.Duration
	Recorder Recorder
	Logger   logger.Logger
	Now      func() time.Time
}

// Controller drives Idle -> Submitting -> Succeeded|Failed.
//
// The lifecycle flag is the only lock: entering Submitting acquires it and
// the cleanup that runs once per attempt releases it.
type Controller struct {
	registry *form.Registry
	view     view.Context
	tracker  *progress.Tracker
	scorer   Scorer
	opts     Options

	mu     sync.Mutex
	state  Lifecycle
	last   *result.Presentation
	lastID string
}

// New creates a controller in the Idle state.
func New(registry *form.Registry, v view.Context, tracker *progress.Tracker, scorer Scorer, opts Options) *Controller {
	if opts.Logger == nil {
		opts.Logger = logger.NewNoOpLogger()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Controller{
		registry: registry,
		view:     v,
		tracker:  tracker,
		scorer:   scorer,
		opts:     opts,
	}
}

// State returns the current lifecycle state.
func (c *Controller) State() Lifecycle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastResult returns the presentation of the last successful submission.
func (c *Controller) LastResult() (result.Presentation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last == nil {
		return result.Presentation{}, false
	}
	return *c.last, true
}

// LastAttemptID returns the id of the last successful submission.
func (c *Controller) LastAttemptID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastID
}

// Submit runs one submission attempt.
//
// It returns ErrIncomplete, ErrInProgress or ErrResultsShown without side
// effects when the attempt cannot start, a *FailureError after a failure was
// shown to the user, and nil once results are rendered.
func (c *Controller) Submit(ctx context.Context) error {
	snap, err := c.begin()
	if err != nil {
		return err
	}

	attempt := Attempt{
		ID:        uuid.NewString(),
		StartedAt: c.opts.Now(),
		Request:   scoring.NewPredictRequest(snap),
	}
	c.opts.Logger.LogDebug(fmt.Sprintf("submission %s started (AQ total %d)", attempt.ID, snap.TotalScore()))

	outcome := Failed
	defer func() {
		c.finish(outcome)
		attempt.Duration = c.opts.Now().Sub(attempt.StartedAt)
		attempt.Outcome = outcome
		c.record(ctx, attempt)
	}()

	callCtx, cancel := c.callContext(scoring.WithRequestID(ctx, attempt.ID))
	p, err := c.scorer.Predict(callCtx, attempt.Request)
	cancel()
	if err == nil && p == nil {
		err = fmt.Errorf("%w: empty prediction", scoring.ErrTransport)
	}

	if err != nil {
		c.opts.Logger.LogDebug(fmt.Sprintf("submission %s transport failure: %v", attempt.ID, err))
		attempt.Message = NetworkErrorMessage
		c.view.ShowError(NetworkErrorMessage)
		return &FailureError{Message: NetworkErrorMessage, Err: err}
	}

	attempt.Prediction = p
	if !p.Success {
		msg := p.Error
		if msg == "" {
			msg = FallbackErrorMessage
		}
		c.opts.Logger.LogDebug(fmt.Sprintf("submission %s rejected by service: %s", attempt.ID, msg))
		attempt.Message = msg
		c.view.ShowError(msg)
		return &FailureError{Message: msg, Err: ErrServiceFailure}
	}

	pres := result.Interpret(*p)
	c.view.ShowResults(pres)
	c.mu.Lock()
	c.last = &pres
	c.lastID = attempt.ID
	c.mu.Unlock()

	outcome = Succeeded
	c.opts.Logger.LogInfo(fmt.Sprintf("submission %s succeeded: prediction=%s score=%d", attempt.ID, p.Prediction, p.AQTotalScore))
	return nil
}

// begin checks the gate and enters Submitting.
func (c *Controller) begin() (form.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case Submitting:
		return form.Snapshot{}, ErrInProgress
	case Succeeded:
		return form.Snapshot{}, ErrResultsShown
	}

	if !c.tracker.Evaluate().Complete {
		return form.Snapshot{}, ErrIncomplete
	}

	c.state = Submitting
	c.view.SetSubmitEnabled(false)
	c.view.SetLoading(true)
	return c.registry.CurrentSnapshot(c.view), nil
}

// finish is the cleanup step; it runs exactly once per started attempt.
func (c *Controller) finish(outcome Lifecycle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = outcome
	c.view.SetSubmitEnabled(true)
	c.view.SetLoading(false)
}

func (c *Controller) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.opts.Timeout > 0 {
		return context.WithTimeout(ctx, c.opts.Timeout)
	}
	return context.WithCancel(ctx)
}

func (c *Controller) record(ctx context.Context, a Attempt) {
	if c.opts.Recorder == nil {
		return
	}
	if err := c.opts.Recorder.Record(context.WithoutCancel(ctx), a); err != nil {
		c.opts.Logger.LogError(fmt.Sprintf("failed to record submission %s: %v", a.ID, err))
	}
}

// Reset clears the form, hides the results, shows the form and recomputes
// progress. It is refused while a submission is outstanding.
func (c *Controller) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == Submitting {
		return ErrInProgress
	}

	c.view.ClearFields()
	c.view.ShowForm()
	c.tracker.Evaluate()
	c.state = Idle
	c.last = nil
	c.lastID = ""
	return nil
}

// Subscribe binds the controller to submit and reset requests. Gating errors
// are swallowed: an incomplete or busy form simply ignores the request.
func (c *Controller) Subscribe(bus *event.Bus) {
	bus.Subscribe(event.SubmitRequested, func(ctx context.Context, _ event.Event) error {
		err := c.Submit(ctx)
		if errors.Is(err, ErrIncomplete) || errors.Is(err, ErrInProgress) || errors.Is(err, ErrResultsShown) {
			return nil
		}
		return err
	})
	bus.Subscribe(event.ResetRequested, func(context.Context, event.Event) error {
		return c.Reset()
	})
}
