package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/harrison/aqscreen/internal/config"
	"github.com/harrison/aqscreen/internal/display"
	"github.com/harrison/aqscreen/internal/event"
	"github.com/harrison/aqscreen/internal/form"
	"github.com/harrison/aqscreen/internal/history"
	"github.com/harrison/aqscreen/internal/logger"
	"github.com/harrison/aqscreen/internal/progress"
	"github.com/harrison/aqscreen/internal/scoring"
	"github.com/harrison/aqscreen/internal/submission"
	"github.com/harrison/aqscreen/internal/view"
)

// app holds what every command needs: resolved configuration, a logger and
// the field registry.
type app struct {
	home        string
	cfg         *config.Config
	log         logger.Logger
	registry    *form.Registry
	colorOutput bool
}

// newApp loads configuration (file, then flags) for cmd.
func newApp(cmd *cobra.Command) (*app, error) {
	home, err := config.GetHome()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve aqscreen home: %w", err)
	}

	configPath, _ := cmd.Flags().GetString("config")
	var cfg *config.Config
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err == nil {
			cfg.ResolvePaths(home)
		}
	} else {
		cfg, err = config.LoadConfigFromHome(home)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var baseURLPtr *string
	var timeoutPtr *time.Duration
	var logLevelPtr *string
	var noHistoryPtr *bool

	if cmd.Flags().Changed("service-url") {
		v, _ := cmd.Flags().GetString("service-url")
		baseURLPtr = &v
	}
	if cmd.Flags().Changed("timeout") {
		v, _ := cmd.Flags().GetDuration("timeout")
		timeoutPtr = &v
	}
	if cmd.Flags().Changed("log-level") {
		v, _ := cmd.Flags().GetString("log-level")
		logLevelPtr = &v
	}
	if cmd.Flags().Changed("no-history") {
		v, _ := cmd.Flags().GetBool("no-history")
		noHistoryPtr = &v
	}
	cfg.MergeWithFlags(baseURLPtr, timeoutPtr, logLevelPtr, noHistoryPtr)

	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		cfg.Color = "never"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &app{
		home:        home,
		cfg:         cfg,
		log:         logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel),
		registry:    form.NewRegistry(),
		colorOutput: useColor(cfg.Color, cmd.OutOrStdout()),
	}, nil
}

func (a *app) client() *scoring.Client {
	return scoring.NewClient(a.cfg.Service)
}

// openHistory opens the history store, or returns nil when history is off.
func (a *app) openHistory() (*history.Store, error) {
	if !a.cfg.History.Enabled {
		return nil, nil
	}
	return history.NewStore(a.cfg.History.DBPath)
}

func useColor(mode string, out io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return isTerminal(out) && !color.NoColor
	}
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// session is one live form: the terminal view, progress tracker and
// submission controller wired to a shared event bus.
type session struct {
	ctx        context.Context
	log        logger.Logger
	registry   *form.Registry
	term       *display.Terminal
	bus        *event.Bus
	tracker    *progress.Tracker
	controller *submission.Controller
	store      *history.Store
}

func (a *app) newSession(ctx context.Context, out io.Writer) *session {
	mem := view.NewMemory(a.registry)
	term := display.NewTerminal(mem, out, a.colorOutput)
	tracker := progress.NewTracker(a.registry, term, term)

	s := &session{
		ctx:      ctx,
		log:      a.log,
		registry: a.registry,
		term:     term,
		tracker:  tracker,
		bus:      event.NewBus(),
	}

	opts := submission.Options{Timeout: a.cfg.Service.Timeout, Logger: a.log}
	store, err := a.openHistory()
	if err != nil {
		a.log.LogWarn(fmt.Sprintf("history disabled: %v", err))
	} else if store != nil {
		s.store = store
		opts.Recorder = store
	}
	s.controller = submission.New(a.registry, term, tracker, a.client(), opts)

	// The tracker subscribes first so the gate is current for the controller.
	tracker.Subscribe(s.bus)
	s.controller.Subscribe(s.bus)
	return s
}

// Set writes a field and announces the change.
func (s *session) Set(name, value string) error {
	if err := s.term.Set(name, value); err != nil {
		return err
	}
	s.log.LogTrace(fmt.Sprintf("field %s set to %q", name, value))
	return s.bus.Publish(s.ctx, event.Event{Kind: event.FieldChanged, Field: name})
}

func (s *session) submit() error {
	return s.bus.Publish(s.ctx, event.Event{Kind: event.SubmitRequested})
}

func (s *session) reset() error {
	return s.bus.Publish(s.ctx, event.Event{Kind: event.ResetRequested})
}

func (s *session) missing() []string {
	return s.registry.CurrentSnapshot(s.term).Missing(s.registry)
}

func (s *session) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}
