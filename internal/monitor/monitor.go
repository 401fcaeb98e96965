// Package monitor tracks whether the inference server can be used.
//
// The Monitor is a plain state machine: callers run probes on whatever
// timer they like and feed the results to Observe. The Monitor decides the
// resulting state and tells the caller when the next retry is due.
package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/zhubert/scribe/internal/logger"
)

// Availability is the tri-state capability flag.
type Availability int

const (
	Unknown Availability = iota
	Available
	Unavailable
)

func (a Availability) String() string {
	switch a {
	case Available:
		return "available"
	case Unavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Default cadence.
const (
	DefaultProbeTimeout  = 2 * time.Second
	DefaultRetryInterval = 5 * time.Second
	DefaultPollInterval  = 10 * time.Second
)

// Prober lists installed models; any error means the server is unusable.
type Prober interface {
	ListModels(ctx context.Context) ([]string, error)
}

// ProbeResult is the outcome of one probe.
type ProbeResult struct {
	Models []string
	Err    error
}

// Probe runs one probe bounded by timeout.
func Probe(ctx context.Context, p Prober, timeout time.Duration) ProbeResult {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	models, err := p.ListModels(ctx)
	return ProbeResult{Models: models, Err: err}
}

// Transition describes what one observation changed.
type Transition struct {
	From, To Availability
	// Advise is set the first time the server reports no installed models.
	Advise bool
}

// Changed reports whether availability flipped.
func (t Transition) Changed() bool {
	return t.From != t.To
}

// Options configures the cadence. Zero values fall back to the defaults.
type Options struct {
	ProbeTimeout  time.Duration
	RetryInterval time.Duration
	PollInterval  time.Duration
}

// Monitor holds the current availability and the probe schedule.
type Monitor struct {
	state    Availability
	models   []string
	lastErr  error
	advised  bool
	retryGen uint64
	opts     Options
	log      *slog.Logger
}

// New creates a Monitor in the Unknown state.
func New(opts Options) *Monitor {
	if opts.ProbeTimeout <= 0 {
		opts.ProbeTimeout = DefaultProbeTimeout
	}
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = DefaultRetryInterval
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	return &Monitor{
		opts: opts,
		log:  logger.WithComponent("monitor"),
	}
}

// Observe applies a probe result. Success always means Available, failure
// always means Unavailable.
func (m *Monitor) Observe(res ProbeResult) Transition {
	tr := Transition{From: m.state}

	if res.Err != nil {
		m.state = Unavailable
		m.lastErr = res.Err
	} else {
		m.state = Available
		m.lastErr = nil
		m.models = append(m.models[:0], res.Models...)
		if len(res.Models) == 0 && !m.advised {
			m.advised = true
			tr.Advise = true
		}
	}
	tr.To = m.state

	if tr.Changed() {
		m.log.Info("availability changed", "from", tr.From, "to", tr.To, "error", res.Err)
	}
	return tr
}

// State returns the current availability.
func (m *Monitor) State() Availability {
	return m.state
}

// Available reports whether AI actions may run.
func (m *Monitor) Available() bool {
	return m.state == Available
}

// Models returns the model names from the last successful probe.
func (m *Monitor) Models() []string {
	out := make([]string, len(m.models))
	copy(out, m.models)
	return out
}

// HasModel reports whether name was in the last successful probe.
func (m *Monitor) HasModel(name string) bool {
	for _, model := range m.models {
		if model == name {
			return true
		}
	}
	return false
}

// LastErr returns the error from the last failed probe.
func (m *Monitor) LastErr() error {
	return m.lastErr
}

// ScheduleRetry starts a new retry cycle and returns its token. Tokens from
// earlier cycles are no longer due.
func (m *Monitor) ScheduleRetry() uint64 {
	m.retryGen++
	return m.retryGen
}

// RetryDue reports whether a retry carrying token should still probe: it
// must belong to the latest cycle and the server must still be unavailable.
func (m *Monitor) RetryDue(token uint64) bool {
	return token == m.retryGen && m.state == Unavailable
}

// ProbeTimeout bounds each probe.
func (m *Monitor) ProbeTimeout() time.Duration { return m.opts.ProbeTimeout }

// RetryInterval is the re-probe delay while unavailable.
func (m *Monitor) RetryInterval() time.Duration { return m.opts.RetryInterval }

// PollInterval is the steady cadence regardless of state.
func (m *Monitor) PollInterval() time.Duration { return m.opts.PollInterval }

// Advisory is the one-time hint shown when no models are installed.
func Advisory(model string) string {
	return fmt.Sprintf("No models installed. Run: ollama pull %s", model)
}
