// Package assist runs the AI actions against the active tab: Generate
// rewrites the buffer, Debug and Explain produce text for the side panel.
package assist

import (
	"context"
	"log/slog"

	pErrors "github.com/zhubert/scribe/internal/errors"
	"github.com/zhubert/scribe/internal/logger"
	"github.com/zhubert/scribe/internal/session"
)

// Action is one of the AI actions.
type Action int

const (
	Generate Action = iota
	Debug
	Explain
)

// Actions lists every action in menu order.
var Actions = []Action{Generate, Debug, Explain}

func (a Action) String() string {
	switch a {
	case Generate:
		return "generate"
	case Debug:
		return "debug"
	case Explain:
		return "explain"
	default:
		return "unknown"
	}
}

// ReplacesBuffer reports whether a successful result overwrites the buffer.
// Every other action routes its result to the side panel.
func (a Action) ReplacesBuffer() bool {
	return a == Generate
}

// PanelTitle is the side panel heading for the action's result.
func (a Action) PanelTitle() string {
	switch a {
	case Debug:
		return "Debug Analysis"
	case Explain:
		return "Code Explanation"
	default:
		return ""
	}
}

// SuccessMessage is the notification shown when the action completes.
func (a Action) SuccessMessage() string {
	switch a {
	case Generate:
		return "Code generated!"
	case Debug:
		return "Debug complete"
	case Explain:
		return "Explanation ready"
	default:
		return "Done"
	}
}

// FailureMessage is the notification shown when the action fails.
func (a Action) FailureMessage() string {
	switch a {
	case Generate:
		return "Generation failed"
	case Debug:
		return "Debug failed"
	case Explain:
		return "Explanation failed"
	default:
		return "Request failed"
	}
}

// LoadingMessage is shown while the request is in flight.
func (a Action) LoadingMessage() string {
	switch a {
	case Generate:
		return "Generating..."
	case Debug:
		return "Debugging..."
	case Explain:
		return "Explaining..."
	default:
		return "Working..."
	}
}

// BuildPrompt assembles the prompt text. Explain uses the selection, the
// other actions use the whole buffer.
func BuildPrompt(a Action, buffer, selection string) string {
	switch a {
	case Generate:
		return "Generate useful code:\n" + buffer
	case Debug:
		return "Debug this code and list issues:\n\n" + buffer
	case Explain:
		return "Explain this code:\n\n" + selection
	default:
		return buffer
	}
}

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// Input is the editor state an action is evaluated against.
type Input struct {
	Available bool // inference server reachable
	TabID     session.TabID
	Buffer    string
	Selection string
	Model     string
}

// Request is an accepted action ready to run.
type Request struct {
	Action Action
	TabID  session.TabID
	Model  string
	Prompt string
}

// Outcome is the result of running a Request: Text on success, Err on
// failure, never both.
type Outcome struct {
	Action Action
	TabID  session.TabID
	Text   string
	Err    error
}

// OK reports whether the request succeeded.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Unavailable reports whether the failure means the server went away.
func (o Outcome) Unavailable() bool {
	return o.Err != nil && pErrors.IsUnavailable(o.Err)
}

// Run performs the request. It is safe to call from a goroutine.
func (r Request) Run(ctx context.Context, g Generator) Outcome {
	text, err := g.Generate(ctx, r.Model, r.Prompt)
	if err != nil {
		return Outcome{Action: r.Action, TabID: r.TabID, Err: err}
	}
	return Outcome{Action: r.Action, TabID: r.TabID, Text: text}
}

// Coordinator allows at most one request in flight per action.
type Coordinator struct {
	inFlight map[Action]bool
	log      *slog.Logger
}

// New creates a Coordinator with nothing in flight.
func New() *Coordinator {
	return &Coordinator{
		inFlight: make(map[Action]bool),
		log:      logger.WithComponent("assist"),
	}
}

// Enabled reports whether a trigger for a should be live for in.
func (c *Coordinator) Enabled(a Action, in Input) bool {
	if !in.Available || in.TabID == "" || c.inFlight[a] {
		return false
	}
	if a == Explain && in.Selection == "" {
		return false
	}
	return true
}

// Begin accepts a when it is enabled and marks it in flight. The caller
// runs the returned Request and passes its Outcome to Finish.
func (c *Coordinator) Begin(a Action, in Input) (Request, bool) {
	if !c.Enabled(a, in) {
		c.log.Debug("action not enabled", "action", a, "available", in.Available, "tabID", in.TabID)
		return Request{}, false
	}
	c.inFlight[a] = true
	c.log.Info("action started", "action", a, "tabID", in.TabID, "model", in.Model)
	return Request{
		Action: a,
		TabID:  in.TabID,
		Model:  in.Model,
		Prompt: BuildPrompt(a, in.Buffer, in.Selection),
	}, true
}

// Finish clears the in-flight flag for the outcome's action.
func (c *Coordinator) Finish(o Outcome) {
	delete(c.inFlight, o.Action)
	if o.Err != nil {
		c.log.Warn("action failed", "action", o.Action, "tabID", o.TabID, "error", o.Err)
		return
	}
	c.log.Info("action finished", "action", o.Action, "tabID", o.TabID, "bytes", len(o.Text))
}

// InFlight reports whether a is running.
func (c *Coordinator) InFlight(a Action) bool {
	return c.inFlight[a]
}

// Busy reports whether any action is running.
func (c *Coordinator) Busy() bool {
	return len(c.inFlight) > 0
}

// BufferReplacer overwrites a tab's buffer.
type BufferReplacer interface {
	ReplaceContent(id session.TabID, text string) bool
}

// Panel is side panel content produced by an action.
type Panel struct {
	Title string
	Body  string
}

// Apply routes a successful outcome: Generate replaces the tab's buffer,
// the other actions return panel content. Failed outcomes change nothing
// and report false.
func Apply(o Outcome, buffers BufferReplacer) (Panel, bool) {
	if !o.OK() {
		return Panel{}, false
	}
	if o.Action.ReplacesBuffer() {
		return Panel{}, buffers.ReplaceContent(o.TabID, o.Text)
	}
	return Panel{Title: o.Action.PanelTitle(), Body: o.Text}, true
}
