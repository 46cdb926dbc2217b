package automate

import (
	"context"
	"strings"

	"github.com/stratum-research/autoreadme/pkg/config"
	"github.com/stratum-research/autoreadme/pkg/errors"
	"github.com/stratum-research/autoreadme/pkg/output"
)

// Status is the outcome of one handler.
type Status string

const (
	StatusApplied Status = "applied"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Outcome records what happened to one handler.
type Outcome struct {
	Handler      string
	Status       Status
	Written      []string
	Requirements []string
	Err          error
}

// Report is the result of a dispatch run, in handler order.
type Report struct {
	Outcomes []Outcome
}

func (r *Report) filter(s Status) []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Status == s {
			out = append(out, o)
		}
	}
	return out
}

// Applied returns the handlers that ran successfully.
func (r *Report) Applied() []Outcome { return r.filter(StatusApplied) }

// Skipped returns the handlers that did not apply.
func (r *Report) Skipped() []Outcome { return r.filter(StatusSkipped) }

// Failed returns the handlers whose setup or write failed.
func (r *Report) Failed() []Outcome { return r.filter(StatusFailed) }

// Err summarizes failures as a single INTEGRATION_FAILED error, or nil.
func (r *Report) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}
	names := make([]string, len(failed))
	for i, o := range failed {
		names[i] = o.Handler
	}
	return errors.Wrap(errors.ErrCodeIntegrationFailed, failed[0].Err,
		"%d integration(s) failed: %s", len(failed), strings.Join(names, ", "))
}

// Dispatcher runs handlers against a config.
type Dispatcher struct {
	// Handlers are consulted in order. Nil means [Handlers].
	Handlers []Handler

	// Writer writes the artifacts handlers produce.
	Writer *output.Writer

	// FailFast stops at the first failing handler.
	FailFast bool
}

// Run evaluates every handler. With FailFast set, the first failure is
// returned together with the partial report; otherwise the error is nil
// and failures are recorded in the report.
func (d *Dispatcher) Run(ctx context.Context, cfg config.Config, env *Env) (*Report, error) {
	handlers := d.Handlers
	if handlers == nil {
		handlers = Handlers()
	}
	w := d.Writer
	if w == nil {
		dir := ""
		if env != nil {
			dir = env.Dir
		}
		w = output.NewWriter(dir)
	}
	logger := env.logger()

	report := &Report{}
	for _, h := range handlers {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if !h.Applicable(cfg, env) {
			logger.Debug("integration not applicable", "integration", h.Name())
			report.Outcomes = append(report.Outcomes, Outcome{Handler: h.Name(), Status: StatusSkipped})
			continue
		}

		outcome := d.apply(ctx, h, cfg, env, w)
		report.Outcomes = append(report.Outcomes, outcome)
		if outcome.Status == StatusFailed {
			logger.Debug("integration failed", "integration", h.Name(), "error", outcome.Err)
			if d.FailFast {
				return report, outcome.Err
			}
			continue
		}
		logger.Debug("integration applied", "integration", h.Name(), "files", len(outcome.Written))
	}
	return report, nil
}

func (d *Dispatcher) apply(ctx context.Context, h Handler, cfg config.Config, env *Env, w *output.Writer) Outcome {
	o := Outcome{Handler: h.Name(), Requirements: h.Requirements()}

	artifacts, err := h.Setup(ctx, cfg, env)
	if err != nil {
		o.Status = StatusFailed
		o.Err = errors.Wrap(errors.ErrCodeIntegrationFailed, err, "%s setup failed", h.Name())
		return o
	}

	written, err := w.WriteAll(artifacts)
	o.Written = written
	if err != nil {
		o.Status = StatusFailed
		o.Err = errors.Wrap(errors.ErrCodeIntegrationFailed, err, "%s: write files", h.Name())
		return o
	}
	o.Status = StatusApplied
	return o
}
