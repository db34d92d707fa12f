package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter"
)

// Outcome is the result of one job.
type Outcome struct {
	Job    string
	Kind   Kind
	Result *xlsxcutter.Result
	Err    error
}

// OK reports whether the job ran and wrote every requested output.
func (o Outcome) OK() bool {
	return o.Err == nil && (o.Result == nil || o.Result.OK())
}

func (o Outcome) MarshalJSON() ([]byte, error) {
	var msg string
	if o.Err != nil {
		msg = o.Err.Error()
	}
	return json.Marshal(struct {
		Job    string             `json:"job"`
		Kind   Kind               `json:"kind"`
		Result *xlsxcutter.Result `json:"result,omitempty"`
		Error  string             `json:"error,omitempty"`
	}{o.Job, o.Kind, o.Result, msg})
}

// Run executes the jobs of m in order. A failing job is recorded in its
// Outcome and does not stop later jobs; once ctx is done the remaining jobs
// are reported with ctx's error.
func Run(ctx context.Context, m *Manifest, logger *zerolog.Logger) []Outcome {
	base := zerolog.Nop()
	if logger != nil {
		base = *logger
	}
	outcomes := make([]Outcome, 0, len(m.Jobs))
	for _, job := range m.Jobs {
		log := base.With().Str("job", job.Name).Str("kind", string(job.Kind)).Logger()
		out := Outcome{Job: job.Name, Kind: job.Kind}
		if err := ctx.Err(); err != nil {
			out.Err = err
			outcomes = append(outcomes, out)
			continue
		}
		out.Result, out.Err = runJob(ctx, job, &log)
		if out.Err != nil {
			log.Error().Err(out.Err).Msg("job failed")
		} else {
			log.Info().Int("files", len(out.Result.Written)).Int("failures", len(out.Result.Failures)).Msg("job finished")
		}
		outcomes = append(outcomes, out)
	}
	return outcomes
}

func runJob(ctx context.Context, job Job, log *zerolog.Logger) (*xlsxcutter.Result, error) {
	switch job.Kind {
	case KindSplit:
		req, err := job.SplitRequest()
		if err != nil {
			return nil, err
		}
		req.Logger = log
		return xlsxcutter.Split(ctx, req)
	case KindBuild:
		req := job.RebuildRequest()
		req.Logger = log
		return xlsxcutter.Rebuild(ctx, req)
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidManifest, job.Kind)
	}
}
