package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/rs/zerolog"

	"labelord/pkg/github"
	"labelord/pkg/labels"
)

// Reporter writes one record per executed or planned operation
type Reporter interface {
	Result(result labels.Result)
	Planned(plan github.RepositoryPlan)
}

// newReporter returns the reporter for an --output value
func newReporter(format string, out, errOut io.Writer) Reporter {
	if format == OutputJSON {
		return &jsonReporter{logger: zerolog.New(out).With().Timestamp().Logger()}
	}
	return &textReporter{out: out, errOut: errOut}
}

// operationTag returns the three letter tag printed in front of a result
func operationTag(kind labels.OperationKind) string {
	switch kind {
	case labels.OperationCreate:
		return "ADD"
	case labels.OperationUpdate:
		return "UPD"
	case labels.OperationDelete:
		return "DEL"
	default:
		return "LBL"
	}
}

// textReporter prints "[ADD][SUC] owner/repo; name; color" lines. Failures
// go to errOut with the error detail appended.
type textReporter struct {
	out    io.Writer
	errOut io.Writer
}

func (r *textReporter) Result(result labels.Result) {
	tag := operationTag(result.Operation.Kind)
	if !result.Succeeded() {
		fields := result.Repository
		if result.Operation.Kind != labels.OperationFetch && result.Operation.Name != "" {
			fields = formatFields(result.Repository, result.Operation)
		}
		_, _ = fmt.Fprintf(r.errOut, "[%s][ERR] %s; %s\n", tag, fields, github.Detail(result.Err))
		return
	}
	_, _ = fmt.Fprintf(r.out, "[%s][SUC] %s\n", tag, formatFields(result.Repository, result.Operation))
}

func (r *textReporter) Planned(plan github.RepositoryPlan) {
	if plan.Err != nil {
		_, _ = fmt.Fprintf(r.errOut, "[LBL][ERR] %s; %s\n", plan.Repository, github.Detail(plan.Err))
		return
	}
	for _, op := range plan.Operations {
		_, _ = fmt.Fprintf(r.out, "[%s][DRY] %s\n", operationTag(op.Kind), formatFields(plan.Repository, op))
	}
}

func formatFields(repo string, op labels.Operation) string {
	fields := []string{repo, op.Name}
	if op.Color != "" {
		fields = append(fields, op.Color)
	}
	return strings.Join(fields, "; ")
}

// jsonReporter emits one JSON object per record
type jsonReporter struct {
	logger zerolog.Logger
}

func (r *jsonReporter) Result(result labels.Result) {
	event := r.logger.Log().
		Str("repository", result.Repository).
		Str("operation", string(result.Operation.Kind)).
		Str("outcome", string(result.Outcome()))
	if result.Operation.Name != "" {
		event = event.Str("label", result.Operation.Name)
	}
	if result.Operation.Color != "" {
		event = event.Str("color", result.Operation.Color)
	}
	if !result.Succeeded() {
		event = event.Str("error", github.Detail(result.Err))
	}
	event.Send()
}

func (r *jsonReporter) Planned(plan github.RepositoryPlan) {
	if plan.Err != nil {
		r.logger.Log().
			Str("repository", plan.Repository).
			Str("operation", string(labels.OperationFetch)).
			Str("outcome", string(labels.OutcomeFailure)).
			Str("error", github.Detail(plan.Err)).
			Send()
		return
	}
	for _, op := range plan.Operations {
		event := r.logger.Log().
			Str("repository", plan.Repository).
			Str("operation", string(op.Kind)).
			Str("label", op.Name).
			Str("outcome", "planned")
		if op.Color != "" {
			event = event.Str("color", op.Color)
		}
		event.Send()
	}
}

// renderSummary writes a per-repository table of operation counts
func renderSummary(w io.Writer, summaries []labels.Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.Style().Color.Header = text.Colors{text.Bold}
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault

	t.AppendHeader(table.Row{"Repository", "Created", "Updated", "Deleted", "Failed"})

	var total labels.Summary
	for _, s := range summaries {
		t.AppendRow(table.Row{s.Repository, s.Created, s.Updated, s.Deleted, s.Failed})
		total.Created += s.Created
		total.Updated += s.Updated
		total.Deleted += s.Deleted
		total.Failed += s.Failed
	}

	t.AppendFooter(table.Row{fmt.Sprintf("%d repositories", len(summaries)), total.Created, total.Updated, total.Deleted, total.Failed})
	t.Render()
}
