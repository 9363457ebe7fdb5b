package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/dgallion1/docfill/internal/datasource"
	"github.com/dgallion1/docfill/internal/generator"
)

// Worker fills the template of a single job.
type Worker struct {
	gen *generator.Generator
	log *slog.Logger
}

func NewWorker(gen *generator.Generator, log *slog.Logger) *Worker {
	return &Worker{gen: gen, log: log}
}

// Process runs load → open → fill → save for a job. Any failure fails the
// whole job; there is no partial output.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "template", job.TemplateName)

	if err := ctx.Err(); err != nil {
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "cancelled")
		return
	}

	job.SetStatus(StatusGenerating, "loading data")
	template, data := job.Inputs()
	resolver, err := datasource.Resolver(bytes.NewReader(data), job.DataName)
	if err != nil {
		log.Error("data load failed", "error", err)
		job.AddError(fmt.Sprintf("data: %s", err))
		job.SetStatus(StatusFailed, "loading data")
		return
	}

	job.SetStatus(StatusGenerating, "opening template")
	pkg, err := generator.Open(bytes.NewReader(template))
	if err != nil {
		log.Error("template open failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "opening template")
		return
	}

	job.SetStatus(StatusGenerating, "filling")
	stats := w.gen.Fill(pkg.Document, resolver)

	out, err := generator.Save(pkg)
	if err != nil {
		log.Error("save failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "saving")
		return
	}
	result, err := io.ReadAll(out)
	if err != nil {
		job.AddError(fmt.Sprintf("read result: %s", err))
		job.SetStatus(StatusFailed, "saving")
		return
	}

	job.Complete(result, stats)
	log.Info("job complete", "scopes", stats.Scopes, "lookups", stats.Lookups, "bytes", len(result))
}
