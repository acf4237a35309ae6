package processor

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/mediascribe/internal/export"
	"github.com/nguyentantai21042004/mediascribe/internal/media"
	"github.com/nguyentantai21042004/mediascribe/internal/metrics"
	"github.com/nguyentantai21042004/mediascribe/internal/normalizer"
)

func (p *implProcessor) Analyze(ctx context.Context, req Request) (Response, error) {
	if err := p.sem.acquire(ctx); err != nil {
		return Response{}, err
	}
	defer p.sem.release()
	return p.run(ctx, req)
}

func (p *implProcessor) TryAnalyze(ctx context.Context, req Request) (Response, error) {
	if !p.sem.tryAcquire() {
		p.metrics.AnalysesTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		return Response{}, ErrBusy
	}
	defer p.sem.release()
	return p.run(ctx, req)
}

func (p *implProcessor) run(ctx context.Context, req Request) (Response, error) {
	d := req.Media
	if err := media.Validate(d.MIMEType, d.Size, p.cfg.Intake.MaxSizeBytes()); err != nil {
		return Response{}, err
	}

	sent := p.extractAudio(ctx, d)
	ref, err := p.stage(ctx, sent)
	if err != nil {
		return Response{}, fmt.Errorf("stage media: %w", err)
	}

	start := p.now()
	outcome, err := p.analyzer.Analyze(ctx, ref, sent.MIMEType, req.Language)
	took := p.now().Sub(start)
	if err != nil {
		p.metrics.ObserveAnalysis(metrics.OutcomeError, took)
		return Response{}, err
	}
	p.metrics.ObserveAnalysis(outcomeLabel(outcome.Kind), took)

	resp := Response{Outcome: outcome}
	if !req.Save {
		return resp, nil
	}

	title := req.Title
	if title == "" {
		title = d.Name
	}
	// The original type is archived even when extracted audio was sent.
	rec, err := p.archive.Save(ctx, title, outcome.Result, d.MIMEType, req.FolderID)
	if err != nil {
		return resp, fmt.Errorf("%w: %w", ErrNotArchived, err)
	}
	resp.Record = &rec
	p.refreshRecordGauge(ctx)
	return resp, nil
}

func (p *implProcessor) refreshRecordGauge(ctx context.Context) {
	recs, err := p.archive.List(ctx)
	if err != nil {
		return
	}
	p.metrics.ArchiveRecords.Set(float64(len(recs)))
}

func outcomeLabel(k normalizer.Kind) string {
	switch k {
	case normalizer.KindOK:
		return metrics.OutcomeOK
	case normalizer.KindDegraded:
		return metrics.OutcomeDegraded
	default:
		return metrics.OutcomeMalformed
	}
}

// Process orchestrates one inbox file end to end.
func (p *implProcessor) Process(ctx context.Context, path string) error {
	startTime := p.now()
	name := filepath.Base(path)
	title := strings.TrimSuffix(name, filepath.Ext(name))

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting media processing: %s", path)
	p.logger.Info(ctx, "========================================")

	d, err := p.intake.FromFile(ctx, path)
	if err != nil {
		return fmt.Errorf("intake: %w", err)
	}

	resp, err := p.Analyze(ctx, Request{
		Media:    d,
		Language: p.cfg.Gemini.Language,
		Title:    title,
		Save:     true,
	})
	var archiveErr error
	if errors.Is(err, ErrNotArchived) {
		// The result is still exported so the work is not lost.
		archiveErr = err
	} else if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	if resp.Outcome.Degraded() {
		p.logger.Warn(ctx, "Model reply for %s was %s; exporting fallback result", name, resp.Outcome.Kind)
	}

	doc := export.Document{Title: title, Result: resp.Outcome.Result}
	if resp.Record != nil {
		doc.Date = resp.Record.Date
	}
	var written []string
	for _, f := range []export.Format{export.FormatText, export.FormatDocx} {
		out, err := p.exporter.WriteFile(ctx, p.cfg.Paths.Output, f, doc)
		if err != nil {
			return fmt.Errorf("export %s: %w", f, err)
		}
		written = append(written, out)
	}

	if err := p.moveToArchived(ctx, path); err != nil {
		p.logger.Warn(ctx, "Failed to move original to archived folder: %v", err)
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing completed: %s", strings.Join(written, ", "))
	p.logger.Info(ctx, "Processing time: %s", p.now().Sub(startTime))
	p.logger.Info(ctx, "========================================")

	if archiveErr != nil {
		return archiveErr
	}
	return nil
}
