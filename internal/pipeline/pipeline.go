// Package pipeline runs one scrape of the spot price page: fetch, parse,
// extract, resolve the update time and persist. Nothing is written unless
// every earlier stage succeeded.
package pipeline

import (
	"context"
	"slices"
	"time"

	"dramex-logger/internal/components/assert"
	"dramex-logger/internal/components/telemetry"
	"dramex-logger/internal/scrapers/dramexchange"
	"dramex-logger/internal/snapshotlog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("dramex/pipeline")
var meter = otel.Meter("dramex/pipeline")
var rowsCounter, _ = meter.Int64Counter("dramex.rows_scraped")
var durationHistogram, _ = meter.Float64Histogram("dramex.run_duration_ms")

const (
	report_pipeline_run     = "pipeline.run"
	report_pipeline_headers = "pipeline.headers"
)

// Fetcher retrieves the raw page, *dramexchange.Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type Options struct {
	TableSelector string
	TimeSelector  string
	Markers       dramexchange.Markers
}

func (o Options) withDefaults() Options {
	if o.TableSelector == "" {
		o.TableSelector = dramexchange.DefaultTableSelector
	}
	if o.TimeSelector == "" {
		o.TimeSelector = dramexchange.DefaultTimeSelector
	}
	if o.Markers.Label == "" {
		o.Markers.Label = dramexchange.DefaultMarkers.Label
	}
	if o.Markers.Zone == "" {
		o.Markers.Zone = dramexchange.DefaultMarkers.Zone
	}
	return o
}

type Pipeline struct {
	fetcher Fetcher
	log     snapshotlog.Log
	opts    Options
	tel     telemetry.API
}

func New(fetcher Fetcher, log snapshotlog.Log, opts Options, tel telemetry.API) Pipeline {
	assert.NotNil(fetcher)
	assert.NotNil(tel)

	return Pipeline{
		fetcher: fetcher,
		log:     log,
		opts:    opts.withDefaults(),
		tel:     telemetry.NewScopedAPI("pipeline", tel),
	}
}

// Result describes how far a run got. On failure Stage is the stage that
// failed and only the fields filled in before it are set.
type Result struct {
	Stage   Stage
	Headers []string
	Rows    int
	Token   dramexchange.Token
	Path    string
}

// Run scrapes url once and writes the snapshot. Any failure is returned as a
// *StageError wrapping one of *dramexchange.FetchError,
// *dramexchange.MalformedTableError, *dramexchange.TimestampFormatError or
// *snapshotlog.PersistenceError (or the context's error if cancelled).
func (p Pipeline) Run(ctx context.Context, url string) (Result, error) {
	ctx, span := tracer.Start(ctx, "pipeline:Run")
	defer span.End()
	start := time.Now()

	var result Result
	enter := func(stage Stage) {
		result.Stage = stage
		span.SetAttributes(attribute.String("stage", stage.String()))
		p.tel.ReportDebug("entering stage", stage.String())
	}
	fail := func(err error) (Result, error) {
		stageErr := &StageError{Stage: result.Stage, Err: err}
		span.RecordError(stageErr)
		span.SetStatus(codes.Error, result.Stage.String())
		return result, stageErr
	}

	enter(StageFetching)
	body, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		return fail(err)
	}

	enter(StageParsing)
	doc, err := dramexchange.ParseDocument(body)
	if err != nil {
		return fail(err)
	}

	enter(StageExtracting)
	headers, rows, err := dramexchange.Extract(doc.Selection, p.opts.TableSelector)
	if err != nil {
		return fail(err)
	}
	result.Headers = headers
	result.Rows = len(rows)
	if !slices.Equal(headers, dramexchange.SchemaHeaders) {
		p.tel.ReportWarning(report_pipeline_headers, "page headers differ from the snapshot schema", headers)
	}

	enter(StageTimestampResolving)
	text, err := dramexchange.FindTimestampText(doc.Selection, p.opts.TimeSelector)
	if err != nil {
		return fail(err)
	}
	token, err := dramexchange.ResolveTimestamp(text, p.opts.Markers)
	if err != nil {
		return fail(err)
	}
	result.Token = token

	enter(StageWriting)
	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	path, err := p.log.Write(dramexchange.Snapshot{
		Headers:   headers,
		Rows:      rows,
		Timestamp: token,
	})
	if err != nil {
		return fail(err)
	}
	result.Path = path

	enter(StageDone)
	rowsCounter.Add(ctx, int64(len(rows)))
	durationHistogram.Record(ctx, float64(time.Since(start).Milliseconds()))
	p.tel.ReportCount(report_pipeline_run, int64(len(rows)))

	return result, nil
}
