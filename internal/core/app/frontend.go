package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	domainerrors "splc/internal/core/errors"
	"splc/internal/core/ports"
	"splc/internal/data/history"
	"splc/internal/engine/grammar"
	"splc/internal/engine/lexer"
	"splc/internal/engine/parser"
	"splc/internal/engine/scope"
	"splc/internal/engine/syntax"
	"splc/internal/engine/token"
	"splc/internal/shared/observability"
)

// Stage names used for spans, metrics and error context.
const (
	StageLex     = "lex"
	StageParse   = "parse"
	StageAnalyze = "analyze"
)

// Result is a successful pipeline run.
type Result struct {
	RunID    string
	Source   string
	Tokens   []token.Token
	Tree     *syntax.Tree
	Symbols  *scope.Table
	Duration time.Duration
}

// Frontend runs lex, parse and analyze over one source at a time. It is
// safe for concurrent use; every run gets fresh parser and analyzer state.
type Frontend struct {
	table    *grammar.Table
	parser   *parser.Parser
	observer parser.Observer
	recorder ports.RunRecorder
	print    string

	mu       sync.RWMutex
	analyzer *scope.Analyzer
}

type FrontendOption func(*Frontend)

// WithTable replaces the compiled-in SPL table.
func WithTable(t *grammar.Table) FrontendOption {
	return func(f *Frontend) { f.table = t }
}

func WithStrict(strict bool) FrontendOption {
	return func(f *Frontend) { f.analyzer = scope.New(scope.WithStrict(strict)) }
}

// WithRecorder persists every run, successful or not.
func WithRecorder(r ports.RunRecorder) FrontendOption {
	return func(f *Frontend) { f.recorder = r }
}

// WithParseObserver receives every parser step.
func WithParseObserver(obs parser.Observer) FrontendOption {
	return func(f *Frontend) { f.observer = obs }
}

func NewFrontend(opts ...FrontendOption) *Frontend {
	f := &Frontend{}
	for _, opt := range opts {
		opt(f)
	}
	if f.table == nil {
		f.table = grammar.SPL()
	}
	if f.analyzer == nil {
		f.analyzer = scope.New()
	}
	var popts []parser.Option
	if f.observer != nil {
		popts = append(popts, parser.WithObserver(f.observer))
	}
	f.parser = parser.New(f.table, popts...)
	if f.recorder != nil {
		f.print = f.table.Fingerprint()
	}
	return f
}

func (f *Frontend) Table() *grammar.Table { return f.table }

// SetStrict swaps the analyzer; runs already in flight keep the old one.
func (f *Frontend) SetStrict(strict bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.analyzer = scope.New(scope.WithStrict(strict))
}

func (f *Frontend) Strict() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.analyzer.Strict()
}

// Run lexes, parses and analyzes src. name identifies the source in
// errors, spans and history. Errors carry the failing stage, the source
// name and the run ID as context and keep their original code.
func (f *Frontend) Run(ctx context.Context, name, src string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.RLock()
	analyzer := f.analyzer
	f.mu.RUnlock()

	res := &Result{RunID: uuid.NewString(), Source: name}
	ctx, span := observability.Tracer.Start(ctx, "frontend.Run", trace.WithAttributes(
		attribute.String("source", name),
		attribute.String("run_id", res.RunID),
		attribute.Bool("strict", analyzer.Strict()),
	))
	defer span.End()

	start := time.Now()
	stage, err := f.runStages(ctx, res, analyzer, src)
	res.Duration = time.Since(start)

	f.observe(res, err)
	f.record(res, src, analyzer.Strict(), err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(domainerrors.CodeOf(err)))
		err = domainerrors.AddContext(err, domainerrors.CtxStage, stage)
		err = domainerrors.AddContext(err, domainerrors.CtxPath, name)
		err = domainerrors.AddContext(err, domainerrors.CtxRunID, res.RunID)
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("tokens", len(res.Tokens)),
		attribute.Int("nodes", res.Tree.Len()),
		attribute.Int("symbols", res.Symbols.Len()),
	)
	return res, nil
}

func (f *Frontend) runStages(ctx context.Context, res *Result, analyzer *scope.Analyzer, src string) (string, error) {
	err := stage(ctx, StageLex, func() error {
		var err error
		res.Tokens, err = lexer.Lex(src)
		return err
	})
	if err != nil {
		return StageLex, err
	}
	observability.TokensTotal.Add(float64(len(res.Tokens)))

	err = stage(ctx, StageParse, func() error {
		var err error
		res.Tree, err = f.parser.Parse(res.Tokens)
		return err
	})
	if err != nil {
		return StageParse, err
	}

	err = stage(ctx, StageAnalyze, func() error {
		var err error
		res.Symbols, err = analyzer.Analyze(res.Tree)
		return err
	})
	if err != nil {
		return StageAnalyze, err
	}
	return "", nil
}

func stage(ctx context.Context, name string, fn func() error) error {
	_, span := observability.Tracer.Start(ctx, "frontend."+name)
	defer span.End()

	start := time.Now()
	err := fn()
	observability.StageDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(domainerrors.CodeOf(err)))
	}
	return err
}

func (f *Frontend) observe(res *Result, err error) {
	if err != nil {
		observability.RunsTotal.WithLabelValues("error").Inc()
		observability.DiagnosticsTotal.WithLabelValues(string(domainerrors.CodeOf(err)), ruleOf(err)).Inc()
		return
	}
	observability.RunsTotal.WithLabelValues("ok").Inc()
	observability.TreeNodes.Set(float64(res.Tree.Len()))
	observability.SymbolsBound.Set(float64(res.Symbols.Len()))
}

func (f *Frontend) record(res *Result, src string, strict bool, err error) {
	if f.recorder == nil {
		return
	}
	run := history.Run{
		ID:           res.RunID,
		Source:       res.Source,
		SourceHash:   history.HashSource(src),
		Status:       history.StatusOK,
		Tokens:       len(res.Tokens),
		Strict:       strict,
		Duration:     res.Duration,
		GrammarPrint: f.print,
	}
	if res.Tree != nil {
		run.Nodes = res.Tree.Len()
	}
	if res.Symbols != nil {
		run.Symbols = res.Symbols.Len()
	}
	if err != nil {
		run.Status = string(domainerrors.CodeOf(err))
		run.Message = err.Error()
	}
	if _, recErr := f.recorder.Record(run); recErr != nil {
		observability.HistoryWriteErrorsTotal.Inc()
	}
}

func ruleOf(err error) string {
	var se *scope.SemanticError
	if errors.As(err, &se) {
		return string(se.Rule)
	}
	return ""
}
