// Package framework wires a document parser and a resume extractor into the
// single ParseResume entry point.
package framework

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"resumeparser/internal/ai"
	"resumeparser/internal/config"
	"resumeparser/internal/errors"
	"resumeparser/internal/extractor"
	"resumeparser/internal/observability"
	"resumeparser/internal/parser"
	"resumeparser/internal/types"
	"resumeparser/internal/utils"
)

// Extractor turns resume text into a structured record
type Extractor interface {
	ExtractAll(ctx context.Context, text string) (types.ResumeData, error)
}

// Framework parses resume documents into ResumeData
type Framework struct {
	parser    parser.Parser
	extractor Extractor
	logger    *errors.Logger
	metrics   *observability.Metrics
}

// Option customizes a Framework
type Option func(*Framework)

// WithMetrics records parse metrics on m instead of the global meter
func WithMetrics(m *observability.Metrics) Option {
	return func(f *Framework) {
		f.metrics = m
	}
}

// New creates a framework from an already configured parser and extractor
func New(p parser.Parser, e Extractor, logger *errors.Logger, opts ...Option) *Framework {
	if logger == nil {
		logger = errors.NewNopLogger()
	}
	f := &Framework{
		parser:    p,
		extractor: e,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.metrics == nil {
		f.metrics = observability.GlobalMetrics()
	}
	return f
}

// NewFromConfig builds the default pipeline: PDF and Word parsing, the
// configured LLM provider and the configured field extractors.
func NewFromConfig(cfg *config.Config, logger *errors.Logger, opts ...ai.Option) (*Framework, error) {
	return NewFromConfigWithFields(cfg, nil, logger, opts...)
}

// NewFromConfigWithFields is NewFromConfig restricted to the named fields.
// An empty fields list keeps every configured field.
func NewFromConfigWithFields(cfg *config.Config, fields []string, logger *errors.Logger, opts ...ai.Option) (*Framework, error) {
	if logger == nil {
		logger = errors.NewNopLogger()
	}

	extractors, err := extractor.NewDefaultExtractors(cfg.Extraction)
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if extractors, err = extractor.SelectFields(extractors, fields); err != nil {
			return nil, err
		}
	}

	llm, err := ai.NewClient(cfg.LLM, logger, opts...)
	if err != nil {
		return nil, err
	}

	resumeExtractor, err := extractor.NewResumeExtractor(extractors, llm, logger)
	if err != nil {
		return nil, err
	}

	logger.Debug("Framework initialized",
		"provider", cfg.LLM.Provider,
		"fields", resumeExtractor.Fields(),
		"max_file_size", cfg.App.MaxFileSize)

	return New(parser.NewDefaultParser(cfg.App.MaxFileSize, logger), resumeExtractor, logger), nil
}

// SupportedExtensions lists the document extensions ParseResume accepts
func (f *Framework) SupportedExtensions() []string {
	return f.parser.SupportedExtensions()
}

// ParseResume extracts the text of the document at path and runs every field
// extractor over it. Parser, LLM and extraction errors are returned unchanged.
func (f *Framework) ParseResume(ctx context.Context, path string) (types.ResumeData, error) {
	tracer := otel.Tracer("resumeparser.framework")
	ctx, span := tracer.Start(ctx, "framework.parse_resume")
	defer span.End()

	format := utils.GetFileExtension(path)
	span.SetAttributes(
		attribute.String("resume.file", path),
		attribute.String("resume.format", format),
	)

	logger := f.logger.With("file", path)
	start := time.Now()
	logger.Info("Parsing resume")

	data, err := f.parse(ctx, path, logger, span.SetAttributes)
	duration := time.Since(start)
	f.metrics.RecordResumeParsed(ctx, format, duration, err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.LogError(err, "Failed to parse resume",
			"duration_ms", duration.Milliseconds())
		return types.ResumeData{}, err
	}

	logger.Info("Resume parsed",
		"duration_ms", duration.Milliseconds(),
		"empty", data.IsEmpty())
	return data, nil
}

func (f *Framework) parse(ctx context.Context, path string, logger *errors.Logger, annotate func(...attribute.KeyValue)) (types.ResumeData, error) {
	text, err := f.parser.ExtractText(ctx, path)
	if err != nil {
		return types.ResumeData{}, err
	}
	annotate(attribute.Int("resume.text_length", len(text)))
	logger.Debug("Extracted resume text", "characters", len(text))

	return f.extractor.ExtractAll(ctx, text)
}
