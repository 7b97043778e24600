package summarize

import (
	"context"
	"fmt"

	"ewintr.nl/vidsum/model"
)

// Pipeline chains validation, extraction, prompt building and generation
// into one sequential run. The first failing stage aborts the run; a
// successful run yields a complete, not yet persisted summary.
type Pipeline struct {
	extractor *Extractor
	generator Generator
}

func NewPipeline(extractor *Extractor, generator Generator) *Pipeline {
	return &Pipeline{
		extractor: extractor,
		generator: generator,
	}
}

func (p *Pipeline) Run(ctx context.Context, videoURL string, summaryType model.SummaryType, summaryLength model.SummaryLength) (*model.Summary, error) {
	md, err := p.extractor.Extract(ctx, videoURL)
	if err != nil {
		return nil, err
	}

	req := BuildRequest(md, summaryType, summaryLength)

	text, err := p.generator.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, fmt.Errorf("%w: empty response", ErrGeneration)
	}

	return &model.Summary{
		VideoURL:     videoURL,
		VideoTitle:   md.Title,
		ThumbnailURL: md.ThumbnailURL,
		SummaryText:  text,
		Type:         summaryType,
		Length:       summaryLength,
	}, nil
}
