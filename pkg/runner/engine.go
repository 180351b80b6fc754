package runner

import (
	"context"

	"github.com/sdejongh/paircomp/pkg/diff"
	"github.com/sdejongh/paircomp/pkg/logging"
	"github.com/sdejongh/paircomp/pkg/match"
	"github.com/sdejongh/paircomp/pkg/models"
	"github.com/sdejongh/paircomp/pkg/output"
)

// Engine ties pair discovery and comparison together into a single
// operation run
type Engine struct {
	matcher   *match.Matcher
	differ    *diff.Differ
	formatter output.Formatter
	logger    logging.Logger
}

// NewEngine creates an engine with the given components. A nil logger
// is replaced by a no-op one.
func NewEngine(matcher *match.Matcher, differ *diff.Differ, formatter output.Formatter, logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Engine{
		matcher:   matcher,
		differ:    differ,
		formatter: formatter,
		logger:    logger,
	}
}

// Run discovers matching pairs in the operation's directories and
// compares them through the worker pipeline
func (e *Engine) Run(ctx context.Context, operation *models.CompareOperation) (*models.CompareReport, error) {
	if err := operation.Validate(); err != nil {
		return nil, err
	}

	e.logger.Info(ctx, "starting comparison", logging.Fields{
		"operation_id": operation.ID,
		"dir1":         operation.Dir1,
		"dir2":         operation.Dir2,
	})

	pairs, err := e.matcher.Match(ctx, operation.Dir1, operation.Dir2)
	if err != nil {
		return nil, err
	}

	pipeline := NewPipeline(e.differ, e.formatter, e.logger, operation, PipelineConfig{
		MaxWorkers: operation.MaxWorkers,
		QueueSize:  1000,
	})
	return pipeline.Run(ctx, pairs)
}
