package runner

import (
	"context"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sdejongh/paircomp/pkg/diff"
	"github.com/sdejongh/paircomp/pkg/logging"
	"github.com/sdejongh/paircomp/pkg/models"
	"github.com/sdejongh/paircomp/pkg/output"
)

// Pipeline fans file pairs out to a fixed-size worker pool. Results are
// collected unordered and the report is reassembled deterministically
// by pair identity, never by completion order.
type Pipeline struct {
	differ    *diff.Differ
	formatter output.Formatter
	logger    logging.Logger
	operation *models.CompareOperation

	taskQueue  chan *PairTask
	maxWorkers int

	processedPairs atomic.Int32

	results   []*PairTask
	resultsMu sync.Mutex
}

// PipelineConfig holds configuration for the pipeline
type PipelineConfig struct {
	MaxWorkers int
	QueueSize  int // Buffer size for the task queue
}

// DefaultPipelineConfig returns sensible defaults
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		MaxWorkers: 4,
		QueueSize:  1000,
	}
}

// NewPipeline creates a comparison pipeline. Worker count comes from
// the config, threaded in by the caller at startup.
func NewPipeline(
	differ *diff.Differ,
	formatter output.Formatter,
	logger logging.Logger,
	operation *models.CompareOperation,
	config PipelineConfig,
) *Pipeline {
	if config.MaxWorkers < 1 {
		config.MaxWorkers = 1
	}
	if config.QueueSize < 100 {
		config.QueueSize = 100
	}
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Pipeline{
		differ:     differ,
		formatter:  formatter,
		logger:     logger,
		operation:  operation,
		taskQueue:  make(chan *PairTask, config.QueueSize),
		maxWorkers: config.MaxWorkers,
		results:    make([]*PairTask, 0),
	}
}

// Run compares all pairs and returns the assembled report. A failure in
// one pair never aborts its siblings; every outcome is captured in the
// report independently.
func (p *Pipeline) Run(ctx context.Context, pairs []models.FilePair) (*models.CompareReport, error) {
	report := &models.CompareReport{
		OperationID: p.operation.ID,
		Dir1:        p.operation.Dir1,
		Dir2:        p.operation.Dir2,
		StartTime:   time.Now(),
		Stats: models.Statistics{
			PairsFound: len(pairs),
		},
	}

	if p.formatter != nil {
		p.formatter.Start(os.Stdout, len(pairs))
	}

	var wg sync.WaitGroup
	for i := 0; i < p.maxWorkers; i++ {
		wg.Add(1)
		go p.runWorker(ctx, i+1, &wg)
	}

feed:
	for _, pair := range pairs {
		select {
		case <-ctx.Done():
			break feed
		case p.taskQueue <- NewPairTask(pair):
		}
	}
	close(p.taskQueue)

	wg.Wait()

	p.assemble(report)
	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)

	switch {
	case ctx.Err() != nil:
		report.Status = models.StatusCancelled
	case report.Stats.PairsErrored > 0:
		report.Status = models.StatusPartial
	default:
		report.Status = models.StatusSuccess
	}

	if p.formatter != nil {
		p.formatter.Complete(report)
	}

	if ctx.Err() != nil {
		return report, ctx.Err()
	}
	return report, nil
}

// runWorker is the worker goroutine that processes tasks until the
// queue is drained
func (p *Pipeline) runWorker(ctx context.Context, workerID int, wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-p.taskQueue:
			if !ok {
				return
			}
			p.processTask(ctx, workerID, task)
		}
	}
}

// processTask compares one pair and records its outcome
func (p *Pipeline) processTask(ctx context.Context, workerID int, task *PairTask) {
	startTime := time.Now()
	task.MarkProcessing(workerID)
	pairIndex := int(p.processedPairs.Add(1))

	if p.formatter != nil {
		p.formatter.Progress(output.ProgressUpdate{
			Type:        "pair_start",
			Pair:        task.Pair,
			CurrentPair: pairIndex,
		})
	}

	difference, err := p.differ.Compare(ctx, task.Pair.Path1, task.Pair.Path2)
	if err != nil {
		task.MarkError(err, time.Since(startTime))
		p.logger.Error(ctx, "pair comparison failed", err, logging.Fields{
			"file1": task.Pair.Path1,
			"file2": task.Pair.Path2,
		})

		if p.formatter != nil {
			p.formatter.Progress(output.ProgressUpdate{
				Type:        "pair_error",
				Pair:        task.Pair,
				CurrentPair: pairIndex,
				Error:       err,
			})
		}
	} else {
		task.MarkCompleted(difference, time.Since(startTime))

		if p.formatter != nil {
			p.formatter.Progress(output.ProgressUpdate{
				Type:          "pair_complete",
				Pair:          task.Pair,
				CurrentPair:   pairIndex,
				HasDifference: difference != nil,
			})
		}
	}

	p.addResult(task)
}

func (p *Pipeline) addResult(task *PairTask) {
	p.resultsMu.Lock()
	defer p.resultsMu.Unlock()
	p.results = append(p.results, task)
}

// assemble fills the report from the collected tasks, ordered by pair
// identity so output is stable regardless of completion order
func (p *Pipeline) assemble(report *models.CompareReport) {
	p.resultsMu.Lock()
	defer p.resultsMu.Unlock()

	sort.Slice(p.results, func(i, j int) bool {
		a, b := p.results[i].Pair, p.results[j].Pair
		if a.Path1 != b.Path1 {
			return a.Path1 < b.Path1
		}
		return a.Path2 < b.Path2
	})

	for _, task := range p.results {
		result := models.PairResult{
			Pair:       task.Pair,
			Difference: task.Difference,
			Duration:   task.Duration,
		}

		switch {
		case task.Err != nil:
			result.Error = task.Err.Error()
			report.Stats.PairsErrored++
			report.Errors = append(report.Errors, models.CompareError{
				Pair:      task.Pair,
				Error:     task.Err.Error(),
				Timestamp: time.Now(),
			})

		case task.Difference != nil:
			report.Stats.PairsDiffering++
			report.Stats.LinesOnlyInFirst += len(task.Difference.OnlyInFirst)
			report.Stats.LinesOnlyInSecond += len(task.Difference.OnlyInSecond)

		default:
			report.Stats.PairsIdentical++
		}

		report.Results = append(report.Results, result)
	}
}
