package batch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rayslava/camt053/internal/common"
	"github.com/rayslava/camt053/internal/fileutils"
	"github.com/rayslava/camt053/internal/logging"
	"github.com/rayslava/camt053/internal/models"

	"golang.org/x/sync/errgroup"
)

// Options configures a Processor.
type Options struct {
	// Workers bounds the number of files decoded at the same time.
	Workers int
	// Pattern selects input files, e.g. "*.xml".
	Pattern string
	// FailFast stops at the first file that cannot be converted.
	FailFast bool
	// Consolidate writes one CSV per account instead of one per input file.
	Consolidate bool
	CSV         common.CSVOptions
}

// FileResult is the outcome for one input file.
type FileResult struct {
	Input   string
	Output  string
	Entries int
	Err     error
}

// Result is the outcome of a batch run.
type Result struct {
	Files        []FileResult
	Consolidated []string
	Duration     time.Duration
}

// Succeeded returns the number of files converted without error.
func (r *Result) Succeeded() int {
	n := 0
	for _, f := range r.Files {
		if f.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the number of files that could not be converted.
func (r *Result) Failed() int {
	return len(r.Files) - r.Succeeded()
}

// Err joins the errors of all failed files.
func (r *Result) Err() error {
	var errs []error
	for _, f := range r.Files {
		if f.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", filepath.Base(f.Input), f.Err))
		}
	}
	return errors.Join(errs...)
}

// Processor converts a directory of statements to CSV.
type Processor struct {
	logger     logging.Logger
	aggregator *BatchAggregator
	opts       Options
}

// NewProcessor creates a Processor. Workers below one are raised to one.
func NewProcessor(logger logging.Logger, opts Options) *Processor {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.Pattern == "" {
		opts.Pattern = "*.xml"
	}
	if opts.CSV.Delimiter == 0 {
		opts.CSV = common.DefaultCSVOptions()
	}
	return &Processor{
		logger:     logger,
		aggregator: NewBatchAggregator(logger),
		opts:       opts,
	}
}

// Process converts every matching file of inputDir into outputDir.
// Files that fail are recorded in the result; with FailFast the first
// failure cancels the remaining work and is returned.
func (p *Processor) Process(ctx context.Context, inputDir, outputDir string) (*Result, error) {
	start := time.Now()
	result := &Result{}

	files, err := fileutils.ListStatementFiles(inputDir, p.opts.Pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list input files: %w", err)
	}
	if len(files) == 0 {
		p.logger.Warn("No statement files found in input directory",
			logging.F(logging.FieldDirectory, inputDir))
		return result, nil
	}
	if err := fileutils.EnsureDirectoryExists(outputDir); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	p.logger.Info("Found files for processing",
		logging.F(logging.FieldDirectory, inputDir),
		logging.F("count", len(files)),
		logging.F(logging.FieldWorkers, p.opts.Workers))

	result.Files = make([]FileResult, len(files))
	docs := make([]*models.Document, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Workers)
	for i, file := range files {
		g.Go(func() error {
			fr := FileResult{Input: file}
			defer func() { result.Files[i] = fr }()

			if err := gctx.Err(); err != nil {
				fr.Err = err
				return nil
			}

			doc, err := p.convert(file, outputDir, &fr)
			if err != nil {
				fr.Err = err
				p.logger.WithError(err).Error("Failed to convert statement file",
					logging.F(logging.FieldInputFile, file))
				if p.opts.FailFast {
					return fmt.Errorf("%s: %w", filepath.Base(file), err)
				}
				return nil
			}
			docs[i] = doc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		result.Duration = time.Since(start)
		return result, err
	}
	if err := ctx.Err(); err != nil {
		result.Duration = time.Since(start)
		return result, err
	}

	if p.opts.Consolidate {
		if err := p.consolidate(files, docs, outputDir, result); err != nil {
			result.Duration = time.Since(start)
			return result, err
		}
	}

	result.Duration = time.Since(start)
	p.logger.Info("Batch processing completed",
		logging.F("succeeded", result.Succeeded()),
		logging.F("failed", result.Failed()),
		logging.F(logging.FieldDuration, result.Duration.String()))
	return result, nil
}

// convert decodes file and, unless consolidating, writes its CSV next to
// the other outputs.
func (p *Processor) convert(file, outputDir string, fr *FileResult) (*models.Document, error) {
	doc, err := fileutils.ReadStatementFile(file)
	if err != nil {
		return nil, err
	}
	for _, stmt := range doc.Statement.Statements {
		fr.Entries += len(stmt.Entries)
	}
	if p.opts.Consolidate {
		return doc, nil
	}

	out := filepath.Join(outputDir, fileutils.ReplaceExtension(filepath.Base(file), ".csv"))
	if err := common.WriteEntriesCSVFile(out, doc, p.opts.CSV, p.logger); err != nil {
		return nil, err
	}
	fr.Output = out
	return doc, nil
}

func (p *Processor) consolidate(files []string, docs []*models.Document, outputDir string, result *Result) error {
	var sources []SourceDocument
	for i, doc := range docs {
		if doc != nil {
			sources = append(sources, SourceDocument{Path: files[i], Document: doc})
		}
	}

	for _, group := range p.aggregator.GroupByAccount(sources) {
		out := filepath.Join(outputDir, p.aggregator.GenerateOutputFilename(group.AccountID, group.DateRange))
		if err := common.WriteEntriesCSVFile(out, group.Document(), p.opts.CSV, p.logger); err != nil {
			return fmt.Errorf("failed to write consolidated file for account %s: %w", group.AccountID, err)
		}
		result.Consolidated = append(result.Consolidated, out)
		for i := range result.Files {
			if docs[i] != nil && containsString(group.Sources, filepath.Base(result.Files[i].Input)) {
				result.Files[i].Output = out
			}
		}
	}
	return nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
