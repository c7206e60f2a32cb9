// Package labeler streams delimited rows through a relay classifier,
// emitting one labeled output row per input row.
//
// Rows are processed in fixed-size batches by a bounded worker pool sharing
// a single frozen classifier; output preserves input order. The classifier
// index must be fully built before Run is called — workers never mutate it.
package labeler

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/valyala/fasttemplate"
	"golang.org/x/sync/errgroup"

	"github.com/relaymark/relaymark/internal/config"
	"github.com/relaymark/relaymark/internal/errors"
	"github.com/relaymark/relaymark/internal/relay"
)

const batchSize = 1024

// RowLabeler applies a relay classifier to delimited input rows.
type RowLabeler struct {
	classifier *relay.Classifier
	workers    int
	column     int
	delimiter  string
	template   *fasttemplate.Template
}

// New creates a RowLabeler from classify configuration. The template must
// have been validated (config.ValidateRowTemplate) beforehand; New re-checks
// syntax only.
func New(classifier *relay.Classifier, cfg *config.ClassifyConfig) (*RowLabeler, error) {
	if cfg.Workers < 1 {
		return nil, errors.NewClassifyError(fmt.Sprintf("invalid worker count: %d", cfg.Workers), nil)
	}

	template, err := fasttemplate.NewTemplate(cfg.Template, "{{", "}}")
	if err != nil {
		return nil, errors.NewClassifyError("invalid output template", err)
	}

	return &RowLabeler{
		classifier: classifier,
		workers:    cfg.Workers,
		column:     cfg.Column,
		delimiter:  cfg.Delimiter,
		template:   template,
	}, nil
}

type rowBatch struct {
	index   int
	rows    []string
	labeled []string
}

// Run streams rows from input to output. It returns the number of rows that
// classified as relay, the total row count, and the first error encountered.
func (l *RowLabeler) Run(input io.Reader, output io.Writer) (relayRows, totalRows int, err error) {
	g, ctx := errgroup.WithContext(context.Background())

	jobs := make(chan rowBatch, l.workers)
	results := make(chan rowBatch, l.workers)

	// Reader: batch input rows.
	g.Go(func() error {
		defer close(jobs)

		index := 0
		batch := make([]string, 0, batchSize)
		scanner := bufio.NewScanner(input)
		for scanner.Scan() {
			batch = append(batch, scanner.Text())
			if len(batch) == batchSize {
				if err := sendBatch(ctx, jobs, rowBatch{index: index, rows: batch}); err != nil {
					return err
				}
				index++
				batch = make([]string, 0, batchSize)
			}
		}
		if len(batch) > 0 {
			if err := sendBatch(ctx, jobs, rowBatch{index: index, rows: batch}); err != nil {
				return err
			}
		}
		return scanner.Err()
	})

	// Workers: classify and render each batch.
	var workers errgroup.Group
	relayCounts := make(chan int, l.workers)
	for w := 0; w < l.workers; w++ {
		workers.Go(func() error {
			count := 0
			for batch := range jobs {
				batch.labeled = make([]string, len(batch.rows))
				for i, row := range batch.rows {
					labeled, isRelay := l.labelRow(row)
					batch.labeled[i] = labeled
					if isRelay {
						count++
					}
				}
				if err := sendBatch(ctx, results, batch); err != nil {
					return err
				}
			}
			relayCounts <- count
			return nil
		})
	}
	g.Go(func() error {
		defer close(results)
		defer close(relayCounts)
		return workers.Wait()
	})

	// Writer: restore input order.
	g.Go(func() error {
		w := bufio.NewWriter(output)
		pending := make(map[int]rowBatch)
		next := 0

		for batch := range results {
			pending[batch.index] = batch
			for {
				ready, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				next++

				totalRows += len(ready.labeled)
				for _, line := range ready.labeled {
					if _, err := w.WriteString(line); err != nil {
						return err
					}
					if err := w.WriteByte('\n'); err != nil {
						return err
					}
				}
			}
		}
		return w.Flush()
	})

	if err := g.Wait(); err != nil {
		return 0, 0, errors.NewClassifyError("classification pipeline failed", err)
	}

	for count := range relayCounts {
		relayRows += count
	}

	return relayRows, totalRows, nil
}

// labelRow extracts the IP column, classifies it and renders the output row.
func (l *RowLabeler) labelRow(row string) (string, bool) {
	ip := row
	if l.column > 0 || strings.Contains(row, l.delimiter) {
		fields := strings.Split(row, l.delimiter)
		if l.column < len(fields) {
			ip = fields[l.column]
		} else {
			// Missing column: classified like any other non-IP input.
			ip = ""
		}
	}

	isRelay := l.classifier.IsRelay(ip)

	return l.template.ExecuteString(map[string]interface{}{
		config.TMPL_ROW:   row,
		config.TMPL_IP:    ip,
		config.TMPL_RELAY: strconv.FormatBool(isRelay),
	}), isRelay
}

func sendBatch(ctx context.Context, ch chan<- rowBatch, batch rowBatch) error {
	select {
	case ch <- batch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
