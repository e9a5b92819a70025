package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/patview"
	"golang.org/x/sync/errgroup"
)

// importResult is the outcome of extracting one path.
type importResult struct {
	path string
	*extraction
	err error
}

// Run executes the import command. Publications are extracted concurrently
// and archived in argument order.
func (c *ImportCmd) Run(deps *Dependencies) error {
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	results := make([]importResult, len(c.Paths))
	g, gctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(concurrency)
	for i, path := range c.Paths {
		g.Go(func() error {
			results[i].path = path
			if err := gctx.Err(); err != nil {
				results[i].err = err
				return nil
			}
			results[i].extraction, results[i].err = extractBundle(deps, path)
			return nil
		})
	}
	_ = g.Wait()

	var imported, skipped, failed int
	for _, res := range results {
		if res.err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", res.path, patview.ErrorMessage(res.err))
			continue
		}

		rec := &patview.Record{SourcePath: res.bundle.XMLPath, Patent: res.patent, Source: res.xml}
		err := deps.Records.CreateRecord(deps.Ctx, rec)
		switch {
		case patview.ErrorCode(err) == patview.ECONFLICT:
			skipped++
			fmt.Fprintf(deps.Stdout, "Skipped %s: %s\n", res.path, patview.ErrorMessage(err))
		case err != nil:
			failed++
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", res.path, patview.ErrorMessage(err))
		default:
			imported++
			fmt.Fprintf(deps.Stdout, "Imported %s  %s  %s\n", rec.ID, rec.Patent.PublicationNumber, rec.Patent.InventionTitle)
		}
	}

	fmt.Fprintf(deps.Stdout, "%d imported, %d skipped, %d failed\n", imported, skipped, failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d imports failed", failed, len(c.Paths))
	}
	return nil
}

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := patview.RecordFilter{Limit: c.Limit}
	if c.Publication != "" {
		filter.PublicationNumber = &c.Publication
	}

	recs, err := deps.Records.FindRecords(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", patview.ErrorMessage(err))
		return err
	}

	if len(recs) == 0 {
		fmt.Fprintln(deps.Stdout, "No publications found. Use 'patview import' to add one.")
		return nil
	}

	for _, rec := range recs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", rec.ID, rec.Patent.PublicationNumber, rec.Patent.InventionTitle)
	}
	return nil
}

// Run executes the get command.
func (c *GetCmd) Run(deps *Dependencies) error {
	rec, err := deps.Records.FindRecordByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", patview.ErrorMessage(err))
		return err
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return patview.Errorf(patview.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Records.DeleteRecord(deps.Ctx, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", patview.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted record %s\n", c.ID)
	return nil
}
