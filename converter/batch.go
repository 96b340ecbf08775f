package converter

import (
	"context"
	"encoding/json"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/theoremus-urban-solutions/flight-normalizer/flight"
	"github.com/theoremus-urban-solutions/flight-normalizer/upstream"
)

// BatchResult holds the flights that converted, in input order, and the records that
// were dropped.
type BatchResult struct {
	Flights []flight.Flight
	Dropped []*ConversionError
}

// ConvertAll converts records concurrently, bounded by Options.Workers. A failing record
// never fails the batch; the only error returned is ctx's.
func (c *Converter) ConvertAll(ctx context.Context, records []json.RawMessage, hint upstream.SearchType) (BatchResult, error) {
	converted := make([]*flight.Flight, len(records))
	failed := make([]*ConversionError, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, raw := range records {
		if gctx.Err() != nil {
			break
		}
		i, raw := i, raw
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f, err := c.Convert(raw, i, hint)
			if err != nil {
				var ce *ConversionError
				if !errors.As(err, &ce) {
					ce = &ConversionError{Index: i, Stage: StageAssemble, Err: err}
				}
				failed[i] = ce
				return nil
			}
			converted[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return BatchResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return BatchResult{}, err
	}

	res := BatchResult{Flights: make([]flight.Flight, 0, len(records))}
	for i := range records {
		switch {
		case converted[i] != nil:
			res.Flights = append(res.Flights, *converted[i])
		case failed[i] != nil:
			res.Dropped = append(res.Dropped, failed[i])
		}
	}
	return res, nil
}

// ConvertResponse converts every record of a decoded upstream response.
func (c *Converter) ConvertResponse(ctx context.Context, resp upstream.Response) (BatchResult, error) {
	return c.ConvertAll(ctx, resp.Records, resp.SearchType)
}
