package converter_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/theoremus-urban-solutions/flight-normalizer/converter"
	"github.com/theoremus-urban-solutions/flight-normalizer/reference"
)

func TestConvertAll_PreservesOrderAndDropsBadRecords(t *testing.T) {
	agg := converter.NewWarningAggregator()
	c := converter.NewConverter(reference.Default(), converter.Options{Workers: 3, Tracer: agg})

	var records []json.RawMessage
	for i := 0; i < 20; i++ {
		if i == 7 {
			records = append(records, json.RawMessage(`{"origin":"LAX","layovers":{"airport":"DEN"}}`))
			continue
		}
		records = append(records, json.RawMessage(fmt.Sprintf(`{"id":"f%02d","origin":"LAX","destination":"JFK","total_duration":%d}`, i, 300+i)))
	}

	res, err := c.ConvertAll(context.Background(), records, "")
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if len(res.Flights) != len(records)-1 {
		t.Fatalf("expected %d flights, got %d", len(records)-1, len(res.Flights))
	}
	if len(res.Dropped) != 1 || res.Dropped[0].Index != 7 || res.Dropped[0].Stage != converter.StageDecode {
		t.Fatalf("expected record 7 dropped at decode, got %+v", res.Dropped)
	}

	want := 0
	for _, f := range res.Flights {
		if want == 7 {
			want++
		}
		if f.ID != fmt.Sprintf("f%02d", want) {
			t.Fatalf("order lost: expected f%02d, got %s", want, f.ID)
		}
		want++
	}
	if agg.Count(converter.EventRecordDropped) != 1 {
		t.Errorf("expected one dropped warning, got %d", agg.Count(converter.EventRecordDropped))
	}
}

func TestConvertAll_Cancelled(t *testing.T) {
	c := converter.NewConverter(nil, converter.Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records := []json.RawMessage{json.RawMessage(`{"origin":"LAX","destination":"JFK"}`)}
	if _, err := c.ConvertAll(ctx, records, ""); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestConvertAll_Empty(t *testing.T) {
	c := converter.NewConverter(nil, converter.Options{})
	res, err := c.ConvertAll(context.Background(), nil, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Flights) != 0 || len(res.Dropped) != 0 {
		t.Errorf("expected empty result, got %+v", res)
	}
}
