package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/theoremus-urban-solutions/flight-normalizer/config"
	"github.com/theoremus-urban-solutions/flight-normalizer/converter"
	"github.com/theoremus-urban-solutions/flight-normalizer/formatter"
	"github.com/theoremus-urban-solutions/flight-normalizer/internal"
	"github.com/theoremus-urban-solutions/flight-normalizer/reference"
	"github.com/theoremus-urban-solutions/flight-normalizer/server"
	"github.com/theoremus-urban-solutions/flight-normalizer/upstream"
)

func main() {
	mode := flag.String("mode", "oneshot", "oneshot|serve")
	configPath := flag.String("config", "", "path to config.yml (default: search config.yml, ./config/config.yml)")
	input := flag.String("input", "", "upstream payload file path or URL (oneshot)")
	searchType := flag.String("searchType", "", "direct|route (overrides detection)")
	airline := flag.String("airline", "", "filter by airline code or name")
	airport := flag.String("airport", "", "filter by airport touched")
	maxStops := flag.Int("maxStops", -1, "maximum stops, -1 for any")
	maxRisk := flag.String("maxRisk", "", "low|medium|high")
	cards := flag.Bool("cards", false, "print display cards instead of flights")
	flag.Parse()

	cfg, err := config.LoadAppConfig(*configPath)
	if errors.Is(err, config.ErrNoConfigFile) && *configPath == "" {
		cfg = config.Default()
	} else if err != nil {
		internal.InitLogging(config.DefaultLogLevel)
		log.Fatalf("config: %v", err)
	}
	internal.InitLogging(cfg.Logging.Level)

	ref, err := reference.NewIndexFromFile(cfg.Reference.DataPath,
		reference.WithSubstringMinLength(cfg.Converter.SubstringMinLength))
	if err != nil {
		log.Fatalf("reference data: %v", err)
	}

	var tracer converter.Tracer = converter.NopTracer{}
	if cfg.Converter.TraceDecisions {
		tracer = converter.SlogTracer{}
	}
	client := upstream.NewClient(
		time.Duration(cfg.Upstream.TimeoutMS)*time.Millisecond,
		cfg.Upstream.DirectSearchURL,
		cfg.Upstream.RouteSearchURL,
	)

	switch *mode {
	case "oneshot":
		hint, ok := upstream.ParseSearchType(*searchType)
		if *searchType != "" && !ok {
			log.Fatalf("unsupported searchType %q", *searchType)
		}
		filter := formatter.Filter{Airline: *airline, Airport: *airport, MaxStops: *maxStops, MaxRisk: *maxRisk}
		out, err := oneshot(context.Background(), client, ref, tracer, cfg.Converter.Workers, *input, hint, filter, *cards)
		if err != nil {
			log.Fatalf("oneshot: %v", err)
		}
		fmt.Println(string(out))
	case "serve":
		s := server.New(cfg, ref, client, tracer)
		s.Start()
		s.HandleGracefulShutdown()
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *mode)
		os.Exit(2)
	}
}

func oneshot(ctx context.Context, client *upstream.Client, ref converter.Resolver, tracer converter.Tracer,
	workers int, input string, hint upstream.SearchType, filter formatter.Filter, cards bool) ([]byte, error) {
	body, err := client.Fetch(ctx, input)
	if err != nil {
		return nil, err
	}
	resp, err := upstream.DecodeResponse(body, hint)
	if err != nil {
		return nil, err
	}

	warnings := converter.NewWarningAggregator()
	conv := converter.NewConverter(ref, converter.Options{
		Workers: workers,
		Tracer:  converter.MultiTracer{tracer, warnings},
	})
	res, err := conv.ConvertResponse(ctx, resp)
	if err != nil {
		return nil, err
	}
	warnings.LogAll(input)
	for _, d := range res.Dropped {
		log.Printf("dropped %v", d)
	}

	res.Flights = formatter.FilterFlights(res.Flights, filter)
	if cards {
		summaries := make([]formatter.Card, 0, len(res.Flights))
		for _, f := range res.Flights {
			summaries = append(summaries, formatter.Summarize(f))
		}
		return formatter.EncodeJSON(summaries)
	}
	return formatter.NewPrettyResponseBuilder().BuildJSON(formatter.WrapFlights(res, string(resp.SearchType), time.Now()))
}
