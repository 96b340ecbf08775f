package server

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/theoremus-urban-solutions/flight-normalizer/cache"
	"github.com/theoremus-urban-solutions/flight-normalizer/converter"
	"github.com/theoremus-urban-solutions/flight-normalizer/formatter"
	"github.com/theoremus-urban-solutions/flight-normalizer/upstream"
)

type healthResponse struct {
	Status          string `json:"status"`
	StartedAt       string `json:"started_at"`
	CachedResponses int    `json:"cached_responses"`
	SearchEnabled   bool   `json:"search_enabled"`
}

type cardsResponse struct {
	ResponseTimestamp string                    `json:"responseTimestamp"`
	SearchType        string                    `json:"searchType,omitempty"`
	Count             int                       `json:"count"`
	Cards             []formatter.Card          `json:"cards"`
	Dropped           []formatter.DroppedRecord `json:"dropped,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:          "ok",
		StartedAt:       s.started.UTC().Format(time.RFC3339),
		CachedResponses: s.cache.Len(),
		SearchEnabled:   s.client != nil && (s.client.DirectSearchURL != "" || s.client.RouteSearchURL != ""),
	})
}

func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Use POST with an upstream search payload.")
		return
	}
	q, err := parseFlightQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxRequestBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Payload too large.")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := cache.Key(body, append([]string{"normalize"}, q.cacheParts()...)...)
	if buf, ok := s.cache.Get(key); ok {
		w.Header().Set("X-Cache", "HIT")
		writeBytes(w, http.StatusOK, buf)
		return
	}

	resp, err := upstream.DecodeResponse(body, q.hint)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respond(r.Context(), w, key, resp, q, "normalize")
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Use GET.")
		return
	}
	if s.client == nil {
		writeError(w, http.StatusServiceUnavailable, upstream.ErrNoEndpoint.Error())
		return
	}
	q, err := parseFlightQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	kind := q.hint
	if kind == "" {
		kind = upstream.SearchDirect
	}

	resp, err := s.client.Search(r.Context(), kind, upstreamParams(r.URL.Query()))
	switch {
	case errors.Is(err, upstream.ErrNoEndpoint):
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	s.respond(r.Context(), w, "", resp, q, "search")
}

// respond converts, filters and serializes; a non-empty key stores the result.
func (s *Server) respond(ctx context.Context, w http.ResponseWriter, key string, resp upstream.Response, q flightQuery, source string) {
	warnings := converter.NewWarningAggregator()
	conv := converter.NewConverter(s.ref, converter.Options{
		Workers: s.cfg.Converter.Workers,
		Tracer:  converter.MultiTracer{s.tracer, warnings},
	})

	res, err := conv.ConvertResponse(ctx, resp)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	warnings.LogAll(source)
	if len(res.Dropped) > 0 {
		log.Printf("%s: dropped %d of %d records", source, len(res.Dropped), len(resp.Records))
	}

	res.Flights = formatter.FilterFlights(res.Flights, q.filter)
	wrapped := formatter.WrapFlights(res, string(resp.SearchType), s.now())

	var payload any = wrapped
	if q.view == viewCards {
		cards := make([]formatter.Card, 0, len(wrapped.Flights))
		for _, f := range wrapped.Flights {
			cards = append(cards, formatter.Summarize(f))
		}
		payload = cardsResponse{
			ResponseTimestamp: wrapped.ResponseTimestamp,
			SearchType:        wrapped.SearchType,
			Count:             len(cards),
			Cards:             cards,
			Dropped:           wrapped.Dropped,
		}
	}

	buf, err := formatter.EncodeJSON(payload)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if key != "" {
		s.cache.Set(key, buf)
		w.Header().Set("X-Cache", "MISS")
	}
	writeBytes(w, http.StatusOK, buf)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	buf, err := formatter.EncodeJSON(v)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeBytes(w, status, buf)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeBytes(w, status, buildErrorPayload(status, msg))
}

func writeBytes(w http.ResponseWriter, status int, buf []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf)
}
