package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"

	"marketdata-service/internal/application"
	"marketdata-service/internal/domain"
	"marketdata-service/internal/infrastructure/metrics"
)

// Server dispatches market snapshot requests to the per-market services.
// Every snapshot response is HTTP 200; degradation is reported through the
// envelope's source label, not through status codes.
type Server struct {
	services map[domain.Market]*application.MarketService
}

func NewServer(services ...*application.MarketService) *Server {
	m := make(map[domain.Market]*application.MarketService, len(services))
	for _, svc := range services {
		m[svc.Profile().Market] = svc
	}
	return &Server{services: m}
}

func (s *Server) handleMarket(market domain.Market) http.HandlerFunc {
	svc := s.services[market]
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		in := application.ResolveInput{Query: strings.TrimSpace(q.Get("search"))}
		if raw := q.Get("symbols"); raw != "" && in.Query == "" {
			in.Symbols = strings.Split(raw, ",")
		}

		env := svc.Snapshot(r.Context(), in)
		metrics.RecordSnapshotResponse(string(market), env.Source)
		writeJSON(w, http.StatusOK, env)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
