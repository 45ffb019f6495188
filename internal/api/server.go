package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/exp/slog"

	"github.com/atharv3903/ambroute/internal/algo"
	"github.com/atharv3903/ambroute/internal/cache"
	"github.com/atharv3903/ambroute/internal/db"
	"github.com/atharv3903/ambroute/internal/graph"
	"github.com/atharv3903/ambroute/internal/model"
	"github.com/atharv3903/ambroute/internal/scenario"
)

// Source provides scenarios by name. db.Store and scenario.Registry both
// satisfy it.
type Source interface {
	ListScenarios(ctx context.Context) ([]string, error)
	LoadScenario(ctx context.Context, name string) (scenario.Scenario, error)
}

// RoadUpdater is implemented by sources whose road data can change.
type RoadUpdater interface {
	UpdateRoad(ctx context.Context, u db.RoadUpdate) (string, error)
}

type Server struct {
	Router *mux.Router
	Source Source
	Graphs *cache.GraphCache
	RC     *cache.RouteCache
	Log    *slog.Logger
}

func New(src Source, log *slog.Logger, graphCapacity int) *Server {
	s := &Server{
		Router: mux.NewRouter(),
		Source: src,
		Graphs: cache.NewGraphCacheWithCap(graphCapacity),
		RC:     cache.NewRouteCache(),
		Log:    log,
	}
	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.Router.Use(s.logRequests)

	s.Router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	s.Router.HandleFunc("/scenarios", s.handleScenarios).Methods(http.MethodGet)
	sc := s.Router.PathPrefix("/scenarios/{name}").Subrouter()
	sc.HandleFunc("/places", s.handlePlaces).Methods(http.MethodGet)
	sc.HandleFunc("/nearest", s.handleNearest).Methods(http.MethodGet)
	sc.HandleFunc("/route", s.handleRoute).Methods(http.MethodGet)
	sc.HandleFunc("/dispatch", s.handleDispatch).Methods(http.MethodGet)

	s.Router.HandleFunc("/road/update", s.handleUpdate).Methods(http.MethodPost)

	s.Router.HandleFunc("/debug/clear_cache", func(w http.ResponseWriter, r *http.Request) {
		s.Graphs.Clear()
		s.RC.BumpEpoch()
		w.Write([]byte("cleared"))
	}).Methods(http.MethodGet, http.MethodPost)

	s.Router.HandleFunc("/debug/cache_stats", func(w http.ResponseWriter, r *http.Request) {
		st := s.Graphs.Stats()
		writeJSON(w, http.StatusOK, model.CacheStats{
			Graphs:    s.Graphs.Len(),
			Gets:      st.Gets,
			Hits:      st.Hits,
			Puts:      st.Puts,
			Evictions: st.Evictions,
			Routes:    s.RC.Len(),
			RouteHits: s.RC.Hits(),
			Epoch:     s.RC.Epoch(),
		})
	}).Methods(http.MethodGet)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.Log.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"took", time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// graph returns the built graph of a scenario, loading and caching it on
// first use. A graph whose load raced with a road update is returned to the
// caller but not cached.
func (s *Server) graph(ctx context.Context, name string) (cache.Entry, error) {
	if e, ok := s.Graphs.Get(name); ok {
		return e, nil
	}

	gen := s.Graphs.Generation()
	sc, err := s.Source.LoadScenario(ctx, name)
	if err != nil {
		return cache.Entry{}, err
	}
	g, err := sc.Build()
	if err != nil {
		return cache.Entry{}, err
	}

	e := cache.Entry{Scenario: sc, Graph: g}
	if !s.Graphs.PutIfCurrent(name, e, gen) {
		s.Log.Debug("scenario changed while loading", "scenario", name)
		return e, nil
	}
	s.Log.Info("scenario loaded", "scenario", name, "places", g.Len(), "roads", len(sc.Roads))
	return e, nil
}

func (s *Server) handleScenarios(w http.ResponseWriter, r *http.Request) {
	names, err := s.Source.ListScenarios(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"scenarios": names})
}

func (s *Server) handlePlaces(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	e, err := s.graph(r.Context(), name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.PlacesResponse{Scenario: name, Places: e.Scenario.Places})
}

func (s *Server) handleNearest(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	q := r.URL.Query()

	origin := q.Get("origin")
	if origin == "" {
		s.writeError(w, badRequest("origin is required"))
		return
	}

	// read before the graph so answers from a graph that predates a road
	// update are keyed under the old epoch
	epoch := s.RC.Epoch()
	e, err := s.graph(r.Context(), name)
	if err != nil {
		s.writeError(w, err)
		return
	}

	candidates := q["candidate"]
	target := url.Values{"candidate": candidates}.Encode()
	if len(candidates) == 0 {
		kind := scenario.Kind(q.Get("kind"))
		if kind == "" {
			kind = scenario.Hospital
		}
		if !kind.Valid() {
			s.writeError(w, badRequest("unknown kind "+string(kind)))
			return
		}
		candidates = e.Scenario.Facilities(kind)
		target = url.Values{"kind": {string(kind)}}.Encode()
	}

	key := cache.RouteKey{Scenario: name, Op: "nearest", From: origin, To: target, Epoch: epoch}
	if v, ok := s.RC.Get(key); ok {
		resp := v.(model.NearestResponse)
		resp.CacheHit = true
		writeJSON(w, http.StatusOK, resp)
		return
	}

	res, err := algo.Nearest(r.Context(), e.Graph, origin, candidates)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := model.NearestResponse{
		Scenario:      name,
		Origin:        origin,
		Facility:      res.Candidate,
		Minutes:       res.Distance,
		Path:          res.Path,
		ExploredNodes: res.Explored,
	}
	s.RC.Put(key, resp)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	q := r.URL.Query()

	src, dst := q.Get("src"), q.Get("dst")
	if src == "" || dst == "" {
		s.writeError(w, badRequest("src and dst are required"))
		return
	}

	key := cache.RouteKey{Scenario: name, Op: "route", From: src, To: dst, Epoch: s.RC.Epoch()}
	if v, ok := s.RC.Get(key); ok {
		resp := v.(model.RouteResponse)
		resp.CacheHit = true
		writeJSON(w, http.StatusOK, resp)
		return
	}

	e, err := s.graph(r.Context(), name)
	if err != nil {
		s.writeError(w, err)
		return
	}

	tree, err := algo.ShortestPathsFrom(r.Context(), e.Graph, src)
	if err != nil {
		s.writeError(w, err)
		return
	}
	path, err := tree.PathTo(dst)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := model.RouteResponse{
		Scenario:      name,
		Path:          path,
		Total:         tree.Dist[dst],
		ExploredNodes: tree.Explored,
	}
	s.RC.Put(key, resp)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDispatch(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	q := r.URL.Query()

	base, incident := q.Get("base"), q.Get("incident")
	if base == "" || incident == "" {
		s.writeError(w, badRequest("base and incident are required"))
		return
	}

	key := cache.RouteKey{Scenario: name, Op: "dispatch", From: base, To: incident, Epoch: s.RC.Epoch()}
	if v, ok := s.RC.Get(key); ok {
		resp := v.(model.DispatchResponse)
		resp.CacheHit = true
		writeJSON(w, http.StatusOK, resp)
		return
	}

	e, err := s.graph(r.Context(), name)
	if err != nil {
		s.writeError(w, err)
		return
	}

	trip, err := algo.RoundTrip(r.Context(), e.Graph, base, incident)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := model.DispatchResponse{
		Scenario: name,
		Base:     base,
		Incident: incident,
		Out:      model.Leg{Path: trip.Out.Path, Minutes: trip.Out.Cost},
		Back:     model.Leg{Path: trip.Back.Path, Minutes: trip.Back.Cost},
		Total:    trip.Total,
		Path:     trip.Path,
	}
	s.RC.Put(key, resp)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	up, ok := s.Source.(RoadUpdater)
	if !ok {
		writeJSON(w, http.StatusNotImplemented, model.ErrorResponse{Error: "road updates need a database source"})
		return
	}

	var req model.RoadUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, badRequest(err.Error()))
		return
	}
	if req.Minutes == nil && req.Closed == nil {
		s.writeError(w, badRequest("nothing to update"))
		return
	}

	name, err := up.UpdateRoad(r.Context(), db.RoadUpdate{RoadID: req.RoadID, Minutes: req.Minutes, Closed: req.Closed})
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.Graphs.Invalidate(name)
	s.RC.BumpEpoch()
	s.Log.Info("road updated", "scenario", name, "road", req.RoadID)

	writeJSON(w, http.StatusOK, model.RoadUpdateResponse{OK: true, Scenario: name})
}

type badRequest string

func (e badRequest) Error() string { return string(e) }

func statusFor(err error) int {
	var br badRequest
	switch {
	case errors.As(err, &br),
		errors.Is(err, graph.ErrUnknownNode),
		errors.Is(err, graph.ErrInvalidWeight),
		errors.Is(err, algo.ErrSameEndpoints):
		return http.StatusBadRequest
	case errors.Is(err, scenario.ErrNotFound),
		errors.Is(err, db.ErrRoadNotFound):
		return http.StatusNotFound
	case errors.Is(err, algo.ErrNoReachableCandidate),
		errors.Is(err, algo.ErrUnreachable),
		errors.Is(err, scenario.ErrInvalidScenario):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.Log.Error("request failed", "err", err)
	}
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
