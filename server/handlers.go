package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/inference-sim/schedsim/sim"
	"github.com/inference-sim/schedsim/sim/trace"
	"github.com/inference-sim/schedsim/sim/workload"
)

// maxBodyBytes bounds a simulation request body.
const maxBodyBytes = 1 << 20

type healthResponse struct {
	Status      string `json:"status"`
	GoVersion   string `json:"go_version"`
	Uptime      string `json:"uptime"`
	Simulations int    `json:"simulations"`
}

type algorithmInfo struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// createSimulationRequest is a workload document plus run options.
type createSimulationRequest struct {
	workload.WorkloadSpec
	Trace string `json:"trace,omitempty"` // "none" (default) or "decisions"
}

type simulationSummary struct {
	ID        string        `json:"id"`
	Algorithm sim.Algorithm `json:"algorithm"`
	Label     string        `json:"label"`
	Quantum   int           `json:"quantum,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	Steps     int           `json:"steps"`
}

type simulationResponse struct {
	*Simulation
	Steps   []sim.Step          `json:"steps"`
	Metrics *sim.Metrics        `json:"metrics"`
	Trace   *trace.TraceSummary `json:"trace,omitempty"`
}

type stepResponse struct {
	Index int      `json:"index"`
	Total int      `json:"total"`
	Step  sim.Step `json:"step"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	reqID := requestIDFrom(r.Context())
	respondOK(w, reqID, healthResponse{
		Status:      "healthy",
		GoVersion:   runtime.Version(),
		Uptime:      time.Since(s.startTime).Round(time.Second).String(),
		Simulations: len(s.store.List()),
	})
}

func (s *Server) handleListAlgorithms(w http.ResponseWriter, r *http.Request) {
	reqID := requestIDFrom(r.Context())
	names := sim.AlgorithmNames()
	out := make([]algorithmInfo, len(names))
	for i, n := range names {
		out[i] = algorithmInfo{Name: n, Label: sim.Algorithm(n).Label()}
	}
	respondOK(w, reqID, out)
}

func (s *Server) handleCreateSimulation(w http.ResponseWriter, r *http.Request) {
	reqID := requestIDFrom(r.Context())

	var req createSimulationRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		respondError(w, reqID, http.StatusBadRequest, codeValidation, "invalid JSON: "+err.Error())
		return
	}

	sm, err := s.runSimulation(req)
	if err != nil {
		status, code := http.StatusBadRequest, codeValidation
		if errors.Is(err, sim.ErrEmptyResult) {
			status, code = http.StatusInternalServerError, codeInternal
		}
		respondError(w, reqID, status, code, err.Error())
		return
	}
	s.store.Put(sm)
	s.logger.WithField("simulation_id", sm.ID).Infof("created %s simulation with %d steps", sm.Algorithm, sm.Log.Len())
	respondCreated(w, reqID, newSimulationResponse(sm))
}

func (s *Server) runSimulation(req createSimulationRequest) (*Simulation, error) {
	if req.Algorithm == "" {
		return nil, fmt.Errorf("algorithm is required: %w", sim.ErrInvalidInput)
	}
	alg, err := sim.ParseAlgorithm(req.Algorithm)
	if err != nil {
		return nil, err
	}
	level := trace.TraceLevelNone
	if req.Trace != "" {
		if !trace.IsValidTraceLevel(req.Trace) {
			return nil, fmt.Errorf("unknown trace level %q: %w", req.Trace, sim.ErrInvalidInput)
		}
		level = trace.TraceLevel(req.Trace)
	}
	procs, err := req.BuildProcesses()
	if err != nil {
		return nil, err
	}
	if err := checkBudget(procs); err != nil {
		return nil, err
	}

	var tr *trace.SimulationTrace
	if level == trace.TraceLevelDecisions {
		tr = trace.NewSimulationTrace(trace.TraceConfig{Level: level})
	}
	log, err := sim.Simulate(alg, procs, sim.Config{Quantum: req.Quantum, Trace: tr})
	if err != nil {
		return nil, err
	}
	return &Simulation{
		Algorithm: alg,
		Label:     alg.Label(),
		Quantum:   log.Quantum,
		CreatedAt: time.Now().UTC(),
		Processes: procs,
		Log:       log,
		Metrics:   sim.ComputeMetrics(log),
		Trace:     tr,
	}, nil
}

// Limits on one simulation request. SJF and Round-Robin record a step per
// idle tick and every step snapshots every process, so the log grows with
// horizon times process count.
const (
	maxHorizonTicks = 50_000
	maxSnapshots    = 2_000_000
)

// checkBudget rejects process sets whose horizon (latest arrival plus total
// burst) or snapshot volume exceeds the request limits.
func checkBudget(procs []sim.Process) error {
	var latest, work int64
	for _, p := range procs {
		if p.ArrivalTime > maxHorizonTicks || p.BurstTime > maxHorizonTicks {
			return fmt.Errorf("process %s exceeds the %d tick horizon: %w", p.Name, maxHorizonTicks, sim.ErrInvalidInput)
		}
		latest = max(latest, p.ArrivalTime)
		work += p.BurstTime
	}
	horizon := latest + work
	if horizon > maxHorizonTicks {
		return fmt.Errorf("simulation horizon %d exceeds %d ticks: %w", horizon, maxHorizonTicks, sim.ErrInvalidInput)
	}
	if horizon*int64(len(procs)) > maxSnapshots {
		return fmt.Errorf("%d processes over %d ticks exceeds %d snapshots: %w",
			len(procs), horizon, maxSnapshots, sim.ErrInvalidInput)
	}
	return nil
}

func newSimulationResponse(sm *Simulation) simulationResponse {
	resp := simulationResponse{Simulation: sm, Steps: sm.Log.Steps, Metrics: sm.Metrics}
	if sm.Trace.Enabled() {
		resp.Trace = trace.Summarize(sm.Trace)
	}
	return resp
}

func (s *Server) handleListSimulations(w http.ResponseWriter, r *http.Request) {
	reqID := requestIDFrom(r.Context())
	sims := s.store.List()
	out := make([]simulationSummary, len(sims))
	for i, sm := range sims {
		out[i] = simulationSummary{
			ID:        sm.ID,
			Algorithm: sm.Algorithm,
			Label:     sm.Label,
			Quantum:   sm.Quantum,
			CreatedAt: sm.CreatedAt,
			Steps:     sm.Log.Len(),
		}
	}
	respondOK(w, reqID, out)
}

func (s *Server) handleGetSimulation(w http.ResponseWriter, r *http.Request) {
	reqID := requestIDFrom(r.Context())
	sm, ok := s.lookup(w, r)
	if !ok {
		return
	}
	respondOK(w, reqID, newSimulationResponse(sm))
}

func (s *Server) handleGetMetrics(w http.ResponseWriter, r *http.Request) {
	reqID := requestIDFrom(r.Context())
	sm, ok := s.lookup(w, r)
	if !ok {
		return
	}
	respondOK(w, reqID, sm.Metrics)
}

func (s *Server) handleGetStep(w http.ResponseWriter, r *http.Request) {
	reqID := requestIDFrom(r.Context())
	sm, ok := s.lookup(w, r)
	if !ok {
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		respondError(w, reqID, http.StatusBadRequest, codeValidation, "step index must be an integer")
		return
	}
	step, found := sm.Log.At(index)
	if !found {
		respondError(w, reqID, http.StatusNotFound, codeNotFound,
			fmt.Sprintf("step %d out of range [0, %d)", index, sm.Log.Len()))
		return
	}
	respondOK(w, reqID, stepResponse{Index: index, Total: sm.Log.Len(), Step: step})
}

func (s *Server) handleDeleteSimulation(w http.ResponseWriter, r *http.Request) {
	reqID := requestIDFrom(r.Context())
	id := chi.URLParam(r, "id")
	if !s.store.Delete(id) {
		respondError(w, reqID, http.StatusNotFound, codeNotFound, "simulation "+id+" not found")
		return
	}
	respondOK(w, reqID, map[string]string{"id": id, "deleted": "true"})
}

// lookup resolves the {id} URL parameter, writing a 404 when absent.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*Simulation, bool) {
	id := chi.URLParam(r, "id")
	sm, ok := s.store.Get(id)
	if !ok {
		respondError(w, requestIDFrom(r.Context()), http.StatusNotFound, codeNotFound, "simulation "+id+" not found")
	}
	return sm, ok
}
