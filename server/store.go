package server

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/inference-sim/schedsim/sim"
	"github.com/inference-sim/schedsim/sim/trace"
)

// Simulation is one stored run.
type Simulation struct {
	ID        string                 `json:"id"`
	Algorithm sim.Algorithm          `json:"algorithm"`
	Label     string                 `json:"label"`
	Quantum   int                    `json:"quantum,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
	Processes []sim.Process          `json:"processes"`
	Log       *sim.StepLog           `json:"-"`
	Metrics   *sim.Metrics           `json:"-"`
	Trace     *trace.SimulationTrace `json:"-"`
}

// Store keeps simulations in memory for the lifetime of the server.
type Store struct {
	mu   sync.RWMutex
	sims map[string]*Simulation
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{sims: make(map[string]*Simulation)}
}

// Put assigns an ID and stores sim.
func (st *Store) Put(s *Simulation) {
	s.ID = "sim_" + uuid.New().String()
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sims[s.ID] = s
}

// Get returns the simulation with the given ID.
func (st *Store) Get(id string) (*Simulation, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sims[id]
	return s, ok
}

// Delete removes a simulation. Reports whether it existed.
func (st *Store) Delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sims[id]; !ok {
		return false
	}
	delete(st.sims, id)
	return true
}

// List returns all simulations, oldest first.
func (st *Store) List() []*Simulation {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]*Simulation, 0, len(st.sims))
	for _, s := range st.sims {
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
