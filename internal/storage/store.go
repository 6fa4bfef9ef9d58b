package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/heatsim/internal/sim"
)

var ErrNotFound = errors.New("storage: run not found")

type RunMetadata struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Ticks       int                `json:"ticks"`
	TickRate    float64            `json:"tick_rate"`
	EventDt     float64            `json:"event_dt"`
	Source      string             `json:"source"`
	Conductance string             `json:"conductance"`
	Particles   int                `json:"particles"`
	Exchanges   int                `json:"exchanges"`
	Clamped     int                `json:"clamped"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Series is the sampled history of a run.
type Series struct {
	Times        []float64
	Energies     []float64
	Temperatures [][]float64
}

type Store interface {
	Init() error
	Save(meta RunMetadata, result *sim.Result) (string, error)
	List() ([]RunMetadata, error)
	Load(runID string) (*RunMetadata, error)
	LoadSeries(runID string) (*Series, error)
	Close() error
}

// Open returns the store for backend ("file" or "sqlite") rooted at dir.
func Open(backend, dir string) (Store, error) {
	switch backend {
	case "", "file":
		return New(dir), nil
	case "sqlite":
		return OpenSQLite(dir)
	}
	return nil, fmt.Errorf("unknown storage backend: %s", backend)
}

func newRunID(name string, now time.Time) string {
	return fmt.Sprintf("%s_%d_%s", name, now.Unix(), uuid.NewString()[:8])
}

// prepare stamps meta with a fresh ID, time and the result's totals.
func prepare(meta RunMetadata, result *sim.Result) RunMetadata {
	now := time.Now()
	meta.ID = newRunID(meta.Name, now)
	meta.Timestamp = now
	meta.Exchanges = result.Totals.Applied
	meta.Clamped = result.Totals.Clamped
	meta.Metrics = result.Metrics
	return meta
}
