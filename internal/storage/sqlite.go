package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/san-kum/heatsim/internal/sim"
)

// DBFile is the database file name inside the data directory.
const DBFile = "heatsim.db"

// SQLiteStore keeps runs in a single SQLite database.
type SQLiteStore struct {
	conn *sqlx.DB
}

type runRow struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Timestamp   int64   `db:"timestamp"`
	Seed        int64   `db:"seed"`
	Ticks       int     `db:"ticks"`
	TickRate    float64 `db:"tick_rate"`
	EventDt     float64 `db:"event_dt"`
	Source      string  `db:"source"`
	Conductance string  `db:"conductance"`
	Particles   int     `db:"particles"`
	Exchanges   int     `db:"exchanges"`
	Clamped     int     `db:"clamped"`
	MetricsJSON string  `db:"metrics_json"`
}

type sampleRow struct {
	Time             float64 `db:"time"`
	Energy           float64 `db:"energy"`
	TemperaturesJSON string  `db:"temperatures_json"`
}

// OpenSQLite opens or creates the database under dir.
func OpenSQLite(dir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, DBFile)
	conn, err := sqlx.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return &SQLiteStore{conn: conn}, nil
}

func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

func (s *SQLiteStore) Init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		timestamp INTEGER NOT NULL,
		seed INTEGER NOT NULL,
		ticks INTEGER NOT NULL,
		tick_rate REAL NOT NULL,
		event_dt REAL NOT NULL,
		source TEXT NOT NULL,
		conductance TEXT NOT NULL,
		particles INTEGER NOT NULL,
		exchanges INTEGER NOT NULL,
		clamped INTEGER NOT NULL,
		metrics_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS samples (
		run_id TEXT NOT NULL,
		idx INTEGER NOT NULL,
		time REAL NOT NULL,
		energy REAL NOT NULL,
		temperatures_json TEXT NOT NULL,
		PRIMARY KEY (run_id, idx)
	);
	`
	if _, err := s.conn.Exec(schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Save(meta RunMetadata, result *sim.Result) (string, error) {
	meta = prepare(meta, result)

	metricsJSON, err := json.Marshal(meta.Metrics)
	if err != nil {
		return "", err
	}

	tx, err := s.conn.Beginx()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	row := runRow{
		ID:          meta.ID,
		Name:        meta.Name,
		Timestamp:   meta.Timestamp.UnixNano(),
		Seed:        meta.Seed,
		Ticks:       meta.Ticks,
		TickRate:    meta.TickRate,
		EventDt:     meta.EventDt,
		Source:      meta.Source,
		Conductance: meta.Conductance,
		Particles:   meta.Particles,
		Exchanges:   meta.Exchanges,
		Clamped:     meta.Clamped,
		MetricsJSON: string(metricsJSON),
	}
	_, err = tx.NamedExec(`INSERT INTO runs
		(id, name, timestamp, seed, ticks, tick_rate, event_dt, source,
		 conductance, particles, exchanges, clamped, metrics_json)
		VALUES (:id, :name, :timestamp, :seed, :ticks, :tick_rate, :event_dt, :source,
		 :conductance, :particles, :exchanges, :clamped, :metrics_json)`, row)
	if err != nil {
		return "", fmt.Errorf("insert run %s: %w", meta.ID, err)
	}

	stmt, err := tx.Preparex(`INSERT INTO samples
		(run_id, idx, time, energy, temperatures_json) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for i := range result.Times {
		tempsJSON, err := json.Marshal(result.Temperatures[i])
		if err != nil {
			return "", fmt.Errorf("encode sample %d: %w", i, err)
		}
		if _, err := stmt.Exec(meta.ID, i, result.Times[i], result.Energies[i], string(tempsJSON)); err != nil {
			return "", fmt.Errorf("insert sample %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return meta.ID, nil
}

func (s *SQLiteStore) List() ([]RunMetadata, error) {
	var rows []runRow
	if err := s.conn.Select(&rows, "SELECT * FROM runs ORDER BY timestamp"); err != nil {
		return nil, err
	}

	runs := make([]RunMetadata, 0, len(rows))
	for _, r := range rows {
		meta, err := r.metadata()
		if err != nil {
			return nil, err
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

func (s *SQLiteStore) Load(runID string) (*RunMetadata, error) {
	var r runRow
	err := s.conn.Get(&r, "SELECT * FROM runs WHERE id = ?", runID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
	}
	if err != nil {
		return nil, err
	}

	meta, err := r.metadata()
	if err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *SQLiteStore) LoadSeries(runID string) (*Series, error) {
	if _, err := s.Load(runID); err != nil {
		return nil, err
	}

	var rows []sampleRow
	err := s.conn.Select(&rows,
		"SELECT time, energy, temperatures_json FROM samples WHERE run_id = ? ORDER BY idx",
		runID,
	)
	if err != nil {
		return nil, err
	}

	series := &Series{}
	for _, r := range rows {
		var temps []float64
		if err := json.Unmarshal([]byte(r.TemperaturesJSON), &temps); err != nil {
			return nil, fmt.Errorf("decode sample: %w", err)
		}
		series.Times = append(series.Times, r.Time)
		series.Energies = append(series.Energies, r.Energy)
		series.Temperatures = append(series.Temperatures, temps)
	}
	return series, nil
}

func (r runRow) metadata() (RunMetadata, error) {
	meta := RunMetadata{
		ID:          r.ID,
		Name:        r.Name,
		Timestamp:   time.Unix(0, r.Timestamp),
		Seed:        r.Seed,
		Ticks:       r.Ticks,
		TickRate:    r.TickRate,
		EventDt:     r.EventDt,
		Source:      r.Source,
		Conductance: r.Conductance,
		Particles:   r.Particles,
		Exchanges:   r.Exchanges,
		Clamped:     r.Clamped,
	}
	if err := json.Unmarshal([]byte(r.MetricsJSON), &meta.Metrics); err != nil {
		return meta, fmt.Errorf("decode metrics of run %s: %w", r.ID, err)
	}
	return meta, nil
}
