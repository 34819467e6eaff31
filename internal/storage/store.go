package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/gliderlab/internal/geom"
)

// Store persists search runs under a base directory, one directory per
// run with a metadata.json and the winning trajectory as trajectory.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Seed       int64     `json:"seed"`
	Planets    int       `json:"planets"`
	MaxMass    float64   `json:"max_mass"`
	Spiral     float64   `json:"spiral"`
	Integrator string    `json:"integrator"`
	Scheme     string    `json:"scheme"`
	StepSize   float64   `json:"step_size"`
	MaxSteps   int       `json:"max_steps"`
	Attempts   int       `json:"attempts"`
	BoundsMinX float64   `json:"bounds_min_x"`
	BoundsMinY float64   `json:"bounds_min_y"`
	BoundsMaxX float64   `json:"bounds_max_x"`
	BoundsMaxY float64   `json:"bounds_max_y"`
	Score      float64   `json:"score"`
	StartX     float64   `json:"start_x"`
	StartY     float64   `json:"start_y"`
	Handedness string    `json:"handedness"`
	PathPoints int       `json:"path_points"`
	PathLength float64   `json:"path_length"`
	Switches   int       `json:"planet_switches"`
}

// Bounds returns the world rectangle the run was searched over.
// Rebuilding the system needs it: planet placement draws uniformly
// inside these bounds, so the same seed over different bounds yields
// different planets. Runs written before bounds were recorded return a
// zero rect.
func (m *RunMetadata) Bounds() geom.Rect {
	return geom.Rect{
		Min: geom.Vec2{X: m.BoundsMinX, Y: m.BoundsMinY},
		Max: geom.Vec2{X: m.BoundsMaxX, Y: m.BoundsMaxY},
	}
}

// Save writes one run. The run ID carries the seed and a nanosecond
// wall clock so back-to-back searches with the same seed stay
// distinguishable.
func (s *Store) Save(meta RunMetadata, traj []geom.Vec2) (string, error) {
	runID := fmt.Sprintf("run_%d_%d", meta.Seed, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.PathPoints = len(traj)

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trajectory.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"x", "y"}); err != nil {
		return "", err
	}
	for _, p := range traj {
		row := []string{
			strconv.FormatFloat(p.X, 'f', 6, 64),
			strconv.FormatFloat(p.Y, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadTrajectory(runID string) ([]geom.Vec2, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trajectory.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []geom.Vec2{}, nil
	}

	traj := make([]geom.Vec2, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		if len(records[i]) < 2 {
			continue
		}
		x, err := strconv.ParseFloat(records[i][0], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		y, err := strconv.ParseFloat(records[i][1], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		traj = append(traj, geom.Vec2{X: x, Y: y})
	}

	return traj, nil
}
