// Package storage persists a finished trace to disk: a metadata.json
// summarizing the run, a path.csv with the kept trajectory samples, and
// an events.csv with detected v-parallel/Phi-plane/stopping-criterion
// hits. The layout and CSV-plus-JSON split follow the teacher's run
// store for simulation results.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"fltrace/internal/integrate"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata summarizes one trace run for later listing/inspection.
type RunMetadata struct {
	ID        string    `json:"id"`
	Mode      string    `json:"mode"`
	Timestamp time.Time `json:"timestamp"`
	Tmax      float64   `json:"tmax"`
	Samples   int       `json:"samples"`
	Hits      int       `json:"hits"`
}

// Save writes one trace run's path and hits under baseDir/<runID>/ and
// returns the runID.
func (s *Store) Save(mode string, tmax float64, path []integrate.Sample, hits []integrate.Hit, ts time.Time) (string, error) {
	runID := fmt.Sprintf("%s_%d", mode, ts.Unix())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID: runID, Mode: mode, Timestamp: ts, Tmax: tmax,
		Samples: len(path), Hits: len(hits),
	}
	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writePathCSV(filepath.Join(runDir, "path.csv"), path); err != nil {
		return "", err
	}
	if err := writeHitsCSV(filepath.Join(runDir, "events.csv"), hits); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writePathCSV(path string, samples []integrate.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if len(samples) == 0 {
		return nil
	}
	header := []string{"time"}
	for i := range samples[0].Y {
		header = append(header, fmt.Sprintf("y%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{strconv.FormatFloat(s.T, 'g', 12, 64)}
		for _, v := range s.Y {
			row = append(row, strconv.FormatFloat(v, 'g', 12, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeHitsCSV(path string, hits []integrate.Hit) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"time", "kind", "index"}
	if len(hits) > 0 {
		for i := range hits[0].Y {
			header = append(header, fmt.Sprintf("y%d", i))
		}
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, h := range hits {
		row := []string{
			strconv.FormatFloat(h.T, 'g', 12, 64),
			hitKindString(h.Kind),
			strconv.Itoa(h.Index),
		}
		for _, v := range h.Y {
			row = append(row, strconv.FormatFloat(v, 'g', 12, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func hitKindString(k integrate.HitKind) string {
	switch k {
	case integrate.HitVpar:
		return "vpar"
	case integrate.HitPhi:
		return "phi"
	case integrate.HitStop:
		return "stop"
	default:
		return "unknown"
	}
}

// List returns the metadata of every run stored under baseDir.
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
