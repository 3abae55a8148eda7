package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/handspin/internal/config"
	"github.com/san-kum/handspin/internal/geom"
	"github.com/san-kum/handspin/internal/logging"
	"github.com/san-kum/handspin/internal/session"
)

var ErrRunNotFound = errors.New("storage: run not found")

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
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

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Config    string             `json:"config"`
	Params    config.Params      `json:"params"`
	Timestamp time.Time          `json:"timestamp"`
	Duration  float64            `json:"duration"`
	FPS       int                `json:"fps"`
	Rows      int                `json:"rows"`
	Cols      int                `json:"cols"`
	Frames    int                `json:"frames"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes rec under a new run directory and returns its ID.
func (s *Store) Save(name string, rec *session.Recording) (string, error) {
	if name = sanitize(name); name == "" {
		name = "run"
	}
	now := time.Now()

	runID, runDir, err := s.newRunDir(fmt.Sprintf("%s_%d", name, now.Unix()))
	if err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Name:      name,
		Config:    config.Encode(rec.Params),
		Params:    rec.Params,
		Timestamp: now,
		Duration:  rec.Duration.Seconds(),
		FPS:       rec.FPS,
		Rows:      rec.Rows,
		Cols:      rec.Cols,
		Frames:    len(rec.Samples),
		Metrics:   rec.Metrics,
	}

	if err := writeRun(runDir, meta, rec.Samples); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}

	logging.Logger().Info("run saved", "id", runID, "frames", meta.Frames)
	return runID, nil
}

// newRunDir creates a fresh directory, suffixing the ID when runs are saved
// within the same second.
func (s *Store) newRunDir(base string) (string, string, error) {
	if err := s.Init(); err != nil {
		return "", "", err
	}
	id := base
	for n := 2; ; n++ {
		dir := filepath.Join(s.baseDir, id)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return id, dir, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", "", err
		}
		id = fmt.Sprintf("%s-%d", base, n)
	}
}

// writeRun fills a run directory. The caller removes it on error so a half
// written run never shows up in List.
func writeRun(runDir string, meta RunMetadata, samples []session.Sample) error {
	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return err
	}
	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		metaFile.Close()
		return err
	}
	if err := metaFile.Close(); err != nil {
		return err
	}
	return writeSamples(filepath.Join(runDir, samplesFile), samples)
}

func writeSamples(path string, samples []session.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	corners := 0
	if len(samples) > 0 {
		corners = len(samples[0].Corners)
	}
	header := []string{"time", "rounds"}
	for k := 0; k < corners; k++ {
		header = append(header, fmt.Sprintf("c%d_x", k), fmt.Sprintf("c%d_y", k))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, smp := range samples {
		row := []string{
			strconv.FormatFloat(smp.Time, 'f', 6, 64),
			strconv.FormatFloat(smp.Rounds, 'f', 9, 64),
		}
		for _, p := range smp.Corners {
			row = append(row,
				strconv.FormatFloat(p.X, 'f', 6, 64),
				strconv.FormatFloat(p.Y, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			logging.Logger().Debug("skipping run", "dir", entry.Name(), "err", err)
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

// Latest returns the ID of the most recent run.
func (s *Store) Latest() (string, error) {
	runs, err := s.List()
	if err != nil {
		return "", err
	}
	if len(runs) == 0 {
		return "", ErrRunNotFound
	}
	return runs[len(runs)-1].ID, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	path, err := s.runFile(runID, metadataFile)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, notFound(runID, err)
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%s: %w", runID, err)
	}
	return &meta, nil
}

// LoadSamples reads back the samples of a run. Rows that fail to parse are
// skipped.
func (s *Store) LoadSamples(runID string) ([]session.Sample, error) {
	path, err := s.runFile(runID, samplesFile)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, notFound(runID, err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []session.Sample{}, nil
	}

	samples := make([]session.Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		smp, ok := parseSample(record)
		if !ok {
			continue
		}
		samples = append(samples, smp)
	}
	return samples, nil
}

func parseSample(record []string) (session.Sample, bool) {
	if len(record) < 2 || len(record)%2 != 0 {
		return session.Sample{}, false
	}
	vals := make([]float64, len(record))
	for i, field := range record {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return session.Sample{}, false
		}
		vals[i] = v
	}

	smp := session.Sample{
		Time:    vals[0],
		Rounds:  vals[1],
		Corners: make([]geom.Point, 0, (len(vals)-2)/2),
	}
	for k := 2; k < len(vals); k += 2 {
		smp.Corners = append(smp.Corners, geom.Point{X: vals[k], Y: vals[k+1]})
	}
	return smp, true
}

// Delete removes a run directory.
func (s *Store) Delete(runID string) error {
	dir, err := s.runFile(runID, "")
	if err != nil {
		return err
	}
	if _, err := os.Stat(dir); err != nil {
		return notFound(runID, err)
	}
	return os.RemoveAll(dir)
}

func (s *Store) runFile(runID, name string) (string, error) {
	if runID == "" || runID != filepath.Base(runID) || runID == "." || runID == ".." {
		return "", fmt.Errorf("%q: %w", runID, ErrRunNotFound)
	}
	return filepath.Join(s.baseDir, runID, name), nil
}

func notFound(runID string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", runID, ErrRunNotFound)
	}
	return err
}

func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ' || r == '/' || r == '.':
			return '-'
		}
		return -1
	}, strings.TrimSpace(name))
}
