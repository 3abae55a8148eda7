package storage

import (
	"encoding/json"
	"io"
	"os"
)

// ExportData is a whole run in one document. Corners[i][k] is corner k of
// frame i as [x, y].
type ExportData struct {
	Metadata RunMetadata    `json:"metadata"`
	Times    []float64      `json:"times"`
	Rounds   []float64      `json:"rounds"`
	Corners  [][][2]float64 `json:"corners"`
}

// Export collects a run into one value.
func (s *Store) Export(runID string) (*ExportData, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return nil, err
	}

	data := &ExportData{
		Metadata: *meta,
		Times:    make([]float64, len(samples)),
		Rounds:   make([]float64, len(samples)),
		Corners:  make([][][2]float64, len(samples)),
	}
	for i, smp := range samples {
		data.Times[i] = smp.Time
		data.Rounds[i] = smp.Rounds
		pts := make([][2]float64, len(smp.Corners))
		for k, p := range smp.Corners {
			pts[k] = [2]float64{p.X, p.Y}
		}
		data.Corners[i] = pts
	}
	return data, nil
}

// ExportJSON writes the run as indented JSON to w.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	data, err := s.Export(runID)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportCSV copies the samples file of a run to w.
func (s *Store) ExportCSV(w io.Writer, runID string) error {
	path, err := s.runFile(runID, samplesFile)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return notFound(runID, err)
	}
	defer f.Close()

	_, err = io.Copy(w, f)
	return err
}
