package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/collide/internal/sim"
)

type ExportData struct {
	RunMetadata
	Frames []frameJSON `json:"frames"`
}

// ExportJSON writes a run's metadata and frames as one indented document.
// Non-finite values are written as strings.
func ExportJSON(w io.Writer, meta RunMetadata, frames []sim.Frame) error {
	data := ExportData{RunMetadata: meta, Frames: toFrameJSON(frames)}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Export loads a stored run and writes it with ExportJSON.
func (s *Store) Export(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}
	return ExportJSON(w, *meta, frames)
}
