package store

import (
	"encoding/json"
	"fmt"
	"io"
)

// ExportJSON writes a run's metadata and frame rows as a single JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return fmt.Errorf("loading run %s: %w", runID, err)
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return fmt.Errorf("loading frames for %s: %w", runID, err)
	}

	doc := struct {
		Metadata RunMetadata   `json:"metadata"`
		Frames   []FrameRecord `json:"frames"`
	}{Metadata: *meta, Frames: frames}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// ExportCSV copies the raw frames.csv content for a run.
func (s *Store) ExportCSV(w io.Writer, runID string) error {
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return fmt.Errorf("loading frames for %s: %w", runID, err)
	}
	fmt.Fprintln(w, "frame,delta,scale,particles,edges")
	for _, fr := range frames {
		fmt.Fprintf(w, "%d,%.6f,%.6f,%d,%d\n", fr.Frame, fr.Delta, fr.Scale, fr.Particles, fr.Edges)
	}
	return nil
}
