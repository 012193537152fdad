package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/collide/internal/params"
	"github.com/san-kum/collide/internal/sim"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

var frameHeader = []string{"tick", "xa", "xb", "va", "vb", "collided"}

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID            string             `json:"id"`
	Timestamp     time.Time          `json:"timestamp"`
	Params        params.Set         `json:"params"`
	Ticks         int                `json:"ticks"`
	TickRate      int                `json:"tick_rate"`
	Step          float64            `json:"step"`
	ViewportWidth float64            `json:"viewport_width"`
	Collisions    int                `json:"collisions"`
	WallHits      int                `json:"wall_hits"`
	Metrics       Metrics            `json:"metrics"`
}

// Save assigns an ID and timestamp to meta, copies the result counters into
// it and writes the run directory. A failed save leaves no directory behind.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	now := s.now()
	runID := fmt.Sprintf("run_%d", now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Params = result.Params
	meta.Ticks = result.TicksTaken
	meta.Collisions = result.Collisions
	meta.WallHits = result.WallHits
	meta.Metrics = result.Metrics

	if err := writeRun(runDir, meta, result.Frames); err != nil {
		os.RemoveAll(runDir)
		return "", fmt.Errorf("save %s: %w", runID, err)
	}
	return runID, nil
}

func writeRun(runDir string, meta RunMetadata, frames []sim.Frame) error {
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return err
	}

	csvFile, err := os.Create(filepath.Join(runDir, framesFile))
	if err != nil {
		return err
	}
	if err := WriteFrames(csvFile, frames); err != nil {
		csvFile.Close()
		return err
	}
	return csvFile.Close()
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteFrames writes frames as CSV with a header row.
func WriteFrames(w io.Writer, frames []sim.Frame) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(frameHeader); err != nil {
		return err
	}

	for _, f := range frames {
		collided := "0"
		if f.Collided {
			collided = "1"
		}
		row := []string{
			strconv.Itoa(f.Tick),
			strconv.FormatFloat(f.PositionA, 'f', 6, 64),
			strconv.FormatFloat(f.PositionB, 'f', 6, 64),
			strconv.FormatFloat(f.VelocityA, 'f', 6, 64),
			strconv.FormatFloat(f.VelocityB, 'f', 6, 64),
			collided,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// List returns all readable runs, oldest first.
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
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
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
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}

func (s *Store) FramesPath(runID string) string {
	return filepath.Join(s.baseDir, runID, framesFile)
}

func (s *Store) LoadFrames(runID string) ([]sim.Frame, error) {
	file, err := os.Open(s.FramesPath(runID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	return ReadFrames(file)
}

// ReadFrames parses CSV written by WriteFrames. Malformed rows are skipped.
func ReadFrames(r io.Reader) ([]sim.Frame, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []sim.Frame{}, nil
	}

	frames := make([]sim.Frame, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != len(frameHeader) {
			continue
		}

		tick, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}

		var vals [4]float64
		ok := true
		for j := range vals {
			v, err := strconv.ParseFloat(record[j+1], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}

		frames = append(frames, sim.Frame{
			Tick:      tick,
			PositionA: vals[0],
			PositionB: vals[1],
			VelocityA: vals[2],
			VelocityB: vals[3],
			Collided:  record[5] == "1",
		})
	}

	return frames, nil
}
