package storage

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/san-kum/collide/internal/sim"
)

// Float encodes as a JSON number when finite and as the string "NaN",
// "+Inf" or "-Inf" otherwise. Degenerate runs produce such values.
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return json.Marshal(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return json.Marshal(v)
}

func (f *Float) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*f = Float(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

// Metrics is a metric map that survives non-finite values.
type Metrics map[string]float64

func (m Metrics) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	out := make(map[string]Float, len(m))
	for k, v := range m {
		out[k] = Float(v)
	}
	return json.Marshal(out)
}

func (m *Metrics) UnmarshalJSON(data []byte) error {
	var in map[string]Float
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in == nil {
		*m = nil
		return nil
	}
	out := make(Metrics, len(in))
	for k, v := range in {
		out[k] = float64(v)
	}
	*m = out
	return nil
}

// frameJSON mirrors sim.Frame with non-finite safe fields.
type frameJSON struct {
	Tick      int   `json:"tick"`
	PositionA Float `json:"xa"`
	PositionB Float `json:"xb"`
	VelocityA Float `json:"va"`
	VelocityB Float `json:"vb"`
	Collided  bool  `json:"collided"`
}

func toFrameJSON(frames []sim.Frame) []frameJSON {
	out := make([]frameJSON, len(frames))
	for i, f := range frames {
		out[i] = frameJSON{
			Tick:      f.Tick,
			PositionA: Float(f.PositionA),
			PositionB: Float(f.PositionB),
			VelocityA: Float(f.VelocityA),
			VelocityB: Float(f.VelocityB),
			Collided:  f.Collided,
		}
	}
	return out
}
