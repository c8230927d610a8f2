// Package quant measures the error a packed format introduces.
package quant

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/23skdu/longbow-packvec/internal/packed"
	"github.com/23skdu/longbow-packvec/internal/simd"
	"github.com/23skdu/longbow-packvec/internal/vertexbuf"
)

// Report summarizes absolute round-trip error for one format.
type Report struct {
	Format   string    `cbor:"format" json:"format"`
	Count    int       `cbor:"count" json:"count"`
	NaNs     int       `cbor:"nans" json:"nans"`
	Bytes    int       `cbor:"bytes" json:"bytes"`
	InputMax float64   `cbor:"input_max_abs" json:"input_max_abs"`
	MaxErr   float64   `cbor:"max_error" json:"max_error"`
	MeanErr  float64   `cbor:"mean_error" json:"mean_error"`
	StdDev   float64   `cbor:"std_dev" json:"std_dev"`
	RMS      float64   `cbor:"rms" json:"rms"`
	PerLane  []float64 `cbor:"lane_max_error" json:"lane_max_error"`
}

// Measure round-trips src through c and reports error statistics.
// Values that are NaN on either side are counted and left out of the
// statistics.
func Measure(c packed.Codec, src []float32) (Report, error) {
	buf, err := vertexbuf.Pack(c, src)
	if err != nil {
		return Report{}, err
	}
	out, err := vertexbuf.Unpack(c, buf)
	if err != nil {
		return Report{}, err
	}

	n := c.Components()
	rep := Report{
		Format:   c.Name(),
		Count:    len(src) / n,
		Bytes:    len(buf),
		InputMax: float64(simd.MaxAbs(src)),
		PerLane:  make([]float64, n),
	}

	errs := make([]float64, 0, len(src))
	for i, want := range src {
		got := out[i]
		if math.IsNaN(float64(want)) || math.IsNaN(float64(got)) {
			rep.NaNs++
			continue
		}
		d := math.Abs(float64(got) - float64(want))
		if math.IsInf(d, 0) || math.IsNaN(d) {
			// Infinities that survive the round trip are exact.
			if float64(got) == float64(want) {
				d = 0
			} else {
				d = math.Inf(1)
			}
		}
		errs = append(errs, d)
		rep.PerLane[i%n] = math.Max(rep.PerLane[i%n], d)
	}
	if len(errs) == 0 {
		return rep, nil
	}

	rep.MaxErr = floats.Max(errs)
	rep.MeanErr, rep.StdDev = stat.PopMeanStdDev(errs, nil)
	rep.RMS = math.Sqrt(floats.Dot(errs, errs) / float64(len(errs)))
	return rep, nil
}
