// Package telemetry writes per-tick simulation state to CSV and, optionally,
// streams it live over a websocket for an attached viewer.
package telemetry

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/asgard/interceptsim/internal/simerr"
	"github.com/asgard/interceptsim/internal/world"
)

// Writer streams one CSV row per tick. The column set is fixed on the first
// write, from the entity counts of that tick's World; every subsequent row
// must come from a World with the same ballistic/interceptor/radar counts.
type Writer struct {
	csv *csv.Writer

	ballistics   []world.EntityID
	interceptors []world.EntityID
	radars       []world.EntityID
	headerWritten bool
}

// NewWriter wraps an io.Writer (typically an *os.File) as a CSV telemetry
// sink.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteTick appends one row for the given tick's World state, writing the
// header first if this is the first call, and flushes it to the underlying
// writer so a write failure is reported on the tick it happens.
func (tw *Writer) WriteTick(simTime float64, w *world.World) error {
	if !tw.headerWritten {
		tw.ballistics = w.Ballistics()
		tw.interceptors = w.Interceptors()
		tw.radars = w.Radars()
		if err := tw.csv.Write(tw.header()); err != nil {
			return simerr.New(simerr.OutputIO, fmt.Errorf("writing csv header: %w", err))
		}
		tw.headerWritten = true
	}

	row := make([]string, 0, len(tw.header()))
	row = append(row, formatFloat(simTime))

	for _, id := range tw.ballistics {
		row = append(row, tw.entityColumns(w, id)...)
	}
	for _, id := range tw.interceptors {
		row = append(row, tw.interceptorColumns(w, id)...)
	}
	for _, id := range tw.radars {
		row = append(row, tw.radarColumns(w, id)...)
	}

	if err := tw.csv.Write(row); err != nil {
		return simerr.New(simerr.OutputIO, fmt.Errorf("writing csv row: %w", err))
	}
	tw.csv.Flush()
	if err := tw.csv.Error(); err != nil {
		return simerr.New(simerr.OutputIO, fmt.Errorf("writing csv row: %w", err))
	}
	return nil
}

// Flush flushes the underlying CSV writer and reports any error building up
// from previous writes.
func (tw *Writer) Flush() error {
	tw.csv.Flush()
	if err := tw.csv.Error(); err != nil {
		return simerr.New(simerr.OutputIO, err)
	}
	return nil
}

func (tw *Writer) header() []string {
	cols := []string{"time[s]"}
	for _, id := range tw.ballistics {
		p := fmt.Sprintf("bm%d", id)
		cols = append(cols, p+"_x[m]", p+"_y[m]", p+"_z[m]", p+"_theta[rad]", p+"_psi[rad]", p+"_state")
	}
	for _, id := range tw.interceptors {
		p := fmt.Sprintf("im%d", id)
		cols = append(cols, p+"_x[m]", p+"_y[m]", p+"_z[m]", p+"_theta[rad]", p+"_psi[rad]", p+"_state", p+"_target")
	}
	for _, id := range tw.radars {
		p := fmt.Sprintf("r%d", id)
		cols = append(cols, p+"_detected_count", p+"_detected_ids")
	}
	return cols
}

func (tw *Writer) entityColumns(w *world.World, id world.EntityID) []string {
	t := w.Transform(id)
	a := w.Attitude(id)
	l := w.Liveness(id)
	return []string{
		formatFloat(t.Position.X), formatFloat(t.Position.Y), formatFloat(t.Position.Z),
		formatFloat(a.Theta), formatFloat(a.Psi),
		stateToken(l.State),
	}
}

func (tw *Writer) interceptorColumns(w *world.World, id world.EntityID) []string {
	cols := tw.entityColumns(w, id)
	tag := w.Interceptor(id)
	target := ""
	if tag.HasTarget {
		target = strconv.FormatUint(uint64(tag.Target), 10)
	}
	return append(cols, target)
}

func (tw *Writer) radarColumns(w *world.World, id world.EntityID) []string {
	r := w.Radar(id)
	ids := make([]string, len(r.Detections))
	for i, d := range r.Detections {
		ids[i] = strconv.FormatUint(uint64(d.Entity), 10)
	}
	return []string{strconv.Itoa(len(r.Detections)), strings.Join(ids, ";")}
}

func stateToken(s world.LivenessState) string {
	switch s {
	case world.Intercepted:
		return "intercepted"
	case world.Impacted:
		return "impacted"
	default:
		return "alive"
	}
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 3, 64)
}
