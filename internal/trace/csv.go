// Package trace runs a scene headless and writes what happened.
package trace

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strconv"

	"github.com/san-kum/orrery/internal/scene"
)

var (
	ErrInvalidSteps = errors.New("trace: steps must not be negative")
	ErrTooManySteps = errors.New("trace: too many steps to hold in memory")
	ErrUnknownBody  = errors.New("trace: unknown body")
)

// MaxTrackSteps bounds Track, which keeps every point. Write streams and has
// no bound.
const MaxTrackSteps = 1 << 20

// Columns is the CSV header for s.
func Columns(s *scene.Scene) []string {
	header := []string{"step", "time"}
	for _, b := range s.Bodies() {
		header = append(header, b.Name+"_x", b.Name+"_y")
	}
	return append(header, "ship_x", "ship_y", "ship_heading")
}

// Write records the initial state, then advances s steps times by dt
// seconds, writing one row per state. Positions are canvas coordinates.
func Write(ctx context.Context, w io.Writer, s *scene.Scene, steps int, dt float64) error {
	if steps < 0 {
		return ErrInvalidSteps
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Columns(s)); err != nil {
		return err
	}

	bodies := s.Bodies()
	row := make([]string, 0, 5+2*len(bodies))
	for i := 0; i <= steps; i++ {
		if i > 0 {
			if err := ctx.Err(); err != nil {
				cw.Flush()
				return err
			}
			s.Update(dt)
		}

		row = row[:0]
		row = append(row, strconv.Itoa(i), format(float64(i)*dt))
		for _, b := range bodies {
			x, y := s.Position(b)
			row = append(row, format(x), format(y))
		}
		row = append(row, format(s.Ship.X), format(s.Ship.Y), format(s.Ship.Heading))

		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func format(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
