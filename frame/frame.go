// Package frame writes and reads the per-step position snapshots a
// simulation produces: one frame-N.txt file per step, one "x,y" line per
// body, in input order.
//
// No file in original_source implements this completely (field.rs's early
// draft only prints moon data to stdout); this package is written fresh in
// the teacher's plain-stdlib-I/O idiom, matching how
// gonum-gonum/dsp/window/cmd/leakage writes its own output files.
package frame

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/johnxnguyen/newton/vec2"
)

// Writer publishes one frame-N.txt file per call to WriteFrame, creating
// its output directory if it does not already exist. Frame numbers start at
// 0 and increase by one on every call.
type Writer struct {
	dir   string
	frame int
}

// NewWriter returns a Writer that writes into dir, creating it if
// necessary.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("frame: creating output directory %s: %w", dir, err)
	}
	return &Writer{dir: dir}, nil
}

// WriteFrame implements sim.FrameSink: it writes one "x,y" line per point,
// in order, to the next frame-N.txt file.
func (w *Writer) WriteFrame(points []vec2.Point) error {
	path := filepath.Join(w.dir, fmt.Sprintf("frame-%d.txt", w.frame))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("frame: creating %s: %w", path, err)
	}
	defer f.Close()

	buf := bufio.NewWriter(f)
	for _, p := range points {
		if _, err := fmt.Fprintf(buf, "%s,%s\n", formatFloat(p.X), formatFloat(p.Y)); err != nil {
			return fmt.Errorf("frame: writing %s: %w", path, err)
		}
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("frame: flushing %s: %w", path, err)
	}

	w.frame++
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Reader parses a single frame file back into the points it holds. It
// supports cmd/newtonplot, which needs to read frames a simulation has
// already written; the Rust original had no equivalent, having only ever
// written frames forward.
type Reader struct{}

// ReadFrame parses the frame file at path into an ordered list of points.
func (Reader) ReadFrame(path string) ([]vec2.Point, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("frame: reading %s: %w", path, err)
	}

	var points []vec2.Point
	for lineNum, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, ",", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("frame: %s:%d: malformed line %q", path, lineNum+1, line)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("frame: %s:%d: %w", path, lineNum+1, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("frame: %s:%d: %w", path, lineNum+1, err)
		}
		points = append(points, vec2.Point{X: x, Y: y})
	}
	return points, nil
}
