// The newtonplot command renders one or more frame-N.txt files written by
// newton as PNG scatter plots, for visual inspection during development.
//
// Not part of the simulation core: grounded on
// gonum-gonum/dsp/window/cmd/leakage's plot.New/p.Save shape and
// gonum-gonum/graph/layout's plotter.NewScatter usage, applied to
// frame.Reader's output instead of a spectral curve.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/johnxnguyen/newton/frame"
)

func main() {
	output := flag.String("output", "", "directory to write rendered PNGs into (required)")
	scale := flag.Float64("scale", 1, "plot side length in centimeters")
	radius := flag.Float64("radius", 2, "point radius in points")
	flag.Parse()

	paths := flag.Args()
	if *output == "" || len(paths) == 0 {
		flag.Usage()
		log.Fatal("newtonplot: -output and at least one frame file are required")
	}

	if err := os.MkdirAll(*output, 0o755); err != nil {
		log.Fatal(err)
	}

	reader := frame.Reader{}
	for _, path := range paths {
		if err := renderFrame(reader, path, *output, *scale, *radius); err != nil {
			log.Fatal(err)
		}
	}
}

func renderFrame(reader frame.Reader, path, outDir string, scale, radius float64) error {
	points, err := reader.ReadFrame(path)
	if err != nil {
		return err
	}

	xys := make(plotter.XYs, len(points))
	for i, p := range points {
		xys[i] = plotter.XY{X: p.X, Y: p.Y}
	}

	p := plot.New()
	p.Title.Text = filepath.Base(path)
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(plotter.NewGrid())

	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("newtonplot: %s: %w", path, err)
	}
	scatter.GlyphStyle.Radius = vg.Points(radius)
	p.Add(scatter)

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	out := filepath.Join(outDir, name+".png")
	side := vg.Length(scale) * vg.Centimeter
	if err := p.Save(side, side, out); err != nil {
		return fmt.Errorf("newtonplot: saving %s: %w", out, err)
	}
	return nil
}
