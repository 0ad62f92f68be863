// The newton command runs a gravitational simulation described by a YAML
// configuration file and writes one frame file per step.
//
// Grounded on original_source/src/main.rs's flag set and loop shape (read
// input, build an Environment, step it frames times), adapted to the
// standard flag package per gonum-gonum/dsp/window/cmd/leakage's CLI idiom
// rather than the original's clap/pbr dependencies.
package main

import (
	"flag"
	"log"
	"math"
	"time"

	"golang.org/x/exp/rand"

	"github.com/johnxnguyen/newton/body"
	"github.com/johnxnguyen/newton/config"
	"github.com/johnxnguyen/newton/field"
	"github.com/johnxnguyen/newton/force"
	"github.com/johnxnguyen/newton/frame"
	"github.com/johnxnguyen/newton/quad"
	"github.com/johnxnguyen/newton/sim"
)

func main() {
	input := flag.String("input", "", "path to the YAML system configuration (required)")
	output := flag.String("output", "", "directory to write frame-N.txt files into (required)")
	frames := flag.Uint("frames", 0, "number of simulation steps to run (required)")
	bruteForce := flag.Bool("bruteforce", false, "use the exact O(n^2) force field instead of Barnes-Hut")
	theta := flag.Float64("theta", 0.5, "Barnes-Hut opening angle threshold")
	g := flag.Float64("g", 1.0, "gravitational constant")
	minDist := flag.Float64("mindist", 1e-3, "minimum distance used to soften close encounters")
	seed := flag.Uint64("seed", 1, "seed for the configuration's random generators")
	flag.Parse()

	if *input == "" || *output == "" || *frames == 0 {
		flag.Usage()
		log.Fatal("newton: -input, -output and -frames are all required")
	}

	bodies, err := config.Load(*input, rand.NewSource(*seed))
	if err != nil {
		log.Fatal(err)
	}

	gravity := force.NewGravity(*g, *minDist)
	f := buildField(bodies, gravity, *bruteForce, *theta)

	writer, err := frame.NewWriter(*output)
	if err != nil {
		log.Fatal(err)
	}

	env := sim.New(bodies, []field.Field{f}, writer)

	start := time.Now()
	if err := env.Run(*frames); err != nil {
		log.Fatal(err)
	}
	log.Printf("newton: wrote %d frames for %d bodies in %s", *frames, len(bodies), time.Since(start))
}

// buildField selects the force field to drive the simulation with. Unless
// -bruteforce is given, the Barnes-Hut root square is sized to the smallest
// power-of-two square, centered on the origin, that contains every body.
func buildField(bodies []*body.Body, gravity force.Gravity, bruteForce bool, theta float64) field.Field {
	if bruteForce {
		return field.BruteForce{Gravity: gravity}
	}
	return field.BarnesHut{Root: boundingSquare(bodies), Gravity: gravity, Theta: theta}
}

// boundingSquare returns the smallest square of the form [-2^k, 2^k] on both
// axes that contains every body's position, with a minimum half-size of 1 so
// that a single body or a cluster at the origin still yields a usable root.
func boundingSquare(bodies []*body.Body) quad.Square {
	half := 1.0
	for _, b := range bodies {
		half = math.Max(half, math.Abs(b.Position.X))
		half = math.Max(half, math.Abs(b.Position.Y))
	}
	k := 0
	for math.Ldexp(1, k) < half {
		k++
	}
	size := math.Ldexp(1, k)
	return quad.New(-size, -size, k+1)
}
