package io

import (
	"bufio"
	"fmt"
	"os"

	"github.com/chewxy/math32"

	"github.com/aleksmitov/advanced-hpc/lbm"
)

// WriteFinalState writes one line per cell: column, row, the velocity
// components, the velocity magnitude, the pressure, and the obstacle flag.
// Obstacle cells report zero velocity and the pressure of the initial
// density.
func WriteFinalState(fname string, p *lbm.Params, g *lbm.Grid) error {
	f, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf(
			"Could not create final-state file '%s': %s", fname, err.Error(),
		)
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	for jj := 0; jj < g.Ny; jj++ {
		for ii := 0; ii < g.Nx; ii++ {
			idx := g.Index(ii, jj)

			var ux, uy, u, pressure float32
			obstacle := 0
			if g.Obstacles[idx] {
				obstacle = 1
				pressure = p.Density * lbm.CSq
			} else {
				var rho float32
				rho, ux, uy = g.Cells[idx].Moments()
				u = math32.Sqrt(ux*ux + uy*uy)
				pressure = rho * lbm.CSq
			}

			fmt.Fprintf(w, "%d %d %.12E %.12E %.12E %.12E %d\n",
				ii, jj, ux, uy, u, pressure, obstacle)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf(
			"Could not write final-state file '%s': %s", fname, err.Error(),
		)
	}
	return nil
}

// WriteAvVels writes the average-velocity trace, one "<step>:\t<value>"
// line per timestep.
func WriteAvVels(fname string, avVels []float64) error {
	f, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf(
			"Could not create average-velocity file '%s': %s",
			fname, err.Error(),
		)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for t, v := range avVels {
		fmt.Fprintf(w, "%d:\t%.12E\n", t, v)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf(
			"Could not write average-velocity file '%s': %s",
			fname, err.Error(),
		)
	}
	return nil
}
