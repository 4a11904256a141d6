// Package io reads the parameter and obstacle input files and writes the
// final-state and average-velocity output files. All formats are plain
// ASCII. Errors name the file and the field or line that failed; deciding
// whether they are fatal is left to the caller.
package io

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/aleksmitov/advanced-hpc/lbm"
)

// ReadParams reads a parameter file: seven newline-separated values in the
// order nx, ny, maxIters, reynolds_dim, density, accel, omega.
func ReadParams(fname string) (*lbm.Params, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, fmt.Errorf(
			"Could not open parameter file '%s': %s", fname, err.Error(),
		)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	p := &lbm.Params{}

	fields := []struct {
		name string
		ptr  interface{}
	}{
		{"nx", &p.Nx},
		{"ny", &p.Ny},
		{"maxIters", &p.MaxIters},
		{"reynolds_dim", &p.ReynoldsDim},
		{"density", &p.Density},
		{"accel", &p.Accel},
		{"omega", &p.Omega},
	}

	for _, field := range fields {
		if _, err := fmt.Fscan(r, field.ptr); err != nil {
			return nil, fmt.Errorf(
				"Could not read '%s' from parameter file '%s': %s",
				field.name, fname, err.Error(),
			)
		}
	}

	if err := p.CheckInit(); err != nil {
		return nil, fmt.Errorf("Parameter file '%s': %s", fname, err.Error())
	}

	return p, nil
}

// ReadObstacles reads an obstacle file into the grid's mask. Each line is
// "x y 1", blocking the cell at column x of row y. Blank lines are skipped.
func ReadObstacles(fname string, g *lbm.Grid) error {
	f, err := os.Open(fname)
	if err != nil {
		return fmt.Errorf(
			"Could not open obstacle file '%s': %s", fname, err.Error(),
		)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var x, y, blocked int
		if n, err := fmt.Sscanf(line, "%d %d %d", &x, &y, &blocked); err != nil || n != 3 {
			return fmt.Errorf(
				"Expected 3 values on line %d of obstacle file '%s'.",
				lineNum, fname,
			)
		}

		if x < 0 || x >= g.Nx {
			return fmt.Errorf(
				"Obstacle x-coordinate %d on line %d of '%s' is outside "+
					"the range [0, %d).", x, lineNum, fname, g.Nx,
			)
		} else if y < 0 || y >= g.Ny {
			return fmt.Errorf(
				"Obstacle y-coordinate %d on line %d of '%s' is outside "+
					"the range [0, %d).", y, lineNum, fname, g.Ny,
			)
		} else if blocked != 1 {
			return fmt.Errorf(
				"Obstacle blocked value on line %d of '%s' must be 1, "+
					"but is %d.", lineNum, fname, blocked,
			)
		}

		g.Block(x, y)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf(
			"Could not read obstacle file '%s': %s", fname, err.Error(),
		)
	}

	return nil
}
