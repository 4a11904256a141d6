package lbm

import (
	"fmt"
)

// Params holds the run parameters. All fields are fixed once a run starts.
type Params struct {
	Nx, Ny      int     // grid width and height in cells
	MaxIters    int     // number of timesteps
	ReynoldsDim int     // characteristic dimension for the Reynolds number
	Density     float32 // initial density per cell
	Accel       float32 // density redistribution of the accelerate step
	Omega       float32 // BGK relaxation parameter
}

// CheckInit returns an error describing the first parameter value that is
// outside its allowed range.
func (p *Params) CheckInit() error {
	if p.Nx <= 0 {
		return fmt.Errorf("Grid width must be positive, but is %d.", p.Nx)
	} else if p.Ny <= 0 {
		return fmt.Errorf("Grid height must be positive, but is %d.", p.Ny)
	} else if p.MaxIters < 0 {
		return fmt.Errorf(
			"Iteration count must not be negative, but is %d.", p.MaxIters,
		)
	} else if p.Density <= 0 {
		return fmt.Errorf("Density must be positive, but is %g.", p.Density)
	} else if p.Omega <= 0 || p.Omega >= 2 {
		return fmt.Errorf(
			"Omega must be in the range (0, 2) for BGK stability, "+
				"but is %g.", p.Omega,
		)
	}

	return nil
}

// Viscosity returns the kinematic viscosity implied by the relaxation
// parameter.
func (p *Params) Viscosity() float32 {
	return (2/p.Omega - 1) / 6
}
