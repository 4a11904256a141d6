// Package sim runs the distributed lattice-Boltzmann computation: it
// decomposes the grid into row strips, hands one strip to each of a group
// of ranks, and drives every rank through the scatter, timestep loop,
// gather, report sequence. Ranks are goroutines that communicate only
// through the comm package.
package sim

import (
	"fmt"
	"log"
	"sync"

	"github.com/aleksmitov/advanced-hpc/comm"
	"github.com/aleksmitov/advanced-hpc/lbm"
)

// Verbose makes rank 0 log its per-step velocity sum and strip density.
// Set it before calling Run.
var Verbose = false

// Run evolves the grid for p.MaxIters timesteps across the given number of
// ranks and returns the average-velocity trace, one value per timestep. The
// final flow state is gathered back into g. Obstacles in g are left as
// loaded.
func Run(p *lbm.Params, g *lbm.Grid, procs int) ([]float64, error) {
	if procs <= 0 {
		return nil, fmt.Errorf(
			"Rank count must be positive, but is %d.", procs,
		)
	} else if p.Ny < procs {
		return nil, fmt.Errorf(
			"Cannot split %d rows across %d ranks: the decomposition "+
				"needs at least one row per rank.", p.Ny, procs,
		)
	}

	flow := g.FlowCells()
	world := comm.NewWorld(procs)
	avVels := make([]float64, p.MaxIters)

	wg := sync.WaitGroup{}
	for r := 1; r < procs; r++ {
		wg.Add(1)
		go func(r int) {
			defer wg.Done()
			rankMain(world.Proc(r), p, nil, 0, nil)
		}(r)
	}
	rankMain(world.Proc(0), p, g, flow, avVels)
	wg.Wait()

	return avVels, nil
}

// Reynolds returns the Reynolds number of the finished run: the final
// average velocity scaled by the characteristic dimension over the
// viscosity. A zero-iteration run has no flow and reports zero.
func Reynolds(p *lbm.Params, avVels []float64) float64 {
	if len(avVels) == 0 {
		return 0
	}
	return avVels[len(avVels)-1] *
		float64(p.ReynoldsDim) / float64(p.Viscosity())
}

// rankMain is the life of a single rank. Rank 0 additionally owns the
// global grid: it feeds the other ranks their strips, collects them back
// afterwards, and folds everyone's velocity sums into avVels.
func rankMain(
	proc *comm.Proc, p *lbm.Params, global *lbm.Grid, flow int,
	avVels []float64,
) {
	rank, procs := proc.Rank(), proc.Size()
	rows := stripRows(rank, procs, p.Ny)
	off := stripOffset(rank, procs, p.Ny)

	s := lbm.NewStrip(p.Nx, rows)
	vels := make([]float64, p.MaxIters)

	scatter(proc, p, global, s)
	exchangeObstacleHalos(proc, s)

	// The row driven by the accelerate step, if this rank owns it.
	accelRow := p.Ny - 2
	ownsAccel := accelRow >= off && accelRow < off+rows

	for t := 0; t < p.MaxIters; t++ {
		if ownsAccel {
			lbm.AccelerateFlow(p, s, accelRow-off+1)
		}

		// Halos are refreshed after the accelerate step, so a driven row on
		// a strip edge reaches the neighbor's halo already accelerated.
		exchangeHalos(proc, s)

		lbm.Propagate(s)
		lbm.Rebound(s)
		lbm.Collide(p, s)

		vels[t] = lbm.TotalVelocity(s)

		if rank == 0 && t%500 == 0 {
			log.Printf("Iteration %d/%d", t, p.MaxIters)
		}
		if Verbose && rank == 0 {
			strip := s.Cells[s.Nx : (s.Rows+1)*s.Nx]
			log.Printf(
				"Timestep %d: rank 0 velocity sum %.12E, strip density %.12E",
				t, vels[t], lbm.TotalDensity(strip),
			)
		}
	}

	gather(proc, p, global, s)

	if rank == 0 {
		copy(avVels, vels)
		for r := 1; r < procs; r++ {
			rv := proc.Recv(r, comm.TagVels).([]float64)
			for t := range avVels {
				avVels[t] += rv[t]
			}
		}

		// The divide by 100 pairs with the factor 10000 inside the square
		// root of the per-cell sums. A fully blocked grid has no flow
		// cells and an all-zero trace; leave it alone rather than divide
		// by zero.
		if flow > 0 {
			for t := range avVels {
				avVels[t] /= float64(flow) * 100
			}
		}
	} else {
		proc.Ssend(0, comm.TagVels, append([]float64(nil), vels...))
	}
}

// scatter distributes the global grid across the ranks. Rank 0 copies out
// its own strip and sends every other rank its rows one at a time, cells
// first, then the obstacle mask, filling only computational rows.
func scatter(proc *comm.Proc, p *lbm.Params, global *lbm.Grid, s *lbm.Strip) {
	if proc.Rank() != 0 {
		for j := 1; j <= s.Rows; j++ {
			unpackCells(s.Row(j), proc.Recv(0, comm.TagCells).([]float32))
			copy(s.ObstacleRow(j), proc.Recv(0, comm.TagObstacles).([]bool))
		}
		return
	}

	for j := 1; j <= s.Rows; j++ {
		copy(s.Row(j), global.Row(j-1))
		copy(s.ObstacleRow(j), global.ObstacleRow(j-1))
	}

	for r := 1; r < proc.Size(); r++ {
		rOff := stripOffset(r, proc.Size(), p.Ny)
		rRows := stripRows(r, proc.Size(), p.Ny)

		for j := rOff; j < rOff+rRows; j++ {
			proc.Ssend(r, comm.TagCells, packCells(global.Row(j)))
			proc.Ssend(r, comm.TagObstacles,
				packObstacles(global.ObstacleRow(j)))
		}
	}
}

// gather is the inverse of scatter: rank 0 copies its strip back into the
// global grid and receives every other rank's rows.
func gather(proc *comm.Proc, p *lbm.Params, global *lbm.Grid, s *lbm.Strip) {
	if proc.Rank() != 0 {
		for j := 1; j <= s.Rows; j++ {
			proc.Ssend(0, comm.TagCells, packCells(s.Row(j)))
			proc.Ssend(0, comm.TagObstacles, packObstacles(s.ObstacleRow(j)))
		}
		return
	}

	for j := 1; j <= s.Rows; j++ {
		copy(global.Row(j-1), s.Row(j))
		copy(global.ObstacleRow(j-1), s.ObstacleRow(j))
	}

	for r := 1; r < proc.Size(); r++ {
		rOff := stripOffset(r, proc.Size(), p.Ny)
		rRows := stripRows(r, proc.Size(), p.Ny)

		for j := rOff; j < rOff+rRows; j++ {
			unpackCells(global.Row(j), proc.Recv(r, comm.TagCells).([]float32))
			copy(global.ObstacleRow(j),
				proc.Recv(r, comm.TagObstacles).([]bool))
		}
	}
}
