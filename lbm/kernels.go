package lbm

import (
	"github.com/chewxy/math32"
)

// The four kernels below make up one timestep, applied in the order
// AccelerateFlow, Propagate, Rebound, Collide. Halo rows must be valid when
// Propagate runs; the other three touch only computational rows.

// AccelerateFlow injects the driving body force into local row j of the
// strip. Cells whose west-side populations would go negative are left
// unchanged, as are obstacle cells.
func AccelerateFlow(p *Params, s *Strip, j int) {
	w1 := p.Density * p.Accel / 9
	w2 := p.Density * p.Accel / 36

	row := s.Row(j)
	blocked := s.ObstacleRow(j)

	for i := 0; i < s.Nx; i++ {
		sp := &row[i].Speeds
		if blocked[i] || sp[3]-w1 <= 0 || sp[6]-w2 <= 0 || sp[7]-w2 <= 0 {
			continue
		}

		// Increase the east-side densities and decrease the west-side ones.
		sp[1] += w1
		sp[5] += w2
		sp[8] += w2
		sp[3] -= w1
		sp[6] -= w2
		sp[7] -= w2
	}
}

// Propagate streams each population one cell along its direction, reading
// from Cells and writing to Tmp. Columns wrap periodically; the vertical
// neighbors at the strip edges come from the halo rows.
func Propagate(s *Strip) {
	nx := s.Nx

	for j := 1; j <= s.Rows; j++ {
		north := s.Cells[(j+1)*nx : (j+2)*nx]
		mid := s.Cells[j*nx : (j+1)*nx]
		south := s.Cells[(j-1)*nx : j*nx]
		out := s.Tmp[j*nx : (j+1)*nx]

		for i := 0; i < nx; i++ {
			xw := (i - 1 + nx) % nx
			xe := (i + 1) % nx

			sp := &out[i].Speeds
			sp[0] = mid[i].Speeds[0]
			sp[1] = mid[xw].Speeds[1]   // east
			sp[2] = south[i].Speeds[2]  // north
			sp[3] = mid[xe].Speeds[3]   // west
			sp[4] = north[i].Speeds[4]  // south
			sp[5] = south[xw].Speeds[5] // north-east
			sp[6] = south[xe].Speeds[6] // north-west
			sp[7] = north[xe].Speeds[7] // south-west
			sp[8] = north[xw].Speeds[8] // south-east
		}
	}
}

// Rebound bounces populations back at obstacle cells by copying them from
// Tmp into Cells with opposite directions swapped. The rest speed is not
// written, and fluid cells are not touched.
func Rebound(s *Strip) {
	for j := 1; j <= s.Rows; j++ {
		row := s.Row(j)
		tmp := s.Tmp[j*s.Nx : (j+1)*s.Nx]
		blocked := s.ObstacleRow(j)

		for i := 0; i < s.Nx; i++ {
			if !blocked[i] {
				continue
			}

			sp, tp := &row[i].Speeds, &tmp[i].Speeds
			sp[1], sp[3] = tp[3], tp[1]
			sp[2], sp[4] = tp[4], tp[2]
			sp[5], sp[7] = tp[7], tp[5]
			sp[6], sp[8] = tp[8], tp[6]
		}
	}
}

// Collide relaxes every fluid cell toward its local equilibrium, reading the
// post-propagate populations from Tmp and writing the result into Cells.
func Collide(p *Params, s *Strip) {
	for j := 1; j <= s.Rows; j++ {
		row := s.Row(j)
		tmp := s.Tmp[j*s.Nx : (j+1)*s.Nx]
		blocked := s.ObstacleRow(j)

		for i := 0; i < s.Nx; i++ {
			if blocked[i] {
				continue
			}

			rho, ux, uy := tmp[i].Moments()
			usq := ux*ux + uy*uy

			// Component of the velocity along each lattice direction.
			var u [NSpeeds]float32
			u[1] = ux
			u[2] = uy
			u[3] = -ux
			u[4] = -uy
			u[5] = ux + uy
			u[6] = -ux + uy
			u[7] = -ux - uy
			u[8] = ux - uy

			var dEq [NSpeeds]float32
			dEq[0] = W0 * rho * (1 - usq/(2*CSq))
			for k := 1; k < NSpeeds; k++ {
				w := W1
				if k >= 5 {
					w = W2
				}
				dEq[k] = w * rho * (1 + u[k]/CSq +
					(u[k]*u[k])/(2*CSq*CSq) - usq/(2*CSq))
			}

			for k := 0; k < NSpeeds; k++ {
				row[i].Speeds[k] = tmp[i].Speeds[k] +
					p.Omega*(dEq[k]-tmp[i].Speeds[k])
			}
		}
	}
}

// TotalVelocity returns this strip's contribution to the average-velocity
// reduction: the sum of sqrt(10000 * u^2) over its fluid cells, read from
// the post-collision populations. Rank 0 divides the cross-rank total by
// 100 * flowCells, which together with the 10000 under the root reduces to
// the plain mean velocity magnitude. The output file format depends on this
// exact algebraic form.
func TotalVelocity(s *Strip) float64 {
	tot := 0.0

	for j := 1; j <= s.Rows; j++ {
		row := s.Row(j)
		blocked := s.ObstacleRow(j)

		for i := 0; i < s.Nx; i++ {
			if blocked[i] {
				continue
			}

			_, ux, uy := row[i].Moments()
			tot += float64(math32.Sqrt(10000 * (ux*ux + uy*uy)))
		}
	}

	return tot
}
