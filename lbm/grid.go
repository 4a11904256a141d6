// Package lbm implements the D2Q9 lattice-Boltzmann scheme with BGK
// collisions. 'D2' indicates a 2-dimensional grid and 'Q9' indicates nine
// discrete velocities per cell, numbered as follows:
//
//	6 2 5
//	 \|/
//	3-0-1
//	 /|\
//	7 4 8
//
// Grids are stored in row-major order, so the cell at column i of row j
// occupies linear index j*nx + i.
package lbm

// NSpeeds is the number of discrete velocities per cell.
const NSpeeds = 9

// Lattice weights of the rest, axial, and diagonal speeds.
const (
	W0 float32 = 4.0 / 9.0
	W1 float32 = 1.0 / 9.0
	W2 float32 = 1.0 / 36.0
)

// CSq is the square of the lattice speed of sound.
const CSq float32 = 1.0 / 3.0

// Cell holds the nine speed populations of one lattice site.
type Cell struct {
	Speeds [NSpeeds]float32
}

// Moments returns the local density and the velocity components of a cell.
func (c *Cell) Moments() (rho, ux, uy float32) {
	s := &c.Speeds

	for k := 0; k < NSpeeds; k++ {
		rho += s[k]
	}

	ux = (s[1] + s[5] + s[8] - (s[3] + s[6] + s[7])) / rho
	uy = (s[2] + s[5] + s[6] - (s[4] + s[7] + s[8])) / rho
	return rho, ux, uy
}

// Grid is the full simulation domain: a row-major array of cells and an
// identically-shaped obstacle mask. Only rank 0 ever holds one of these;
// the ranks work on Strips.
type Grid struct {
	Nx, Ny    int
	Cells     []Cell
	Obstacles []bool
}

// NewGrid returns a grid of the given parameters with every cell set to the
// equilibrium distribution for a fluid at rest and no obstacles.
func NewGrid(p *Params) *Grid {
	g := &Grid{
		Nx:        p.Nx,
		Ny:        p.Ny,
		Cells:     make([]Cell, p.Nx*p.Ny),
		Obstacles: make([]bool, p.Nx*p.Ny),
	}

	eq := restCell(p.Density)
	for i := range g.Cells {
		g.Cells[i] = eq
	}

	return g
}

// restCell returns the equilibrium populations of a cell with density rho
// and zero velocity.
func restCell(rho float32) Cell {
	c := Cell{}
	c.Speeds[0] = W0 * rho
	for k := 1; k <= 4; k++ {
		c.Speeds[k] = W1 * rho
	}
	for k := 5; k <= 8; k++ {
		c.Speeds[k] = W2 * rho
	}
	return c
}

// Index returns the linear index of the cell at column i of row j.
func (g *Grid) Index(i, j int) int { return j*g.Nx + i }

// Block marks the cell at column x of row y as an obstacle.
func (g *Grid) Block(x, y int) { g.Obstacles[g.Index(x, y)] = true }

// FlowCells returns the number of cells not blocked by an obstacle.
func (g *Grid) FlowCells() int {
	n := 0
	for _, blocked := range g.Obstacles {
		if !blocked {
			n++
		}
	}
	return n
}

// Row returns the cells of global row j.
func (g *Grid) Row(j int) []Cell { return g.Cells[j*g.Nx : (j+1)*g.Nx] }

// ObstacleRow returns the obstacle mask of global row j.
func (g *Grid) ObstacleRow(j int) []bool {
	return g.Obstacles[j*g.Nx : (j+1)*g.Nx]
}

// TotalDensity sums every population in cells. In the absence of bugs it
// stays constant from one timestep to the next.
func TotalDensity(cells []Cell) float32 {
	total := float32(0)
	for i := range cells {
		for k := 0; k < NSpeeds; k++ {
			total += cells[i].Speeds[k]
		}
	}
	return total
}

// Strip is the local subgrid owned by one rank: Rows computational rows of
// width Nx, plus one halo row below (local row 0) and one above (local row
// Rows+1). Cells and Tmp alternate during a timestep: Propagate reads Cells
// and writes Tmp, Rebound and Collide read Tmp and write Cells.
type Strip struct {
	Nx, Rows  int
	Cells     []Cell
	Tmp       []Cell
	Obstacles []bool
}

// NewStrip returns a zeroed strip holding rows computational rows of width
// nx plus the two halo rows.
func NewStrip(nx, rows int) *Strip {
	return &Strip{
		Nx:        nx,
		Rows:      rows,
		Cells:     make([]Cell, nx*(rows+2)),
		Tmp:       make([]Cell, nx*(rows+2)),
		Obstacles: make([]bool, nx*(rows+2)),
	}
}

// Row returns the cells of local row j. Row 0 and row Rows+1 are the halos.
func (s *Strip) Row(j int) []Cell { return s.Cells[j*s.Nx : (j+1)*s.Nx] }

// ObstacleRow returns the obstacle mask of local row j.
func (s *Strip) ObstacleRow(j int) []bool {
	return s.Obstacles[j*s.Nx : (j+1)*s.Nx]
}
