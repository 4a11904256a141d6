package lbm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testParams() *Params {
	return &Params{
		Nx: 4, Ny: 4, MaxIters: 1, ReynoldsDim: 4,
		Density: 0.1, Accel: 0.005, Omega: 1.0,
	}
}

func TestNewGridEquilibrium(t *testing.T) {
	p := testParams()
	g := NewGrid(p)

	assert.Len(t, g.Cells, 16)
	assert.Len(t, g.Obstacles, 16)

	for _, c := range g.Cells {
		assert.Equal(t, W0*p.Density, c.Speeds[0])
		for k := 1; k <= 4; k++ {
			assert.Equal(t, W1*p.Density, c.Speeds[k])
		}
		for k := 5; k <= 8; k++ {
			assert.Equal(t, W2*p.Density, c.Speeds[k])
		}
	}

	for _, blocked := range g.Obstacles {
		assert.False(t, blocked)
	}
}

func TestFlowCells(t *testing.T) {
	g := NewGrid(testParams())
	assert.Equal(t, 16, g.FlowCells())

	g.Block(1, 2)
	g.Block(3, 0)
	assert.Equal(t, 14, g.FlowCells())

	// Blocking the same cell twice does not double count.
	g.Block(1, 2)
	assert.Equal(t, 14, g.FlowCells())
}

func TestIndexRowMajor(t *testing.T) {
	g := NewGrid(testParams())
	assert.Equal(t, 0, g.Index(0, 0))
	assert.Equal(t, 3, g.Index(3, 0))
	assert.Equal(t, 4, g.Index(0, 1))
	assert.Equal(t, 11, g.Index(3, 2))
}

func TestMomentsOfRestCell(t *testing.T) {
	c := restCell(0.1)
	rho, ux, uy := c.Moments()

	assert.InEpsilon(t, 0.1, float64(rho), 1e-6)
	assert.Equal(t, float32(0), ux)
	assert.Equal(t, float32(0), uy)
}

func TestTotalDensity(t *testing.T) {
	p := testParams()
	g := NewGrid(p)

	want := float64(p.Density) * 16
	assert.InEpsilon(t, want, float64(TotalDensity(g.Cells)), 1e-5)
}

func TestCheckInit(t *testing.T) {
	table := []struct {
		name   string
		modify func(*Params)
		ok     bool
	}{
		{"valid", func(p *Params) {}, true},
		{"zero nx", func(p *Params) { p.Nx = 0 }, false},
		{"negative ny", func(p *Params) { p.Ny = -2 }, false},
		{"negative iters", func(p *Params) { p.MaxIters = -1 }, false},
		{"zero iters", func(p *Params) { p.MaxIters = 0 }, true},
		{"zero density", func(p *Params) { p.Density = 0 }, false},
		{"zero omega", func(p *Params) { p.Omega = 0 }, false},
		{"omega at 2", func(p *Params) { p.Omega = 2 }, false},
		{"omega above 2", func(p *Params) { p.Omega = 2.5 }, false},
	}

	for _, test := range table {
		p := testParams()
		test.modify(p)
		err := p.CheckInit()

		if test.ok && err != nil {
			t.Errorf("%s) unexpected error: %s", test.name, err.Error())
		} else if !test.ok && err == nil {
			t.Errorf("%s) expected an error, got none", test.name)
		}
	}
}

func TestViscosity(t *testing.T) {
	p := testParams()
	p.Omega = 1.0
	assert.InEpsilon(t, 1.0/6.0, float64(p.Viscosity()), 1e-6)

	p.Omega = 2.0 / 3.0
	assert.InEpsilon(t, 1.0/3.0, float64(p.Viscosity()), 1e-5)
}
