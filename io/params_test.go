package io

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleksmitov/advanced-hpc/lbm"
)

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	fname := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fname, []byte(contents), 0666))
	return fname
}

func TestReadParams(t *testing.T) {
	fname := writeFile(t, "input.params",
		"128\n256\n1000\n128\n0.1\n0.005\n1.7\n")

	p, err := ReadParams(fname)
	require.NoError(t, err)

	assert.Equal(t, 128, p.Nx)
	assert.Equal(t, 256, p.Ny)
	assert.Equal(t, 1000, p.MaxIters)
	assert.Equal(t, 128, p.ReynoldsDim)
	assert.Equal(t, float32(0.1), p.Density)
	assert.Equal(t, float32(0.005), p.Accel)
	assert.Equal(t, float32(1.7), p.Omega)
}

func TestReadParamsErrors(t *testing.T) {
	table := []struct {
		name     string
		contents string
	}{
		{"empty", ""},
		{"truncated", "128\n128\n1000\n"},
		{"non-numeric", "128\n128\nten\n128\n0.1\n0.005\n1.7\n"},
		{"unstable omega", "128\n128\n1000\n128\n0.1\n0.005\n2.5\n"},
		{"zero width", "0\n128\n1000\n128\n0.1\n0.005\n1.7\n"},
	}

	for _, test := range table {
		fname := writeFile(t, "input.params", test.contents)
		if _, err := ReadParams(fname); err == nil {
			t.Errorf("%s) expected an error, got none", test.name)
		}
	}

	_, err := ReadParams(filepath.Join(t.TempDir(), "missing.params"))
	assert.Error(t, err)
}

func testGrid() *lbm.Grid {
	return lbm.NewGrid(&lbm.Params{
		Nx: 4, Ny: 4, MaxIters: 1, ReynoldsDim: 4,
		Density: 0.1, Accel: 0.005, Omega: 1.0,
	})
}

func TestReadObstacles(t *testing.T) {
	fname := writeFile(t, "obstacles.dat", "0 0 1\n3 1 1\n\n2 3 1\n")

	g := testGrid()
	require.NoError(t, ReadObstacles(fname, g))

	assert.True(t, g.Obstacles[g.Index(0, 0)])
	assert.True(t, g.Obstacles[g.Index(3, 1)])
	assert.True(t, g.Obstacles[g.Index(2, 3)])
	assert.Equal(t, 13, g.FlowCells())
}

func TestReadObstaclesErrors(t *testing.T) {
	table := []struct {
		name     string
		contents string
	}{
		{"two fields", "1 1\n"},
		{"non-numeric", "1 one 1\n"},
		{"x out of range", "4 1 1\n"},
		{"negative x", "-1 1 1\n"},
		{"y out of range", "1 4 1\n"},
		{"blocked not 1", "1 1 2\n"},
		{"blocked zero", "1 1 0\n"},
	}

	for _, test := range table {
		fname := writeFile(t, "obstacles.dat", test.contents)
		if err := ReadObstacles(fname, testGrid()); err == nil {
			t.Errorf("%s) expected an error, got none", test.name)
		}
	}

	err := ReadObstacles(filepath.Join(t.TempDir(), "missing.dat"), testGrid())
	assert.Error(t, err)
}

func TestReadObstaclesEmptyFileBlocksNothing(t *testing.T) {
	fname := writeFile(t, "obstacles.dat", "")

	g := testGrid()
	require.NoError(t, ReadObstacles(fname, g))
	assert.Equal(t, 16, g.FlowCells())
}
