package sim

import (
	"github.com/aleksmitov/advanced-hpc/comm"
	"github.com/aleksmitov/advanced-hpc/lbm"
)

// exchangeHalos refreshes both halo rows of the strip. Two paired exchanges
// run in a fixed order: first every rank sends its bottom computational row
// to the rank below and fills its top halo from the rank above, then the
// mirror image. Each exchange is a rendezvous, so all ranks step through
// the protocol in lockstep.
func exchangeHalos(p *comm.Proc, s *lbm.Strip) {
	below, above := ringNeighbors(p.Rank(), p.Size())

	recv := p.Sendrecv(below, packCells(s.Row(1)), above, comm.TagCells)
	unpackCells(s.Row(s.Rows+1), recv.([]float32))

	recv = p.Sendrecv(above, packCells(s.Row(s.Rows)), below, comm.TagCells)
	unpackCells(s.Row(0), recv.([]float32))
}

// exchangeObstacleHalos fills the obstacle mask of both halo rows. The mask
// never changes during a run, so unlike the cell halos this exchange happens
// once, right after the scatter.
func exchangeObstacleHalos(p *comm.Proc, s *lbm.Strip) {
	below, above := ringNeighbors(p.Rank(), p.Size())

	recv := p.Sendrecv(
		below, packObstacles(s.ObstacleRow(1)), above, comm.TagObstacles,
	)
	copy(s.ObstacleRow(s.Rows+1), recv.([]bool))

	recv = p.Sendrecv(
		above, packObstacles(s.ObstacleRow(s.Rows)), below, comm.TagObstacles,
	)
	copy(s.ObstacleRow(0), recv.([]bool))
}

// packCells flattens a row of cells into a fresh wire buffer of nx*NSpeeds
// floats. The copy keeps the sender's row out of the receiver's hands.
func packCells(row []lbm.Cell) []float32 {
	buf := make([]float32, len(row)*lbm.NSpeeds)
	for i := range row {
		copy(buf[i*lbm.NSpeeds:], row[i].Speeds[:])
	}
	return buf
}

// unpackCells copies a wire buffer back into a row of cells.
func unpackCells(row []lbm.Cell, buf []float32) {
	for i := range row {
		copy(row[i].Speeds[:], buf[i*lbm.NSpeeds:(i+1)*lbm.NSpeeds])
	}
}

// packObstacles copies a row of the obstacle mask into a fresh buffer.
func packObstacles(row []bool) []bool {
	return append([]bool(nil), row...)
}
