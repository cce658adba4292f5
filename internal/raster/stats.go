package raster

import "gonum.org/v1/gonum/stat"

// Stats summarizes the occupancy distribution of a grid.
type Stats struct {
	Cells         int     `json:"cells"`
	FreeRatio     float64 `json:"freeRatio"`
	OccupiedRatio float64 `json:"occupiedRatio"`
	UnknownRatio  float64 `json:"unknownRatio"`
	Mean          float64 `json:"mean"`
	StdDev        float64 `json:"stdDev"`
}

// Summarize computes occupancy ratios and the value distribution of the
// grid.
func Summarize(g *Grid) Stats {
	n := len(g.Data)
	if n == 0 {
		return Stats{}
	}

	values := make([]float64, n)
	var free, occupied, unknown int
	for i, v := range g.Data {
		values[i] = float64(v)
		switch v {
		case Free:
			free++
		case Occupied:
			occupied++
		case Unknown:
			unknown++
		}
	}

	mean, std := stat.MeanStdDev(values, nil)
	total := float64(n)
	return Stats{
		Cells:         n,
		FreeRatio:     float64(free) / total,
		OccupiedRatio: float64(occupied) / total,
		UnknownRatio:  float64(unknown) / total,
		Mean:          mean,
		StdDev:        std,
	}
}
