package model

import "fmt"

// Grid is the ordered support every density is sampled on.
type Grid []float64

func (g Grid) Min() float64 {
	return g[0]
}

func (g Grid) Max() float64 {
	return g[len(g)-1]
}

// Density holds one non-negative value per grid point.
type Density []float64

type Direction int

const (
	Above Direction = 1
	Below Direction = 2
)

func (d Direction) String() string {
	switch d {
	case Above:
		return "above"
	case Below:
		return "below"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Evidence is one named likelihood in the order it is applied.
type Evidence struct {
	Name       string
	Likelihood Density
}

type Clip struct {
	Lower float64
	Upper float64
}
