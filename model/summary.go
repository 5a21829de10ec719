package model

import "fmt"

type QuantileValue struct {
	Value    float64 `json:"v"`
	Quantile float64 `json:"q"`
}

type ConfidenceInterval struct {
	Level float64        `json:"level,omitempty"`
	Lower *QuantileValue `json:"l,omitempty"`
	Upper *QuantileValue `json:"u,omitempty"`
}

func (c *ConfidenceInterval) Width() float64 {
	if c == nil || c.Lower == nil || c.Upper == nil {
		return 0
	}
	return c.Upper.Value - c.Lower.Value
}

type TailProbability struct {
	Threshold   float64   `json:"threshold"`
	Direction   Direction `json:"direction"`
	Probability float64   `json:"p"`
	// Clamped is set when the threshold fell outside the grid.
	Clamped bool `json:"clamped,omitempty"`
}

type Summary struct {
	Mean      float64                        `json:"mean"`
	Median    float64                        `json:"median"`
	Intervals map[string]*ConfidenceInterval `json:"intervals,omitempty"`
	Tails     []*TailProbability             `json:"tails,omitempty"`
}

func LevelKey(level float64) string {
	return fmt.Sprintf("%v", level)
}

func (s *Summary) GetInterval(level float64) (*ConfidenceInterval, bool) {
	if s == nil || s.Intervals == nil {
		return nil, false
	}
	interval, ok := s.Intervals[LevelKey(level)]
	return interval, ok
}

func (s *Summary) GetTail(threshold float64, direction Direction) (*TailProbability, bool) {
	if s == nil {
		return nil, false
	}
	for _, tail := range s.Tails {
		if tail.Threshold == threshold && tail.Direction == direction {
			return tail, true
		}
	}
	return nil, false
}
