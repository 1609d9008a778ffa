package report

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ironsheep/fontfit-mcp/internal/fontfit"
)

// Summary aggregates the fitted font sizes of a task. The size statistics
// are absent when nothing was fitted.
type Summary struct {
	TotalTexts      int `json:"total_texts"`
	FittedTexts     int `json:"fitted_texts"`
	UniqueFontSizes int `json:"unique_font_sizes"`
	// FontSizeDistribution counts fitted regions per size rounded to the
	// nearest integer (half to even).
	FontSizeDistribution map[int]int `json:"font_size_distribution"`
	MostCommonSize       *int        `json:"most_common_size,omitempty"`
	AverageFontSize      *float64    `json:"average_font_size,omitempty"`
	MinFontSize          *float64    `json:"min_font_size,omitempty"`
	MaxFontSize          *float64    `json:"max_font_size,omitempty"`
}

// Generate summarizes regions. When several sizes share the highest count
// the one seen first in region order is the most common.
func Generate(regions []fontfit.TextRegion) Summary {
	s := Summary{
		TotalTexts:           len(regions),
		FontSizeDistribution: map[int]int{},
	}

	var sizes []float64
	var order []int
	for _, r := range regions {
		if r.FittedFontSize == nil || *r.FittedFontSize == 0 {
			continue
		}
		size := *r.FittedFontSize
		sizes = append(sizes, size)

		key := int(math.RoundToEven(size))
		if _, seen := s.FontSizeDistribution[key]; !seen {
			order = append(order, key)
		}
		s.FontSizeDistribution[key]++
	}

	s.FittedTexts = len(sizes)
	s.UniqueFontSizes = len(s.FontSizeDistribution)
	if len(sizes) == 0 {
		return s
	}

	most := order[0]
	for _, k := range order[1:] {
		if s.FontSizeDistribution[k] > s.FontSizeDistribution[most] {
			most = k
		}
	}
	avg := round1(stat.Mean(sizes, nil))
	lo := round1(floats.Min(sizes))
	hi := round1(floats.Max(sizes))

	s.MostCommonSize = &most
	s.AverageFontSize = &avg
	s.MinFontSize = &lo
	s.MaxFontSize = &hi
	return s
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
