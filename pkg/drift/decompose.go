package drift

// Decomposer extracts the trend component of a seasonal time series. The
// returned slice covers only the positions where the smoothing window
// could produce a value; the edge positions are already trimmed.
type Decomposer interface {
	Trend(series []float64, period int) []float64
}

// MovingAverageDecomposer extracts the trend with a centered moving
// average, the classical decomposition filter: for an odd period the
// window is period wide with equal weights, for an even period the window
// is period+1 wide with half weights at both ends.
type MovingAverageDecomposer struct{}

// Trend returns the smoothed trend of series. Input shorter than the
// smoothing window yields an empty trend.
func (MovingAverageDecomposer) Trend(series []float64, period int) []float64 {
	if period < 1 || len(series) == 0 {
		return nil
	}

	weights := trendFilter(period)
	half := len(weights) / 2
	valid := len(series) - 2*half
	if valid <= 0 {
		return nil
	}

	trend := make([]float64, valid)
	for i := 0; i < valid; i++ {
		var sum float64
		for j, w := range weights {
			sum += w * series[i+j]
		}
		trend[i] = sum
	}
	return trend
}

func trendFilter(period int) []float64 {
	if period%2 == 1 {
		weights := make([]float64, period)
		for i := range weights {
			weights[i] = 1 / float64(period)
		}
		return weights
	}
	// Even period: period+1 taps with half weight at both ends so the
	// window stays centered.
	weights := make([]float64, period+1)
	for i := range weights {
		weights[i] = 1 / float64(period)
	}
	weights[0] = 0.5 / float64(period)
	weights[period] = 0.5 / float64(period)
	return weights
}
