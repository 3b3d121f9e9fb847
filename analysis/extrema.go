// Package analysis derives insights from simulated concentration
// series: strict local extrema, peak/trough records, per-track
// statistics and therapeutic-window excursions.
package analysis

// FindExtrema scans a series for strict local extrema and returns the
// indices of local minima and local maxima, each in ascending order.
//
// An interior index i (1 <= i <= len-2) is a minimum when
// series[i] < series[i-1] and series[i] < series[i+1], and a maximum
// under the mirrored strict comparison. Plateau points never qualify
// on either side, endpoints are never candidates, and the two result
// sets are disjoint by construction. Series with fewer than 3 points
// yield two empty results; the function is total over any finite
// series.
func FindExtrema(series []float64) (minima, maxima []int) {
	for i := 1; i < len(series)-1; i++ {
		switch {
		case series[i] < series[i-1] && series[i] < series[i+1]:
			minima = append(minima, i)
		case series[i] > series[i-1] && series[i] > series[i+1]:
			maxima = append(maxima, i)
		}
	}
	return minima, maxima
}
