package stats

import (
	"math"
	"sort"
)

// Mean returns the arithmetic mean of values.
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyInput
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), nil
}

// Median returns the middle value of the sorted input.
// For even-length input it returns the mean of the two middle values.
func Median(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyInput
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid], nil
	}
	return (sorted[mid-1] + sorted[mid]) / 2, nil
}

// Mode returns the most frequent value. When several values tie, the
// smallest is returned so the result is deterministic.
func Mode(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyInput
	}

	counts := make(map[float64]int, len(values))
	for _, v := range values {
		counts[v]++
	}

	best := values[0]
	bestCount := 0
	for v, count := range counts {
		if count > bestCount || (count == bestCount && v < best) {
			best = v
			bestCount = count
		}
	}
	return best, nil
}

// Variance returns the variance of values with the given delta degrees of
// freedom: ddof=0 is the population variance, ddof=1 the sample variance.
func Variance(values []float64, ddof int) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyInput
	}
	if len(values) <= ddof {
		return 0, ErrInsufficientData
	}

	mean, err := Mean(values)
	if err != nil {
		return 0, err
	}

	sumSq := 0.0
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return sumSq / float64(len(values)-ddof), nil
}

// StdDev returns the standard deviation with the given delta degrees of
// freedom. See Variance for the ddof convention.
func StdDev(values []float64, ddof int) (float64, error) {
	variance, err := Variance(values, ddof)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(variance), nil
}

// Percentile returns the p-th percentile of values using linear
// interpolation between closest ranks. p must be in [0, 100].
func Percentile(values []float64, p float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyInput
	}
	if p < 0 || p > 100 {
		return 0, ErrInvalidPercentile
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0], nil
	}

	rank := p / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower], nil
	}

	frac := rank - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac, nil
}

// Covariance returns the sample covariance of paired series x and y.
func Covariance(x, y []float64) (float64, error) {
	if len(x) == 0 || len(y) == 0 {
		return 0, ErrEmptyInput
	}
	if len(x) != len(y) {
		return 0, ErrLengthMismatch
	}
	if len(x) < 2 {
		return 0, ErrInsufficientData
	}

	meanX, _ := Mean(x) //nolint:errcheck // length checked above
	meanY, _ := Mean(y) //nolint:errcheck // length checked above

	sum := 0.0
	for i := range x {
		sum += (x[i] - meanX) * (y[i] - meanY)
	}
	return sum / float64(len(x)-1), nil
}

// Correlation returns the Pearson correlation coefficient of x and y.
// Returns ErrZeroVariance when either series is constant.
func Correlation(x, y []float64) (float64, error) {
	if len(x) == 0 || len(y) == 0 {
		return 0, ErrEmptyInput
	}
	if len(x) != len(y) {
		return 0, ErrLengthMismatch
	}
	if len(x) < 2 {
		return 0, ErrInsufficientData
	}

	meanX, _ := Mean(x) //nolint:errcheck // length checked above
	meanY, _ := Mean(y) //nolint:errcheck // length checked above

	var sumXY, sumXX, sumYY float64
	for i := range x {
		dx := x[i] - meanX
		dy := y[i] - meanY
		sumXY += dx * dy
		sumXX += dx * dx
		sumYY += dy * dy
	}

	if sumXX == 0 || sumYY == 0 {
		return 0, ErrZeroVariance
	}
	return sumXY / math.Sqrt(sumXX*sumYY), nil
}

// MinMaxScale scales values to the [0, 1] range.
// A constant series maps every value to 0.
func MinMaxScale(values []float64) ([]float64, error) {
	if len(values) == 0 {
		return nil, ErrEmptyInput
	}

	minV, maxV := values[0], values[0]
	for _, v := range values[1:] {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	scaled := make([]float64, len(values))
	span := maxV - minV
	if span == 0 {
		return scaled, nil
	}
	for i, v := range values {
		scaled[i] = (v - minV) / span
	}
	return scaled, nil
}

// ZScoreNormalize standardizes values to zero mean and unit variance
// (population variance). Returns ErrZeroVariance for constant input.
func ZScoreNormalize(values []float64) ([]float64, error) {
	if len(values) == 0 {
		return nil, ErrEmptyInput
	}

	mean, _ := Mean(values)   //nolint:errcheck // length checked above
	std, err := StdDev(values, 0)
	if err != nil {
		return nil, err
	}
	if std == 0 {
		return nil, ErrZeroVariance
	}

	normalized := make([]float64, len(values))
	for i, v := range values {
		normalized[i] = (v - mean) / std
	}
	return normalized, nil
}

// Bucket is a single histogram bin. Low is inclusive and High is
// exclusive, except for the last bucket which includes the maximum.
type Bucket struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// Histogram buckets values into equal-width bins spanning [min, max].
// A constant series collapses into a single bucket holding every value.
func Histogram(values []float64, bins int) ([]Bucket, error) {
	if len(values) == 0 {
		return nil, ErrEmptyInput
	}
	if bins <= 0 {
		return nil, ErrInvalidBins
	}

	minV, maxV := values[0], values[0]
	for _, v := range values[1:] {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	if minV == maxV {
		return []Bucket{{Low: minV, High: maxV, Count: len(values)}}, nil
	}

	width := (maxV - minV) / float64(bins)
	buckets := make([]Bucket, bins)
	for i := range buckets {
		buckets[i].Low = minV + float64(i)*width
		buckets[i].High = minV + float64(i+1)*width
	}
	// Avoid an off-by-epsilon open upper edge on the last bucket.
	buckets[bins-1].High = maxV

	for _, v := range values {
		idx := int((v - minV) / width)
		if idx >= bins {
			idx = bins - 1
		}
		buckets[idx].Count++
	}
	return buckets, nil
}

// sturgesBins picks a histogram bin count via Sturges' rule, capped
// at 10 so small terminal outputs stay readable.
func sturgesBins(n int) int {
	bins := int(math.Ceil(math.Log2(float64(n)))) + 1
	if bins < 1 {
		bins = 1
	}
	if bins > 10 {
		bins = 10
	}
	return bins
}

// Description summarizes a numeric series.
type Description struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	P25    float64 `json:"p25"`
	P75    float64 `json:"p75"`
	Sum    float64 `json:"sum"`

	// Histogram buckets the series for a quick distribution overview.
	// The bin count follows Sturges' rule.
	Histogram []Bucket `json:"histogram"`
}

// Describe computes a full descriptive summary of values.
// StdDev uses the sample convention (ddof=1); it is zero for a single value.
func Describe(values []float64) (*Description, error) {
	if len(values) == 0 {
		return nil, ErrEmptyInput
	}

	d := &Description{Count: len(values)}

	d.Mean, _ = Mean(values)     //nolint:errcheck // length checked above
	d.Median, _ = Median(values) //nolint:errcheck // length checked above
	d.P25, _ = Percentile(values, 25) //nolint:errcheck // args validated above
	d.P75, _ = Percentile(values, 75) //nolint:errcheck // args validated above

	if len(values) > 1 {
		d.StdDev, _ = StdDev(values, 1) //nolint:errcheck // length checked above
	}

	d.Histogram, _ = Histogram(values, sturgesBins(len(values))) //nolint:errcheck // args validated above

	d.Min, d.Max = values[0], values[0]
	for _, v := range values {
		if v < d.Min {
			d.Min = v
		}
		if v > d.Max {
			d.Max = v
		}
		d.Sum += v
	}
	return d, nil
}
