package report

import (
	"fmt"
	"math"
	"sort"
)

// Threshold offset from the mean used to classify question strengths and weaknesses.
const strengthOffset = 0.2

// Mean returns the arithmetic mean of xs, or 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// Median returns the median of xs, or 0 for an empty slice.
func Median(xs []float64) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// StdDev returns the population standard deviation of xs.
func StdDev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := Mean(xs)
	var acc float64
	for _, x := range xs {
		d := x - m
		acc += d * d
	}
	return math.Sqrt(acc / float64(len(xs)))
}

// MinMax returns the smallest and largest values in xs.
func MinMax(xs []float64) (min, max float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	min, max = xs[0], xs[0]
	for _, x := range xs[1:] {
		if x < min {
			min = x
		}
		if x > max {
			max = x
		}
	}
	return min, max
}

// QuestionMeans computes the per-question average across score rows.
// Short rows contribute only to the questions they cover.
func QuestionMeans(rows [][]float64, questions int) []float64 {
	sums := make([]float64, questions)
	counts := make([]int, questions)
	for _, row := range rows {
		for i := 0; i < questions && i < len(row); i++ {
			sums[i] += row[i]
			counts[i]++
		}
	}
	means := make([]float64, questions)
	for i := range means {
		if counts[i] > 0 {
			means[i] = Round2(sums[i] / float64(counts[i]))
		}
	}
	return means
}

// StrengthsWeaknesses splits question labels into strengths (at or above
// mean plus the offset) and weaknesses (at or below mean minus the offset).
func StrengthsWeaknesses(questionMeans []float64, labels []string) (strengths, weaknesses []string) {
	m := Mean(questionMeans)
	for i, qm := range questionMeans {
		if i >= len(labels) {
			break
		}
		switch {
		case qm >= m+strengthOffset:
			strengths = append(strengths, labels[i])
		case qm <= m-strengthOffset:
			weaknesses = append(weaknesses, labels[i])
		}
	}
	return strengths, weaknesses
}

// RatingLabel maps a mean score to its qualitative band.
func RatingLabel(mean float64) string {
	switch {
	case mean >= 4.5:
		return "Excellent"
	case mean >= 4.0:
		return "Very Good"
	case mean >= 3.5:
		return "Good"
	case mean >= 3.0:
		return "Satisfactory"
	default:
		return "Needs Improvement"
	}
}

// Recommendation composes a short advisory line for a score group.
func Recommendation(mean float64, weaknesses []string) string {
	label := RatingLabel(mean)
	if len(weaknesses) == 0 {
		return fmt.Sprintf("Overall rating %s (%.2f). Maintain current practices.", label, mean)
	}
	return fmt.Sprintf("Overall rating %s (%.2f). Focus improvement on: %s.", label, mean, joinComma(weaknesses))
}

// Pearson returns the Pearson correlation coefficient of two equally
// sized samples, or 0 when it is undefined.
func Pearson(xs, ys []float64) float64 {
	n := len(xs)
	if n == 0 || n != len(ys) {
		return 0
	}
	mx, my := Mean(xs), Mean(ys)
	var sxy, sxx, syy float64
	for i := 0; i < n; i++ {
		dx := xs[i] - mx
		dy := ys[i] - my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return 0
	}
	return sxy / math.Sqrt(sxx*syy)
}

// Round2 rounds to two decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func joinComma(ss []string) string {
	out := ""
	for i, s := range ss {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}
