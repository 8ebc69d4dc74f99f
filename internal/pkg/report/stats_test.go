package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 3.0, Mean([]float64{1, 2, 3, 4, 5}))
	assert.InDelta(t, 2.5, Mean([]float64{2, 3}), 1e-9)
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 0.0, Median(nil))
	assert.Equal(t, 3.0, Median([]float64{5, 1, 3}))
	assert.Equal(t, 2.5, Median([]float64{4, 1, 2, 3}))

	// Input must not be reordered
	xs := []float64{5, 1, 3}
	Median(xs)
	assert.Equal(t, []float64{5, 1, 3}, xs)
}

func TestStdDev(t *testing.T) {
	assert.Equal(t, 0.0, StdDev(nil))
	assert.Equal(t, 0.0, StdDev([]float64{4, 4, 4}))
	assert.InDelta(t, 2.0, StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-9)
}

func TestMinMax(t *testing.T) {
	min, max := MinMax(nil)
	assert.Equal(t, 0.0, min)
	assert.Equal(t, 0.0, max)

	min, max = MinMax([]float64{3, 1, 4, 1, 5})
	assert.Equal(t, 1.0, min)
	assert.Equal(t, 5.0, max)
}

func TestQuestionMeans(t *testing.T) {
	rows := [][]float64{
		{4, 2, 5},
		{2, 4},
	}
	means := QuestionMeans(rows, 3)
	assert.Equal(t, []float64{3, 3, 5}, means)
}

func TestStrengthsWeaknesses(t *testing.T) {
	// Mean is 3.0, offset 0.2
	means := []float64{3.5, 2.5, 3.0}
	labels := []string{"Q1", "Q2", "Q3"}

	strengths, weaknesses := StrengthsWeaknesses(means, labels)
	assert.Equal(t, []string{"Q1"}, strengths)
	assert.Equal(t, []string{"Q2"}, weaknesses)
}

func TestRatingLabel(t *testing.T) {
	tests := []struct {
		mean float64
		want string
	}{
		{4.8, "Excellent"},
		{4.5, "Excellent"},
		{4.2, "Very Good"},
		{3.7, "Good"},
		{3.0, "Satisfactory"},
		{2.1, "Needs Improvement"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RatingLabel(tt.mean), "mean %.1f", tt.mean)
	}
}

func TestRecommendation(t *testing.T) {
	got := Recommendation(4.6, nil)
	assert.Contains(t, got, "Excellent")
	assert.Contains(t, got, "Maintain current practices")

	got = Recommendation(2.8, []string{"Q3", "Q7"})
	assert.Contains(t, got, "Needs Improvement")
	assert.Contains(t, got, "Q3, Q7")
}

func TestPearson(t *testing.T) {
	assert.Equal(t, 0.0, Pearson(nil, nil))
	assert.Equal(t, 0.0, Pearson([]float64{1, 2}, []float64{1}))

	// Perfect positive and negative correlation
	assert.InDelta(t, 1.0, Pearson([]float64{1, 2, 3}, []float64{2, 4, 6}), 1e-9)
	assert.InDelta(t, -1.0, Pearson([]float64{1, 2, 3}, []float64{6, 4, 2}), 1e-9)

	// Zero variance is undefined
	assert.Equal(t, 0.0, Pearson([]float64{1, 1, 1}, []float64{2, 4, 6}))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 3.14, Round2(3.14159))
	assert.Equal(t, 2.68, Round2(2.675000001))
}
