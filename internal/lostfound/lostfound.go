// Package lostfound ranks found-item postings against a lost item by the
// similarity of their image embeddings.
package lostfound

import (
	"math"
	"sort"
)

const (
	DefaultThreshold = 0.75
	highConfidence   = 0.85
)

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

func ConfidenceFor(score float64) Confidence {
	switch {
	case score >= highConfidence:
		return ConfidenceHigh
	case score >= DefaultThreshold:
		return ConfidenceMedium
	}
	return ConfidenceLow
}

type Candidate struct {
	ID        string    `json:"id" validate:"required"`
	Embedding []float64 `json:"embedding" validate:"required,min=1"`
}

type Match struct {
	ID         string     `json:"id"`
	Score      float64    `json:"score"`
	Confidence Confidence `json:"confidence"`
}

// CosineSimilarity is 0 for vectors of different length, zero norm or
// non-finite components. Components are scaled by the largest magnitude
// first so large embeddings cannot overflow the norms.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	sa, sb := maxAbs(a), maxAbs(b)
	if sa == 0 || sb == 0 || math.IsInf(sa, 0) || math.IsInf(sb, 0) || math.IsNaN(sa) || math.IsNaN(sb) {
		return 0
	}

	var dot, na, nb float64
	for i := range a {
		x, y := a[i]/sa, b[i]/sb
		dot += x * y
		na += x * x
		nb += y * y
	}

	score := dot / (math.Sqrt(na) * math.Sqrt(nb))
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0
	}

	return math.Max(-1, math.Min(1, score))
}

func maxAbs(v []float64) float64 {
	var m float64
	for _, x := range v {
		if math.IsNaN(x) {
			return math.NaN()
		}
		m = math.Max(m, math.Abs(x))
	}
	return m
}

// Rank scores every candidate against query and keeps those at or above
// threshold, best first. A non-positive threshold means DefaultThreshold.
func Rank(query []float64, candidates []Candidate, threshold float64) []Match {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	matches := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		score := CosineSimilarity(query, c.Embedding)
		if math.IsNaN(score) || score < threshold {
			continue
		}
		matches = append(matches, Match{
			ID:         c.ID,
			Score:      score,
			Confidence: ConfidenceFor(score),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	return matches
}
