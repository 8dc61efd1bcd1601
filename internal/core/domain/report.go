package domain

import (
	"math"
	"sort"
	"time"
)

// Statistics aggregates a user's predictions.
type Statistics struct {
	TotalReports        int             `json:"totalReports"`
	AverageConfidence   float64         `json:"averageConfidence"`
	EmotionDistribution map[Emotion]int `json:"emotionDistribution"`
	MostCommonEmotion   Emotion         `json:"mostCommonEmotion"`
}

// Report is the reporting view for one user: rows newest-first plus statistics.
type Report struct {
	Predictions []Prediction `json:"reports"`
	Statistics  Statistics   `json:"statistics"`
}

// UserStats is the account summary returned by the user-stats endpoint.
type UserStats struct {
	Username     string     `json:"username"`
	TotalReports int64      `json:"totalReports"`
	MemberSince  *time.Time `json:"memberSince"`
}

// Summarize computes statistics over preds. AverageConfidence is a percentage
// rounded to one decimal. Count ties for the most common emotion resolve to
// the lexically smallest label.
func Summarize(preds []Prediction) Statistics {
	stats := Statistics{
		TotalReports:        len(preds),
		EmotionDistribution: make(map[Emotion]int),
	}
	if len(preds) == 0 {
		return stats
	}

	total := 0.0
	for _, p := range preds {
		stats.EmotionDistribution[p.Emotion]++
		total += p.Confidence
	}
	stats.AverageConfidence = math.Round(total/float64(len(preds))*1000) / 10

	labels := make([]Emotion, 0, len(stats.EmotionDistribution))
	for e := range stats.EmotionDistribution {
		labels = append(labels, e)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })

	best := labels[0]
	for _, e := range labels[1:] {
		if stats.EmotionDistribution[e] > stats.EmotionDistribution[best] {
			best = e
		}
	}
	stats.MostCommonEmotion = best
	return stats
}
