package service

import "math"

// ScoreSummary is the attempt-level reduction of per-question results.
type ScoreSummary struct {
	TotalScore     float64
	MaxScore       float64
	CorrectAnswers int
	Percentage     float64 // 0-100
}

type ScoreAggregator interface {
	Aggregate(results []EvaluationResult) ScoreSummary
	// Passed applies a test's passing threshold (0-100). Only meaningful
	// for attempts bound to a test; practice sessions have no verdict.
	Passed(summary ScoreSummary, passingScore float64) bool
}

type scoreAggregator struct{}

func NewScoreAggregator() ScoreAggregator {
	return &scoreAggregator{}
}

func (s *scoreAggregator) Aggregate(results []EvaluationResult) ScoreSummary {
	var summary ScoreSummary
	for _, r := range results {
		summary.TotalScore += r.Score
		summary.MaxScore += r.MaxScore
		if r.IsCorrect {
			summary.CorrectAnswers++
		}
	}
	if summary.MaxScore > 0 {
		summary.Percentage = math.Round(100*summary.TotalScore/summary.MaxScore*100) / 100
	}
	return summary
}

func (s *scoreAggregator) Passed(summary ScoreSummary, passingScore float64) bool {
	return summary.Percentage >= passingScore
}
