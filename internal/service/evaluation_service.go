package service

import (
	"context"
	"sort"
	"strings"

	"github.com/Harish8848/bhasaguru-sub001/config"
	"github.com/Harish8848/bhasaguru-sub001/internal/model"
	"github.com/rs/zerolog/log"
)

// EvaluationResult is the grading outcome for one (question, answer) pair.
type EvaluationResult struct {
	QuestionID uint
	IsCorrect  bool
	Score      float64
	MaxScore   float64
	Feedback   string
}

// EvaluationService grades a single answer against its question. It is a
// pure mapping: it never mutates the question or any attempt state, and
// grading one question never depends on another. A malformed or missing
// payload scores zero instead of failing the batch.
type EvaluationService interface {
	Evaluate(ctx context.Context, question *model.Question, payload string) EvaluationResult
}

type evaluationService struct {
	subjective   SubjectiveEvaluator
	passFraction float64
}

func NewEvaluationService(cfg *config.Config, subjective SubjectiveEvaluator) EvaluationService {
	passFraction := cfg.Grading.SubjectivePassFraction
	if passFraction <= 0 || passFraction > 1 {
		passFraction = 0.6
	}
	return &evaluationService{subjective: subjective, passFraction: passFraction}
}

func (s *evaluationService) Evaluate(ctx context.Context, question *model.Question, payload string) EvaluationResult {
	result := EvaluationResult{
		QuestionID: question.ID,
		MaxScore:   question.Points,
	}

	if model.IsObjectiveType(question.Type) {
		if isObjectiveCorrect(question, payload) {
			result.IsCorrect = true
			result.Score = question.Points
		}
		return result
	}

	score, err := s.subjective.EvaluateSubjective(ctx, question, payload)
	if err != nil {
		// Absorbed per-item: one failed grading call never aborts the batch.
		log.Error().Err(err).Uint("questionID", question.ID).Str("type", question.Type).
			Msg("Subjective evaluation failed, scoring answer as zero")
		return result
	}

	result.Score = clamp(score.Overall, 0, question.Points)
	result.Feedback = score.Feedback
	result.IsCorrect = question.Points > 0 && result.Score >= s.passFraction*question.Points
	return result
}

func isObjectiveCorrect(question *model.Question, payload string) bool {
	correct := strings.TrimSpace(question.CorrectAnswer)
	submitted := strings.TrimSpace(payload)
	if correct == "" || submitted == "" {
		return false
	}

	if question.Type == model.QuestionMatching {
		return matchingEqual(submitted, correct)
	}
	return normalizeAnswer(submitted) == normalizeAnswer(correct)
}

// normalizeAnswer lowercases and collapses internal whitespace so grading
// tolerates formatting noise without loosening actual content matching.
func normalizeAnswer(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// matchingEqual compares "left:right" pairs joined by '|' as sets: pair
// order does not matter, the pairs themselves must match exactly.
func matchingEqual(submitted, correct string) bool {
	a := matchingPairs(submitted)
	b := matchingPairs(correct)
	if len(a) == 0 || len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func matchingPairs(s string) []string {
	var pairs []string
	for _, part := range strings.Split(s, "|") {
		part = normalizeAnswer(part)
		if part == "" {
			continue
		}
		pairs = append(pairs, part)
	}
	sort.Strings(pairs)
	return pairs
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
