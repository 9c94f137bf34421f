package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Harish8848/bhasaguru-sub001/config"
	"github.com/Harish8848/bhasaguru-sub001/internal/model"
	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// SubjectiveScore is the outcome of grading a free-form answer.
type SubjectiveScore struct {
	// Overall is in [0, question.Points].
	Overall   float64
	SubScores map[string]float64
	Feedback  string
}

// SubjectiveEvaluator scores free-form input (writing, speaking,
// comprehension responses). The production implementation delegates to
// Gemini; without an API key a deterministic stub stands in.
type SubjectiveEvaluator interface {
	EvaluateSubjective(ctx context.Context, question *model.Question, answer string) (SubjectiveScore, error)
}

func NewSubjectiveEvaluator(cfg *config.Config) (SubjectiveEvaluator, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Subjective answers will be scored by the stub evaluator.")
		return &stubSubjectiveEvaluator{}, nil
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	return &geminiEvaluator{model: client.GenerativeModel("gemini-1.5-flash")}, nil
}

type geminiEvaluator struct {
	model *genai.GenerativeModel
}

func (g *geminiEvaluator) EvaluateSubjective(ctx context.Context, question *model.Question, answer string) (SubjectiveScore, error) {
	maxScore := question.Points
	if maxScore <= 0 {
		maxScore = 1.0
		log.Warn().Uint("questionID", question.ID).Msg("Question has no positive point value, scoring against 1.0")
	}

	prompt := buildSubjectivePrompt(question, answer, maxScore)

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Error().Err(err).Str("questionType", question.Type).Msg("Gemini API error during scoring")
		return SubjectiveScore{}, err
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return SubjectiveScore{}, fmt.Errorf("gemini returned no content")
	}

	fullResponseText := ""
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			fullResponseText += string(txt)
		}
	}
	if fullResponseText == "" {
		return SubjectiveScore{}, fmt.Errorf("gemini returned no text content")
	}

	scoreStr, feedback, err := parseScoredResponse(fullResponseText)
	if err != nil {
		log.Warn().Err(err).Str("rawResponse", fullResponseText).Msg("Failed to parse score from Gemini response")
		return SubjectiveScore{}, err
	}
	score, err := strconv.ParseFloat(strings.TrimSpace(scoreStr), 64)
	if err != nil {
		return SubjectiveScore{}, fmt.Errorf("could not parse score value %q from AI response: %w", scoreStr, err)
	}

	if score > maxScore {
		score = maxScore
	}
	if score < 0 {
		score = 0
	}
	return SubjectiveScore{Overall: score, Feedback: strings.TrimSpace(feedback)}, nil
}

func buildSubjectivePrompt(question *model.Question, answer string, maxScore float64) string {
	var b strings.Builder
	b.WriteString("You are an expert language-proficiency examiner.\n")
	b.WriteString("Evaluate the learner's response to the task below.\n\n")

	switch question.Type {
	case model.QuestionWriting:
		b.WriteString("Task type: written response.\n")
		b.WriteString("Grade grammar, vocabulary range, coherence, and task achievement.\n")
	case model.QuestionSpeakingPart1, model.QuestionSpeakingPart2, model.QuestionSpeakingPart3:
		b.WriteString("Task type: spoken response (the learner's answer is a transcript or audio reference).\n")
		b.WriteString("Grade pronunciation-relevant phrasing, fluency markers, vocabulary, and task achievement.\n")
	case model.QuestionReadingComprehension, model.QuestionListeningComprehension:
		b.WriteString("Task type: free-form comprehension response.\n")
		b.WriteString("Grade how accurately and completely the response reflects the source material.\n")
	default:
		b.WriteString("Task type: free-form response.\n")
	}

	b.WriteString("\nTask prompt:\n---\n")
	b.WriteString(question.Prompt)
	b.WriteString("\n---\n\nLearner's answer:\n---\n")
	b.WriteString(answer)
	b.WriteString("\n---\n\n")
	fmt.Fprintf(&b, `Provide your evaluation in exactly this format:
Score: [a number from 0.0 to %.1f]
Feedback:
[concise, constructive feedback]
`, maxScore)
	return b.String()
}

// parseScoredResponse extracts the "Score:" value and trailing "Feedback:"
// text from the model output.
func parseScoredResponse(raw string) (scoreStr string, feedback string, err error) {
	scorePrefix := "Score:"
	feedbackPrefix := "Feedback:"

	scoreIndex := strings.Index(raw, scorePrefix)
	if scoreIndex == -1 {
		return "", raw, fmt.Errorf("response does not contain %q prefix", scorePrefix)
	}

	rest := raw[scoreIndex+len(scorePrefix):]
	if nl := strings.Index(rest, "\n"); nl != -1 {
		scoreStr = strings.TrimSpace(rest[:nl])
		rest = rest[nl+1:]
	} else {
		scoreStr = strings.TrimSpace(rest)
		rest = ""
	}
	if fields := strings.Fields(scoreStr); len(fields) > 0 {
		scoreStr = fields[0]
	}

	if fbIndex := strings.Index(rest, feedbackPrefix); fbIndex != -1 {
		feedback = strings.TrimSpace(rest[fbIndex+len(feedbackPrefix):])
	} else {
		feedback = strings.TrimSpace(rest)
	}
	return scoreStr, feedback, nil
}

// stubSubjectiveEvaluator returns a fixed mid-band score so the rest of the
// pipeline stays exercisable without an API key. No real rubric exists yet.
type stubSubjectiveEvaluator struct{}

const stubScoreFraction = 0.7

func (s *stubSubjectiveEvaluator) EvaluateSubjective(_ context.Context, question *model.Question, answer string) (SubjectiveScore, error) {
	if strings.TrimSpace(answer) == "" {
		return SubjectiveScore{Feedback: "No answer was submitted."}, nil
	}
	overall := stubScoreFraction * question.Points
	return SubjectiveScore{
		Overall: overall,
		SubScores: map[string]float64{
			"grammar":          stubScoreFraction,
			"vocabulary":       stubScoreFraction,
			"coherence":        stubScoreFraction,
			"task_achievement": stubScoreFraction,
		},
		Feedback: "Automated evaluation is unavailable; a placeholder score was assigned.",
	}, nil
}
