package dto

import "time"

// TestSummaryDTO is used for listing tests available to takers.
type TestSummaryDTO struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	Type            string    `json:"type"`
	DurationMinutes int       `json:"duration_minutes"`
	PassingScore    float64   `json:"passing_score"`
	QuestionCount   int       `json:"question_count"`
	CreatedAt       time.Time `json:"created_at"`
}

// TestMetaDTO is the test header returned alongside a started attempt.
type TestMetaDTO struct {
	ID              uint    `json:"id"`
	Title           string  `json:"title"`
	Type            string  `json:"type"`
	DurationMinutes int     `json:"duration_minutes"`
	PassingScore    float64 `json:"passing_score"`
}

// TestDetailDTO is the full taker-facing test view, answer keys stripped.
type TestDetailDTO struct {
	ID               uint          `json:"id"`
	Title            string        `json:"title"`
	Type             string        `json:"type"`
	DurationMinutes  int           `json:"duration_minutes"`
	PassingScore     float64       `json:"passing_score"`
	ShuffleQuestions bool          `json:"shuffle_questions"`
	ShuffleOptions   bool          `json:"shuffle_options"`
	AllowRetake      bool          `json:"allow_retake"`
	Questions        []QuestionDTO `json:"questions,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
}
