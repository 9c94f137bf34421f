package dto

import "time"

// PracticeSessionDTO is the unpersisted response to a practice query. The
// session id is ephemeral; no attempt row backs it.
type PracticeSessionDTO struct {
	SessionID      string        `json:"session_id"`
	Questions      []QuestionDTO `json:"questions"`
	AvailableCount int           `json:"available_count"`
}

// AttemptStartDTO is returned when a formal attempt is created.
type AttemptStartDTO struct {
	AttemptID uint          `json:"attempt_id"`
	Test      TestMetaDTO   `json:"test"`
	Questions []QuestionDTO `json:"questions"`
	StartedAt time.Time     `json:"started_at"`
}

// AttemptResultDTO is the verdict returned by submit.
type AttemptResultDTO struct {
	AttemptID      uint    `json:"attempt_id"`
	Score          float64 `json:"score"`
	CorrectAnswers int     `json:"correct_answers"`
	TotalQuestions int     `json:"total_questions"`
	Passed         bool    `json:"passed"`
}

// AnswerDetailDTO is one graded answer inside an attempt detail view.
type AnswerDetailDTO struct {
	QuestionID uint        `json:"question_id"`
	Question   QuestionDTO `json:"question"`
	Payload    string      `json:"payload"`
	IsCorrect  bool        `json:"is_correct"`
	Score      float64     `json:"score"`
	Feedback   string      `json:"feedback,omitempty"`
}

// AttemptDetailDTO replays a full attempt in snapshot order.
type AttemptDetailDTO struct {
	AttemptID        uint              `json:"attempt_id"`
	TestID           uint              `json:"test_id"`
	TestTitle        string            `json:"test_title,omitempty"`
	Score            *float64          `json:"score,omitempty"`
	CorrectAnswers   int               `json:"correct_answers"`
	TotalQuestions   int               `json:"total_questions"`
	Passed           bool              `json:"passed"`
	TimeSpentSeconds int               `json:"time_spent_seconds"`
	StartedAt        time.Time         `json:"started_at"`
	CompletedAt      *time.Time        `json:"completed_at,omitempty"`
	Answers          []AnswerDetailDTO `json:"answers,omitempty"`
}

// AttemptSummaryDTO lists one attempt in a user's history.
type AttemptSummaryDTO struct {
	ID             uint       `json:"id"`
	TestID         uint       `json:"test_id"`
	Score          *float64   `json:"score,omitempty"`
	CorrectAnswers int        `json:"correct_answers"`
	TotalQuestions int        `json:"total_questions"`
	Passed         bool       `json:"passed"`
	StartedAt      time.Time  `json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

// ErrorResponse is the stable error envelope for every failure.
type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}
