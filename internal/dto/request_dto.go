package dto

// PracticeQueryDTO selects questions for an ad-hoc practice session. At
// least one filter field must be set; the service enforces this.
type PracticeQueryDTO struct {
	Language        string `json:"language"`
	Module          string `json:"module"`
	Section         string `json:"section"`
	StandardSection string `json:"standard_section"`
	Difficulty      string `json:"difficulty"`
	Limit           int    `json:"limit" binding:"omitempty,min=1,max=100"`
}

// AnswerSubmitDTO is one submitted answer within an attempt submission.
type AnswerSubmitDTO struct {
	QuestionID uint   `json:"question_id" binding:"required"`
	Payload    string `json:"payload"`
}

// AttemptSubmitDTO is the request body for finalizing an attempt.
type AttemptSubmitDTO struct {
	Answers          []AnswerSubmitDTO `json:"answers" binding:"required,dive"`
	TimeSpentSeconds int               `json:"time_spent_seconds" binding:"omitempty,min=0"`
}
