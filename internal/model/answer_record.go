package model

import (
	"time"
)

// AnswerRecord stores what a user actually submitted for one question of an
// attempt, with its grading outcome. Rows are written once, in a single
// batch at submit, and never mutated.
type AnswerRecord struct {
	ID         uint     `gorm:"primarykey" json:"id"`
	AttemptID  uint     `json:"attempt_id" gorm:"not null;uniqueIndex:idx_attempt_question"`
	QuestionID uint     `json:"question_id" gorm:"not null;uniqueIndex:idx_attempt_question"`
	Question   Question `json:"question,omitempty" gorm:"foreignKey:QuestionID"`

	// Payload is the submitted answer: a selected option, free text, or an
	// audio reference, depending on the question type.
	Payload   string  `json:"payload" gorm:"type:text"`
	IsCorrect bool    `json:"is_correct"`
	Score     float64 `json:"score"`
	Feedback  string  `json:"feedback,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
}
