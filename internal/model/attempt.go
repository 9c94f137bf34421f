package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Attempt is one formal test-taking session. Only the completion fields
// (Score, CorrectAnswers, Passed, TimeSpentSeconds, CompletedAt) ever
// change after creation, and only once, during submit.
type Attempt struct {
	ID     uint `gorm:"primarykey" json:"id"`
	UserID uint `json:"user_id" gorm:"not null;index"`
	TestID uint `json:"test_id" gorm:"not null;index"`
	Test   Test `json:"test,omitempty" gorm:"foreignKey:TestID"`

	// QuestionOrder is the ordered snapshot of question ids captured at
	// start, after any shuffle. Reads replay it without re-rolling.
	QuestionOrder datatypes.JSON `json:"question_order"`

	TotalQuestions   int        `json:"total_questions" gorm:"not null"`
	CorrectAnswers   int        `json:"correct_answers"`
	Score            *float64   `json:"score,omitempty"` // 0-100, null while open
	Passed           bool       `json:"passed"`
	TimeSpentSeconds int        `json:"time_spent_seconds"`
	StartedAt        time.Time  `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty" gorm:"index"`

	Answers []AnswerRecord `json:"answers,omitempty" gorm:"foreignKey:AttemptID"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsCompleted reports whether the attempt reached its terminal state.
func (a *Attempt) IsCompleted() bool { return a.CompletedAt != nil }

// QuestionIDs decodes the persisted snapshot.
func (a *Attempt) QuestionIDs() []uint {
	if len(a.QuestionOrder) == 0 {
		return nil
	}
	var ids []uint
	if err := json.Unmarshal(a.QuestionOrder, &ids); err != nil {
		return nil
	}
	return ids
}

// SetQuestionIDs encodes the snapshot. Called exactly once, at start.
func (a *Attempt) SetQuestionIDs(ids []uint) error {
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	a.QuestionOrder = datatypes.JSON(raw)
	return nil
}
