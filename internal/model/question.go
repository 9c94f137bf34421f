package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Question types. The grading policy is keyed off this closed set.
const (
	QuestionMultipleChoice         = "multiple_choice"
	QuestionTrueFalse              = "true_false"
	QuestionFillBlank              = "fill_blank"
	QuestionMatching               = "matching"
	QuestionAudio                  = "audio_question"
	QuestionSpeakingPart1          = "speaking_part1"
	QuestionSpeakingPart2          = "speaking_part2"
	QuestionSpeakingPart3          = "speaking_part3"
	QuestionWriting                = "writing"
	QuestionReadingComprehension   = "reading_comprehension"
	QuestionListeningComprehension = "listening_comprehension"
)

// IsObjectiveType reports whether answers of this type are graded by
// normalized comparison against the stored correct answer. Everything else
// goes through the subjective evaluator.
func IsObjectiveType(t string) bool {
	switch t {
	case QuestionMultipleChoice, QuestionTrueFalse, QuestionFillBlank, QuestionMatching, QuestionAudio:
		return true
	}
	return false
}

// IsKnownQuestionType reports membership in the closed type enumeration.
func IsKnownQuestionType(t string) bool {
	switch t {
	case QuestionSpeakingPart1, QuestionSpeakingPart2, QuestionSpeakingPart3,
		QuestionWriting, QuestionReadingComprehension, QuestionListeningComprehension:
		return true
	}
	return IsObjectiveType(t)
}

type Question struct {
	ID     uint   `gorm:"primarykey" json:"id"`
	TestID *uint  `json:"test_id,omitempty" gorm:"index"`
	Type   string `json:"type" gorm:"not null;index"`
	Prompt string `json:"prompt" gorm:"type:text;not null"`

	AudioURL *string `json:"audio_url,omitempty"`
	ImageURL *string `json:"image_url,omitempty"`
	VideoURL *string `json:"video_url,omitempty"`

	// Options is an ordered JSON array of strings for choice-style types.
	Options datatypes.JSON `json:"options,omitempty"`
	// CorrectAnswer is never serialized to takers.
	CorrectAnswer string  `json:"-" gorm:"type:text"`
	Points        float64 `json:"points" gorm:"not null"`
	OrderIndex    int     `json:"order_index"`

	Language        string `json:"language,omitempty" gorm:"index"`
	Module          string `json:"module,omitempty" gorm:"index"`
	Section         string `json:"section,omitempty" gorm:"index"`
	StandardSection string `json:"standard_section,omitempty" gorm:"index"`
	Difficulty      string `json:"difficulty,omitempty" gorm:"index"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// OptionList decodes the stored option array. A missing or malformed column
// yields an empty list rather than an error.
func (q *Question) OptionList() []string {
	if len(q.Options) == 0 {
		return nil
	}
	var opts []string
	if err := json.Unmarshal(q.Options, &opts); err != nil {
		return nil
	}
	return opts
}

// SetOptions encodes opts into the JSON column.
func (q *Question) SetOptions(opts []string) error {
	raw, err := json.Marshal(opts)
	if err != nil {
		return err
	}
	q.Options = datatypes.JSON(raw)
	return nil
}
