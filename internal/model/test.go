package model

import (
	"time"

	"gorm.io/gorm"
)

// Test types.
const (
	TestPractice      = "practice"
	TestFormal        = "formal"
	TestCertification = "certification"
)

// Test is owned and mutated by admin tooling; the assessment core reads it.
type Test struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	Title            string         `json:"title" gorm:"not null;uniqueIndex"`
	Type             string         `json:"type" gorm:"not null;default:'formal'"`
	DurationMinutes  int            `json:"duration_minutes"`
	PassingScore     float64        `json:"passing_score" gorm:"not null"` // 0-100 percentage threshold
	QuestionCount    int            `json:"question_count"`
	ShuffleQuestions bool           `json:"shuffle_questions"`
	ShuffleOptions   bool           `json:"shuffle_options"`
	AllowRetake      bool           `json:"allow_retake" gorm:"default:true"`
	Questions        []Question     `json:"questions,omitempty" gorm:"foreignKey:TestID"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}
