package repository

import (
	"time"

	"github.com/Harish8848/bhasaguru-sub001/internal/model"
	"gorm.io/gorm"
)

// AttemptCompletion carries the fields written by the one-way
// OPEN -> COMPLETED transition.
type AttemptCompletion struct {
	Score            float64
	CorrectAnswers   int
	Passed           bool
	TimeSpentSeconds int
	CompletedAt      time.Time
}

type AttemptRepository interface {
	Create(attempt *model.Attempt) error
	FindByID(id uint) (*model.Attempt, error)
	FindAllByTestAndUser(testID, userID uint) ([]model.Attempt, error)
	HasCompletedAttempt(testID, userID uint) (bool, error)
	// Complete finalizes the attempt and writes its answer records in one
	// transaction. The update is conditioned on completed_at IS NULL; when
	// another submission already won, accepted is false and nothing is
	// written.
	Complete(attemptID uint, completion AttemptCompletion, records []model.AnswerRecord) (accepted bool, err error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(attempt *model.Attempt) error {
	return r.db.Create(attempt).Error
}

func (r *attemptRepository) FindByID(id uint) (*model.Attempt, error) {
	var attempt model.Attempt
	if err := r.db.Preload("Test").First(&attempt, id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindAllByTestAndUser(testID, userID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.db.
		Where("test_id = ? AND user_id = ?", testID, userID).
		Order("started_at DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *attemptRepository) HasCompletedAttempt(testID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Attempt{}).
		Where("test_id = ? AND user_id = ? AND completed_at IS NOT NULL", testID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *attemptRepository) Complete(attemptID uint, completion AttemptCompletion, records []model.AnswerRecord) (bool, error) {
	accepted := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Attempt{}).
			Where("id = ? AND completed_at IS NULL", attemptID).
			Updates(map[string]any{
				"score":              completion.Score,
				"correct_answers":    completion.CorrectAnswers,
				"passed":             completion.Passed,
				"time_spent_seconds": completion.TimeSpentSeconds,
				"completed_at":       completion.CompletedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Lost the race: another submission completed the attempt first.
			return nil
		}
		accepted = true
		if len(records) == 0 {
			return nil
		}
		return tx.CreateInBatches(records, 100).Error
	})
	return accepted, err
}
