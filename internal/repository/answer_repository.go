package repository

import (
	"github.com/Harish8848/bhasaguru-sub001/internal/model"
	"gorm.io/gorm"
)

type AnswerRepository interface {
	FindByAttemptID(attemptID uint) ([]model.AnswerRecord, error)
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) FindByAttemptID(attemptID uint) ([]model.AnswerRecord, error) {
	var records []model.AnswerRecord
	err := r.db.
		Preload("Question").
		Where("attempt_id = ?", attemptID).
		Find(&records).Error
	return records, err
}
