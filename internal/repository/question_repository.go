package repository

import (
	"github.com/Harish8848/bhasaguru-sub001/internal/model"
	"gorm.io/gorm"
)

// QuestionFilter is the typed filter spec for practice queries. Empty
// fields are ignored; at least one must be set, which the service checks
// before the repository ever sees the filter.
type QuestionFilter struct {
	Language        string
	Module          string
	Section         string
	StandardSection string
	Difficulty      string
}

// IsZero reports whether no filter field is set.
func (f QuestionFilter) IsZero() bool {
	return f.Language == "" && f.Module == "" && f.Section == "" &&
		f.StandardSection == "" && f.Difficulty == ""
}

type QuestionRepository interface {
	Create(question *model.Question) error
	FindByID(id uint) (*model.Question, error)
	FindByIDs(ids []uint) ([]model.Question, error)
	FindByTestID(testID uint) ([]model.Question, error)
	Search(filter QuestionFilter) ([]model.Question, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *model.Question) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByIDs(ids []uint) ([]model.Question, error) {
	var questions []model.Question
	if len(ids) == 0 {
		return questions, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) FindByTestID(testID uint) ([]model.Question, error) {
	var questions []model.Question
	if err := r.db.Where("test_id = ?", testID).Order("order_index ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) Search(filter QuestionFilter) ([]model.Question, error) {
	query := r.db.Model(&model.Question{})
	if filter.Language != "" {
		query = query.Where("language = ?", filter.Language)
	}
	if filter.Module != "" {
		query = query.Where("module = ?", filter.Module)
	}
	if filter.Section != "" {
		query = query.Where("section = ?", filter.Section)
	}
	if filter.StandardSection != "" {
		query = query.Where("standard_section = ?", filter.StandardSection)
	}
	if filter.Difficulty != "" {
		query = query.Where("difficulty = ?", filter.Difficulty)
	}

	var questions []model.Question
	if err := query.Order("order_index ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}
