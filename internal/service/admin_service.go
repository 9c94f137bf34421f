package service

import (
	"context"
	"fmt"

	"github.com/Harish8848/bhasaguru-sub001/internal/apperror"
	"github.com/Harish8848/bhasaguru-sub001/internal/cache"
	"github.com/Harish8848/bhasaguru-sub001/internal/dto"
	"github.com/Harish8848/bhasaguru-sub001/internal/model"
	"github.com/Harish8848/bhasaguru-sub001/internal/repository"
	"github.com/rs/zerolog/log"
)

// AdminTestService ingests tests with their questions. Broader admin CRUD
// lives in external tooling; this entry point exists so mutations flow
// through the same cache-invalidation discipline the read side relies on.
type AdminTestService interface {
	CreateTest(ctx context.Context, req dto.TestCreateDTO) (*dto.TestDetailDTO, error)
}

type adminTestService struct {
	testRepo     repository.TestRepository
	contentCache cache.Cache
}

func NewAdminTestService(testRepo repository.TestRepository, contentCache cache.Cache) AdminTestService {
	return &adminTestService{testRepo: testRepo, contentCache: contentCache}
}

func (s *adminTestService) CreateTest(ctx context.Context, req dto.TestCreateDTO) (*dto.TestDetailDTO, error) {
	orderSeen := make(map[int]bool, len(req.Questions))
	questions := make([]model.Question, 0, len(req.Questions))

	for _, qDto := range req.Questions {
		if !model.IsKnownQuestionType(qDto.Type) {
			return nil, apperror.Validation(fmt.Sprintf("unknown question type %q", qDto.Type))
		}
		if orderSeen[qDto.OrderIndex] {
			return nil, apperror.Validation(fmt.Sprintf("duplicate order index %d", qDto.OrderIndex))
		}
		orderSeen[qDto.OrderIndex] = true

		if model.IsObjectiveType(qDto.Type) && qDto.CorrectAnswer == "" {
			return nil, apperror.Validation(fmt.Sprintf("question at order %d needs a correct answer for type %q", qDto.OrderIndex, qDto.Type))
		}
		if qDto.Type == model.QuestionMultipleChoice && len(qDto.Options) < 2 {
			return nil, apperror.Validation(fmt.Sprintf("question at order %d needs at least two options", qDto.OrderIndex))
		}

		question := model.Question{
			Type:            qDto.Type,
			Prompt:          qDto.Prompt,
			CorrectAnswer:   qDto.CorrectAnswer,
			Points:          qDto.Points,
			OrderIndex:      qDto.OrderIndex,
			AudioURL:        qDto.AudioURL,
			ImageURL:        qDto.ImageURL,
			VideoURL:        qDto.VideoURL,
			Language:        qDto.Language,
			Module:          qDto.Module,
			Section:         qDto.Section,
			StandardSection: qDto.StandardSection,
			Difficulty:      qDto.Difficulty,
		}
		if len(qDto.Options) > 0 {
			if err := question.SetOptions(qDto.Options); err != nil {
				return nil, apperror.Internal(err)
			}
		}
		questions = append(questions, question)
	}

	test := model.Test{
		Title:            req.Title,
		Type:             req.Type,
		DurationMinutes:  req.DurationMinutes,
		PassingScore:     req.PassingScore,
		QuestionCount:    len(questions),
		ShuffleQuestions: req.ShuffleQuestions,
		ShuffleOptions:   req.ShuffleOptions,
		AllowRetake:      req.AllowRetake,
		Questions:        questions,
	}
	if err := s.testRepo.Create(&test); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("Failed to create test")
		return nil, apperror.Internal(err)
	}

	// A write to the registry invalidates every test-scoped cache entry.
	s.contentCache.Invalidate(ctx, testCachePrefix)

	created, err := s.testRepo.FindByIDWithQuestions(test.ID)
	if err != nil {
		log.Error().Err(err).Uint("testID", test.ID).Msg("Failed to reload created test")
		return nil, apperror.Internal(err)
	}

	return &dto.TestDetailDTO{
		ID:               created.ID,
		Title:            created.Title,
		Type:             created.Type,
		DurationMinutes:  created.DurationMinutes,
		PassingScore:     created.PassingScore,
		ShuffleQuestions: created.ShuffleQuestions,
		ShuffleOptions:   created.ShuffleOptions,
		AllowRetake:      created.AllowRetake,
		Questions:        dto.NewQuestionDTOs(created.Questions),
		CreatedAt:        created.CreatedAt,
	}, nil
}
