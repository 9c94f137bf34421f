package service

import (
	"context"
	"errors"
	"time"

	"github.com/Harish8848/bhasaguru-sub001/config"
	"github.com/Harish8848/bhasaguru-sub001/internal/apperror"
	"github.com/Harish8848/bhasaguru-sub001/internal/cache"
	"github.com/Harish8848/bhasaguru-sub001/internal/dto"
	"github.com/Harish8848/bhasaguru-sub001/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// TestService is the taker-facing read side over the test registry,
// cache-first and with answer keys stripped.
type TestService interface {
	ListTests(ctx context.Context) ([]dto.TestSummaryDTO, error)
	GetTest(ctx context.Context, testID uint) (*dto.TestDetailDTO, error)
}

type testService struct {
	testRepo     repository.TestRepository
	contentCache cache.Cache
	cacheTTL     time.Duration
}

func NewTestService(testRepo repository.TestRepository, contentCache cache.Cache, cfg *config.Config) TestService {
	return &testService{
		testRepo:     testRepo,
		contentCache: contentCache,
		cacheTTL:     time.Duration(cfg.Cache.TTLSeconds) * time.Second,
	}
}

func (s *testService) ListTests(ctx context.Context) ([]dto.TestSummaryDTO, error) {
	var cached []dto.TestSummaryDTO
	if cache.GetJSON(ctx, s.contentCache, testListCacheKey, &cached) {
		return cached, nil
	}

	testsWithCount, err := s.testRepo.FindAllWithQuestionCount()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list tests with question count")
		return nil, apperror.Internal(err)
	}

	summaries := make([]dto.TestSummaryDTO, 0, len(testsWithCount))
	for _, twc := range testsWithCount {
		summaries = append(summaries, dto.TestSummaryDTO{
			ID:              twc.Test.ID,
			Title:           twc.Test.Title,
			Type:            twc.Test.Type,
			DurationMinutes: twc.Test.DurationMinutes,
			PassingScore:    twc.Test.PassingScore,
			QuestionCount:   twc.QuestionCount,
			CreatedAt:       twc.Test.CreatedAt,
		})
	}
	cache.SetJSON(ctx, s.contentCache, testListCacheKey, summaries, s.cacheTTL)
	return summaries, nil
}

func (s *testService) GetTest(ctx context.Context, testID uint) (*dto.TestDetailDTO, error) {
	key := testDetailCacheKey(testID)
	var cached dto.TestDetailDTO
	if cache.GetJSON(ctx, s.contentCache, key, &cached) {
		return &cached, nil
	}

	test, err := s.testRepo.FindByIDWithQuestions(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("test", testID)
		}
		log.Error().Err(err).Uint("testID", testID).Msg("Failed to load test details")
		return nil, apperror.Internal(err)
	}

	detail := dto.TestDetailDTO{
		ID:               test.ID,
		Title:            test.Title,
		Type:             test.Type,
		DurationMinutes:  test.DurationMinutes,
		PassingScore:     test.PassingScore,
		ShuffleQuestions: test.ShuffleQuestions,
		ShuffleOptions:   test.ShuffleOptions,
		AllowRetake:      test.AllowRetake,
		Questions:        dto.NewQuestionDTOs(test.Questions),
		CreatedAt:        test.CreatedAt,
	}
	cache.SetJSON(ctx, s.contentCache, key, detail, s.cacheTTL)
	return &detail, nil
}
