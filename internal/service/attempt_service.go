package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/Harish8848/bhasaguru-sub001/config"
	"github.com/Harish8848/bhasaguru-sub001/internal/apperror"
	"github.com/Harish8848/bhasaguru-sub001/internal/cache"
	"github.com/Harish8848/bhasaguru-sub001/internal/dto"
	"github.com/Harish8848/bhasaguru-sub001/internal/model"
	"github.com/Harish8848/bhasaguru-sub001/internal/repository"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const defaultPracticeLimit = 10

// AttemptService orchestrates practice queries and the formal attempt
// lifecycle (start/submit). It owns the single OPEN -> COMPLETED state
// transition; everything else it delegates to the shuffle, evaluation and
// aggregation services.
type AttemptService interface {
	StartPractice(ctx context.Context, query dto.PracticeQueryDTO) (*dto.PracticeSessionDTO, error)
	StartFormal(ctx context.Context, userID, testID uint) (*dto.AttemptStartDTO, error)
	Submit(ctx context.Context, userID, attemptID uint, req dto.AttemptSubmitDTO) (*dto.AttemptResultDTO, error)
	GetAttemptDetail(ctx context.Context, userID, attemptID uint) (*dto.AttemptDetailDTO, error)
	ListAttempts(ctx context.Context, userID, testID uint) ([]dto.AttemptSummaryDTO, error)
}

type attemptService struct {
	testRepo     repository.TestRepository
	questionRepo repository.QuestionRepository
	attemptRepo  repository.AttemptRepository
	answerRepo   repository.AnswerRepository
	contentCache cache.Cache
	shuffle      ShuffleService
	evaluator    EvaluationService
	aggregator   ScoreAggregator
	cacheTTL     time.Duration
}

func NewAttemptService(
	testRepo repository.TestRepository,
	questionRepo repository.QuestionRepository,
	attemptRepo repository.AttemptRepository,
	answerRepo repository.AnswerRepository,
	contentCache cache.Cache,
	shuffle ShuffleService,
	evaluator EvaluationService,
	aggregator ScoreAggregator,
	cfg *config.Config,
) AttemptService {
	return &attemptService{
		testRepo:     testRepo,
		questionRepo: questionRepo,
		attemptRepo:  attemptRepo,
		answerRepo:   answerRepo,
		contentCache: contentCache,
		shuffle:      shuffle,
		evaluator:    evaluator,
		aggregator:   aggregator,
		cacheTTL:     time.Duration(cfg.Cache.TTLSeconds) * time.Second,
	}
}

func (s *attemptService) StartPractice(ctx context.Context, query dto.PracticeQueryDTO) (*dto.PracticeSessionDTO, error) {
	filter := repository.QuestionFilter{
		Language:        query.Language,
		Module:          query.Module,
		Section:         query.Section,
		StandardSection: query.StandardSection,
		Difficulty:      query.Difficulty,
	}
	if filter.IsZero() {
		return nil, apperror.InvalidFilter("at least one filter is required for a practice query")
	}
	limit := query.Limit
	if limit <= 0 {
		limit = defaultPracticeLimit
	}

	matches, err := s.questionRepo.Search(filter)
	if err != nil {
		log.Error().Err(err).Msg("StartPractice: question search failed")
		return nil, apperror.Internal(err)
	}
	if len(matches) == 0 {
		return nil, apperror.NotFound("questions matching filter", query.Language)
	}

	sample := s.shuffle.Sample(matches, limit)
	return &dto.PracticeSessionDTO{
		SessionID:      uuid.NewString(),
		Questions:      dto.NewQuestionDTOs(sample),
		AvailableCount: len(matches),
	}, nil
}

func (s *attemptService) StartFormal(ctx context.Context, userID, testID uint) (*dto.AttemptStartDTO, error) {
	test, err := s.loadTest(ctx, testID)
	if err != nil {
		return nil, err
	}
	questions, err := s.loadTestQuestions(ctx, testID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, apperror.Validation("test has no questions, an attempt cannot be started")
	}

	if !test.AllowRetake {
		done, err := s.attemptRepo.HasCompletedAttempt(testID, userID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if done {
			return nil, apperror.Validation("retakes are not allowed for this test")
		}
	}

	// Shuffle is single-shot: the resulting question order becomes the
	// attempt's persisted snapshot; reads replay it without re-rolling.
	if test.ShuffleQuestions {
		questions = s.shuffle.Questions(questions)
	}
	if test.ShuffleOptions {
		for i := range questions {
			questions[i] = s.shuffle.Options(questions[i])
		}
	}

	snapshot := make([]uint, len(questions))
	for i, q := range questions {
		snapshot[i] = q.ID
	}

	attempt := model.Attempt{
		UserID:         userID,
		TestID:         testID,
		TotalQuestions: len(snapshot),
		StartedAt:      time.Now(),
	}
	if err := attempt.SetQuestionIDs(snapshot); err != nil {
		return nil, apperror.Internal(err)
	}
	if err := s.attemptRepo.Create(&attempt); err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("StartFormal: failed to create attempt")
		return nil, apperror.Internal(err)
	}

	return &dto.AttemptStartDTO{
		AttemptID: attempt.ID,
		Test: dto.TestMetaDTO{
			ID:              test.ID,
			Title:           test.Title,
			Type:            test.Type,
			DurationMinutes: test.DurationMinutes,
			PassingScore:    test.PassingScore,
		},
		Questions: dto.NewQuestionDTOs(questions),
		StartedAt: attempt.StartedAt,
	}, nil
}

// gradedAnswer carries one evaluation result out of the grading goroutines.
type gradedAnswer struct {
	index   int
	payload string
	result  EvaluationResult
}

func (s *attemptService) Submit(ctx context.Context, userID, attemptID uint, req dto.AttemptSubmitDTO) (*dto.AttemptResultDTO, error) {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("attempt", attemptID)
		}
		return nil, apperror.Internal(err)
	}
	if attempt.UserID != userID {
		return nil, apperror.OwnershipViolation("attempt", attemptID)
	}
	if attempt.IsCompleted() {
		return nil, apperror.AlreadyCompleted(attemptID)
	}

	snapshot := attempt.QuestionIDs()
	if len(snapshot) == 0 {
		return nil, apperror.Internal(errors.New("attempt has an empty question snapshot"))
	}
	questions, err := s.questionRepo.FindByIDs(snapshot)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	questionMap := make(map[uint]model.Question, len(questions))
	for _, q := range questions {
		questionMap[q.ID] = q
	}

	submitted := make(map[uint]string, len(req.Answers))
	for _, answer := range req.Answers {
		if _, inSnapshot := questionMap[answer.QuestionID]; !inSnapshot {
			log.Warn().Uint("questionID", answer.QuestionID).Uint("attemptID", attemptID).
				Msg("Submit: answer for a question outside the attempt snapshot, skipping")
			continue
		}
		submitted[answer.QuestionID] = answer.Payload
	}

	// Grade every snapshot question in parallel; a missing submission is an
	// empty payload, scored incorrect, never an error.
	resultsChan := make(chan gradedAnswer, len(snapshot))
	for i, questionID := range snapshot {
		question, ok := questionMap[questionID]
		if !ok {
			log.Warn().Uint("questionID", questionID).Uint("attemptID", attemptID).
				Msg("Submit: snapshot question missing from catalog, scoring as zero")
			resultsChan <- gradedAnswer{index: i, result: EvaluationResult{QuestionID: questionID}}
			continue
		}
		go func(idx int, q model.Question, payload string) {
			resultsChan <- gradedAnswer{
				index:   idx,
				payload: payload,
				result:  s.evaluator.Evaluate(ctx, &q, payload),
			}
		}(i, question, submitted[questionID])
	}

	graded := make([]gradedAnswer, len(snapshot))
	for range snapshot {
		ga := <-resultsChan
		graded[ga.index] = ga
	}
	close(resultsChan)

	results := make([]EvaluationResult, len(graded))
	records := make([]model.AnswerRecord, len(graded))
	for i, ga := range graded {
		results[i] = ga.result
		records[i] = model.AnswerRecord{
			AttemptID:  attemptID,
			QuestionID: ga.result.QuestionID,
			Payload:    ga.payload,
			IsCorrect:  ga.result.IsCorrect,
			Score:      ga.result.Score,
			Feedback:   ga.result.Feedback,
		}
	}

	summary := s.aggregator.Aggregate(results)
	passed := s.aggregator.Passed(summary, attempt.Test.PassingScore)

	accepted, err := s.attemptRepo.Complete(attemptID, repository.AttemptCompletion{
		Score:            summary.Percentage,
		CorrectAnswers:   summary.CorrectAnswers,
		Passed:           passed,
		TimeSpentSeconds: req.TimeSpentSeconds,
		CompletedAt:      time.Now(),
	}, records)
	if err != nil {
		log.Error().Err(err).Uint("attemptID", attemptID).Msg("Submit: failed to complete attempt")
		return nil, apperror.Internal(err)
	}
	if !accepted {
		return nil, apperror.AlreadyCompleted(attemptID)
	}

	return &dto.AttemptResultDTO{
		AttemptID:      attemptID,
		Score:          summary.Percentage,
		CorrectAnswers: summary.CorrectAnswers,
		TotalQuestions: attempt.TotalQuestions,
		Passed:         passed,
	}, nil
}

func (s *attemptService) GetAttemptDetail(ctx context.Context, userID, attemptID uint) (*dto.AttemptDetailDTO, error) {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("attempt", attemptID)
		}
		return nil, apperror.Internal(err)
	}
	if attempt.UserID != userID {
		return nil, apperror.OwnershipViolation("attempt", attemptID)
	}

	records, err := s.answerRepo.FindByAttemptID(attemptID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	// Replay the persisted snapshot order.
	position := make(map[uint]int, attempt.TotalQuestions)
	for i, id := range attempt.QuestionIDs() {
		position[id] = i
	}
	sort.SliceStable(records, func(i, j int) bool {
		return position[records[i].QuestionID] < position[records[j].QuestionID]
	})

	answers := make([]dto.AnswerDetailDTO, len(records))
	for i, record := range records {
		answers[i] = dto.AnswerDetailDTO{
			QuestionID: record.QuestionID,
			Question:   dto.NewQuestionDTO(record.Question),
			Payload:    record.Payload,
			IsCorrect:  record.IsCorrect,
			Score:      record.Score,
			Feedback:   record.Feedback,
		}
	}

	return &dto.AttemptDetailDTO{
		AttemptID:        attempt.ID,
		TestID:           attempt.TestID,
		TestTitle:        attempt.Test.Title,
		Score:            attempt.Score,
		CorrectAnswers:   attempt.CorrectAnswers,
		TotalQuestions:   attempt.TotalQuestions,
		Passed:           attempt.Passed,
		TimeSpentSeconds: attempt.TimeSpentSeconds,
		StartedAt:        attempt.StartedAt,
		CompletedAt:      attempt.CompletedAt,
		Answers:          answers,
	}, nil
}

func (s *attemptService) ListAttempts(ctx context.Context, userID, testID uint) ([]dto.AttemptSummaryDTO, error) {
	attempts, err := s.attemptRepo.FindAllByTestAndUser(testID, userID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("ListAttempts: repository error")
		return nil, apperror.Internal(err)
	}

	summaries := make([]dto.AttemptSummaryDTO, 0, len(attempts))
	for _, attempt := range attempts {
		var summary dto.AttemptSummaryDTO
		if err := copier.Copy(&summary, &attempt); err != nil {
			log.Error().Err(err).Uint("attemptID", attempt.ID).Msg("ListAttempts: failed to copy attempt to summary")
			continue
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *attemptService) loadTest(ctx context.Context, testID uint) (*model.Test, error) {
	key := testCacheKey(testID)
	var cached model.Test
	if cache.GetJSON(ctx, s.contentCache, key, &cached) {
		return &cached, nil
	}

	test, err := s.testRepo.FindByID(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("test", testID)
		}
		return nil, apperror.Internal(err)
	}
	cache.SetJSON(ctx, s.contentCache, key, test, s.cacheTTL)
	return test, nil
}

// loadTestQuestions serves the taker-facing start flow. Cached questions
// carry no correct-answer field (it is excluded from serialization), so the
// grading path in Submit always reads the catalog directly.
func (s *attemptService) loadTestQuestions(ctx context.Context, testID uint) ([]model.Question, error) {
	key := testQuestionsCacheKey(testID)
	var cached []model.Question
	if cache.GetJSON(ctx, s.contentCache, key, &cached) {
		return cached, nil
	}

	questions, err := s.questionRepo.FindByTestID(testID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	cache.SetJSON(ctx, s.contentCache, key, questions, s.cacheTTL)
	return questions, nil
}
