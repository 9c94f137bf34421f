package service

import (
	"context"
	"testing"
	"time"

	"github.com/Harish8848/bhasaguru-sub001/internal/apperror"
	"github.com/Harish8848/bhasaguru-sub001/internal/cache"
	"github.com/Harish8848/bhasaguru-sub001/internal/dto"
	"github.com/Harish8848/bhasaguru-sub001/internal/model"
)

func validTestCreate() dto.TestCreateDTO {
	return dto.TestCreateDTO{
		Title:        "Spanish A1 Placement",
		Type:         model.TestFormal,
		PassingScore: 60,
		AllowRetake:  true,
		Questions: []dto.QuestionCreateDTO{
			{
				Type:          model.QuestionMultipleChoice,
				Prompt:        "hello?",
				Options:       []string{"hola", "adios"},
				CorrectAnswer: "hola",
				Points:        1,
				OrderIndex:    1,
			},
			{
				Type:       model.QuestionWriting,
				Prompt:     "introduce yourself",
				Points:     5,
				OrderIndex: 2,
			},
		},
	}
}

func TestCreateTestRoundTrip(t *testing.T) {
	repo := &countingTestRepo{tests: map[uint]model.Test{}}
	svc := NewAdminTestService(repo, cache.NewMemoryCache())

	detail, err := svc.CreateTest(context.Background(), validTestCreate())
	if err != nil {
		t.Fatal(err)
	}
	if detail.Title != "Spanish A1 Placement" {
		t.Errorf("Title = %q", detail.Title)
	}
	if len(detail.Questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(detail.Questions))
	}

	stored := repo.tests[detail.ID]
	if stored.QuestionCount != 2 {
		t.Errorf("QuestionCount = %d, want 2", stored.QuestionCount)
	}
	if stored.Questions[0].CorrectAnswer != "hola" {
		t.Error("the answer key must be persisted for grading")
	}
}

func TestCreateTestValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dto.TestCreateDTO)
	}{
		{"unknown question type", func(req *dto.TestCreateDTO) {
			req.Questions[0].Type = "essay_freeform"
		}},
		{"duplicate order index", func(req *dto.TestCreateDTO) {
			req.Questions[1].OrderIndex = req.Questions[0].OrderIndex
		}},
		{"objective question without answer key", func(req *dto.TestCreateDTO) {
			req.Questions[0].CorrectAnswer = ""
		}},
		{"multiple choice with one option", func(req *dto.TestCreateDTO) {
			req.Questions[0].Options = []string{"hola"}
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := &countingTestRepo{tests: map[uint]model.Test{}}
			svc := NewAdminTestService(repo, cache.NewMemoryCache())

			req := validTestCreate()
			tc.mutate(&req)

			_, err := svc.CreateTest(context.Background(), req)
			if apperror.KindOf(err) != apperror.KindValidation {
				t.Fatalf("expected a validation error, got %v", err)
			}
			if len(repo.tests) != 0 {
				t.Error("a rejected request must not persist anything")
			}
		})
	}
}

func TestCreateTestInvalidatesTestCaches(t *testing.T) {
	repo := &countingTestRepo{tests: map[uint]model.Test{}}
	c := cache.NewMemoryCache()
	svc := NewAdminTestService(repo, c)
	ctx := context.Background()

	stale := []string{
		testListCacheKey,
		testCacheKey(1),
		testQuestionsCacheKey(1),
		testDetailCacheKey(1),
	}
	for _, key := range stale {
		c.Set(ctx, key, []byte("stale"), time.Minute)
	}
	c.Set(ctx, "session:9", []byte("unrelated"), time.Minute)

	if _, err := svc.CreateTest(ctx, validTestCreate()); err != nil {
		t.Fatal(err)
	}

	for _, key := range stale {
		if _, ok := c.Get(ctx, key); ok {
			t.Errorf("key %q should have been invalidated by the registry write", key)
		}
	}
	if _, ok := c.Get(ctx, "session:9"); !ok {
		t.Error("unrelated keys must survive the invalidation")
	}
}
