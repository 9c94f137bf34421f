package service

import (
	"fmt"
	"testing"

	"github.com/Harish8848/bhasaguru-sub001/internal/model"
)

func questionFixtures(n int) []model.Question {
	qs := make([]model.Question, n)
	for i := range qs {
		qs[i] = model.Question{ID: uint(i + 1), Type: model.QuestionMultipleChoice, Points: 1}
	}
	return qs
}

func idMultiset(qs []model.Question) map[uint]int {
	set := make(map[uint]int)
	for _, q := range qs {
		set[q.ID]++
	}
	return set
}

func TestQuestionsIsPermutation(t *testing.T) {
	svc := NewShuffleService()
	original := questionFixtures(10)

	shuffled := svc.Questions(original)

	if len(shuffled) != len(original) {
		t.Fatalf("expected %d questions, got %d", len(original), len(shuffled))
	}
	want := idMultiset(original)
	got := idMultiset(shuffled)
	for id, count := range want {
		if got[id] != count {
			t.Errorf("question %d appears %d times after shuffle, want %d", id, got[id], count)
		}
	}
	// The input slice must not be reordered in place.
	for i, q := range original {
		if q.ID != uint(i+1) {
			t.Fatalf("input slice was mutated at index %d", i)
		}
	}
}

func TestQuestionsProducesMultipleOrderings(t *testing.T) {
	svc := NewShuffleService()
	original := questionFixtures(5)

	orderings := make(map[string]bool)
	for i := 0; i < 100; i++ {
		key := ""
		for _, q := range svc.Questions(original) {
			key += fmt.Sprintf("%d,", q.ID)
		}
		orderings[key] = true
	}

	if len(orderings) < 2 {
		t.Fatalf("expected more than one distinct ordering across 100 shuffles, got %d", len(orderings))
	}
}

func TestOptionsShufflePreservesOptionSet(t *testing.T) {
	svc := NewShuffleService()
	q := model.Question{ID: 1, Type: model.QuestionMultipleChoice}
	opts := []string{"ichi", "ni", "san", "yon"}
	if err := q.SetOptions(opts); err != nil {
		t.Fatal(err)
	}

	shuffled := svc.Options(q)

	got := shuffled.OptionList()
	if len(got) != len(opts) {
		t.Fatalf("expected %d options, got %d", len(opts), len(got))
	}
	seen := make(map[string]bool)
	for _, o := range got {
		seen[o] = true
	}
	for _, o := range opts {
		if !seen[o] {
			t.Errorf("option %q missing after shuffle", o)
		}
	}
	// The source question's option order stays untouched.
	src := q.OptionList()
	for i, o := range opts {
		if src[i] != o {
			t.Fatalf("source option order mutated at index %d", i)
		}
	}
}

func TestSampleDrawsWithoutReplacement(t *testing.T) {
	svc := NewShuffleService()
	qs := questionFixtures(8)

	sample := svc.Sample(qs, 5)
	if len(sample) != 5 {
		t.Fatalf("expected sample of 5, got %d", len(sample))
	}
	seen := make(map[uint]bool)
	for _, q := range sample {
		if seen[q.ID] {
			t.Fatalf("question %d drawn twice", q.ID)
		}
		if q.ID < 1 || q.ID > 8 {
			t.Fatalf("question %d is not from the source set", q.ID)
		}
		seen[q.ID] = true
	}
}

func TestSampleLimitExceedsMatches(t *testing.T) {
	svc := NewShuffleService()
	qs := questionFixtures(3)

	sample := svc.Sample(qs, 10)
	if len(sample) != 3 {
		t.Fatalf("expected every match when the limit exceeds them, got %d", len(sample))
	}
}
