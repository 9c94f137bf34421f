package service

import (
	"math/rand"

	"github.com/Harish8848/bhasaguru-sub001/internal/model"
)

// ShuffleService produces uniform random permutations (Fisher-Yates via
// rand.Shuffle) of question and option order. Callers invoke it exactly
// once per attempt start and persist the result; reads never re-roll.
type ShuffleService interface {
	// Questions returns a shuffled copy of qs.
	Questions(qs []model.Question) []model.Question
	// Options returns q with its option order shuffled. The input is not
	// modified.
	Options(q model.Question) model.Question
	// Sample draws min(n, len(qs)) questions uniformly without replacement.
	Sample(qs []model.Question, n int) []model.Question
}

type shuffleService struct{}

func NewShuffleService() ShuffleService {
	return &shuffleService{}
}

func (s *shuffleService) Questions(qs []model.Question) []model.Question {
	shuffled := make([]model.Question, len(qs))
	copy(shuffled, qs)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

func (s *shuffleService) Options(q model.Question) model.Question {
	opts := q.OptionList()
	if len(opts) < 2 {
		return q
	}
	rand.Shuffle(len(opts), func(i, j int) {
		opts[i], opts[j] = opts[j], opts[i]
	})
	// Encoding a []string cannot fail; keep the original on the off chance.
	if err := q.SetOptions(opts); err != nil {
		return q
	}
	return q
}

func (s *shuffleService) Sample(qs []model.Question, n int) []model.Question {
	if n > len(qs) {
		n = len(qs)
	}
	if n < 0 {
		n = 0
	}
	sample := make([]model.Question, 0, n)
	for _, idx := range rand.Perm(len(qs))[:n] {
		sample = append(sample, qs[idx])
	}
	return sample
}
