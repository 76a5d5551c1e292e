package service

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vietanh2810/lucky-ticket-api/internal/domain"
)

const fallbackExplanation = "The AI assistant is busy right now, so here are six " +
	"random lucky numbers picked just for you. Good luck!"

type NumberGenerator interface {
	GenerateNumbers(ctx context.Context) (domain.Suggestion, error)
}

// SuggestionService wraps the external number generator so that suggestion
// requests never fail: a bad or slow upstream answer degrades to a local
// random draw.
type SuggestionService struct {
	gen NumberGenerator

	mu  sync.Mutex
	rng *rand.Rand
}

func NewSuggestionService(gen NumberGenerator) *SuggestionService {
	return &SuggestionService{
		gen: gen,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Suggest returns six distinct numbers in range plus an explanation. The
// upstream generator gets one retry before the local fallback kicks in.
func (s *SuggestionService) Suggest(ctx context.Context) domain.Suggestion {
	for attempt := 0; attempt < 2; attempt++ {
		suggestion, err := s.gen.GenerateNumbers(ctx)
		if err != nil {
			zap.L().Warn("number generator failed", zap.Int("attempt", attempt+1), zap.Error(err))
			continue
		}

		if domain.Ticket(suggestion.Numbers).Validate() != nil || suggestion.Explanation == "" {
			zap.L().Warn("number generator returned unusable suggestion",
				zap.Int("attempt", attempt+1),
				zap.Ints("numbers", suggestion.Numbers))
			continue
		}

		sort.Ints(suggestion.Numbers)

		return suggestion
	}

	return domain.Suggestion{
		Numbers:     s.localDraw(),
		Explanation: fallbackExplanation,
	}
}

func (s *SuggestionService) localDraw() []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	picked := make(map[int]struct{}, domain.TicketSize)
	numbers := make([]int, 0, domain.TicketSize)
	for len(numbers) < domain.TicketSize {
		n := s.rng.Intn(domain.MaxNumber) + domain.MinNumber
		if _, ok := picked[n]; ok {
			continue
		}
		picked[n] = struct{}{}
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	return numbers
}
