package jsonfile_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mkessler/stemtutor/internal/models"
	"github.com/mkessler/stemtutor/internal/repository"
	"github.com/mkessler/stemtutor/internal/repository/jsonfile"
	"github.com/mkessler/stemtutor/internal/store"
	"github.com/mkessler/stemtutor/internal/testutil"
)

type FlashcardRepositorySuite struct {
	suite.Suite
	mem  *store.Memory
	repo repository.FlashcardRepository
}

func (s *FlashcardRepositorySuite) SetupTest() {
	queue, mem := testutil.NewMemoryQueue(s.T())
	s.mem = mem
	s.repo = jsonfile.NewFlashcardRepository(queue)
}

func (s *FlashcardRepositorySuite) card(id, subject string) models.Flashcard {
	return models.Flashcard{
		ID:         id,
		Question:   "What is 2+2?",
		Answer:     "4",
		Subject:    subject,
		Difficulty: models.DifficultyEasy,
		Tags:       []string{"arithmetic"},
		Created:    time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC),
	}
}

func (s *FlashcardRepositorySuite) TestInsertAndList() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Insert(ctx, s.card("c1", "math")))
	s.Require().NoError(s.repo.Insert(ctx, s.card("c2", "math")))

	cards, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(cards, 2)
	s.Assert().Equal("c1", cards[0].ID)
	s.Assert().Equal("c2", cards[1].ID)
	s.Assert().Equal("What is 2+2?", cards[0].Question)
	s.Assert().Nil(cards[0].LastReviewed)
}

func (s *FlashcardRepositorySuite) TestListMissingCollection() {
	_, err := s.repo.List(context.Background())
	s.Assert().ErrorIs(err, store.ErrNotFound)
}

func (s *FlashcardRepositorySuite) TestEnsureCreatesEmptyCollection() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Ensure(ctx))

	cards, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Assert().Empty(cards)
}

func (s *FlashcardRepositorySuite) TestApplyPreservesOmittedFields() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Insert(ctx, s.card("c1", "math")))

	answer := "four"
	updated, err := s.repo.Apply(ctx, "c1", models.FlashcardPatch{Answer: &answer})
	s.Require().NoError(err)
	s.Require().NotNil(updated)

	s.Assert().Equal("four", updated.Answer)
	s.Assert().Equal("What is 2+2?", updated.Question, "omitted field must keep its stored value")
	s.Assert().Equal("math", updated.Subject)
	s.Assert().Equal([]string{"arithmetic"}, updated.Tags)
	s.Require().NotNil(updated.Updated)
}

func (s *FlashcardRepositorySuite) TestApplyUnknownID() {
	answer := "four"
	updated, err := s.repo.Apply(context.Background(), "nope", models.FlashcardPatch{Answer: &answer})
	s.Require().NoError(err)
	s.Assert().Nil(updated)
}

func (s *FlashcardRepositorySuite) TestDeleteUnknownIDLeavesCollectionUntouched() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Insert(ctx, s.card("c1", "math")))
	before := s.mem.Raw("flashcards")

	found, err := s.repo.Delete(ctx, "nope")
	s.Require().NoError(err)
	s.Assert().False(found)
	s.Assert().Equal(before, s.mem.Raw("flashcards"), "document must be byte-for-byte unchanged")
}

func (s *FlashcardRepositorySuite) TestDelete() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Insert(ctx, s.card("c1", "math")))
	s.Require().NoError(s.repo.Insert(ctx, s.card("c2", "physics")))

	found, err := s.repo.Delete(ctx, "c1")
	s.Require().NoError(err)
	s.Assert().True(found)

	cards, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(cards, 1)
	s.Assert().Equal("c2", cards[0].ID)
}

func (s *FlashcardRepositorySuite) TestReviewMonotonicity() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Insert(ctx, s.card("c1", "math")))

	results := []bool{true, false, true, true, false}
	correct := 0
	var card *models.Flashcard
	var err error
	for _, res := range results {
		card, err = s.repo.RecordReview(ctx, "c1", res)
		s.Require().NoError(err)
		s.Require().NotNil(card)
		if res {
			correct++
		}
	}

	s.Assert().Equal(len(results), card.TimesReviewed)
	s.Assert().Equal(correct, card.CorrectCount)
	s.Require().NotNil(card.LastReviewed)
	s.Assert().WithinDuration(time.Now().UTC(), *card.LastReviewed, time.Minute)
}

func (s *FlashcardRepositorySuite) TestConcurrentInsertsAllPersist() {
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			card := s.card(string(rune('a'+i)), "math")
			s.Assert().NoError(s.repo.Insert(ctx, card))
		}(i)
	}
	wg.Wait()

	cards, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Assert().Len(cards, n, "serialized writes must not lose concurrent creates")
}

func (s *FlashcardRepositorySuite) TestCountBySubject() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Insert(ctx, s.card("c1", "math")))
	s.Require().NoError(s.repo.Insert(ctx, s.card("c2", "math")))
	s.Require().NoError(s.repo.Insert(ctx, s.card("c3", "physics")))

	counts, err := s.repo.CountBySubject(ctx)
	s.Require().NoError(err)
	s.Assert().Equal(map[string]int{"math": 2, "physics": 1}, counts)
}

func (s *FlashcardRepositorySuite) TestCountBySubjectEmptyStore() {
	counts, err := s.repo.CountBySubject(context.Background())
	s.Require().NoError(err)
	s.Assert().Empty(counts)
}

func TestFlashcardRepositorySuite(t *testing.T) {
	suite.Run(t, new(FlashcardRepositorySuite))
}
