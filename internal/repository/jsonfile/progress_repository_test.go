package jsonfile_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mkessler/stemtutor/internal/models"
	"github.com/mkessler/stemtutor/internal/repository"
	"github.com/mkessler/stemtutor/internal/repository/jsonfile"
	"github.com/mkessler/stemtutor/internal/store"
	"github.com/mkessler/stemtutor/internal/testutil"
)

type ProgressRepositorySuite struct {
	suite.Suite
	mem  *store.Memory
	repo repository.ProgressRepository
}

func (s *ProgressRepositorySuite) SetupTest() {
	queue, mem := testutil.NewMemoryQueue(s.T())
	s.mem = mem
	s.repo = jsonfile.NewProgressRepository(queue)
}

func (s *ProgressRepositorySuite) TestGetMissingRecord() {
	_, err := s.repo.Get(context.Background())
	s.Assert().ErrorIs(err, store.ErrNotFound)
}

func (s *ProgressRepositorySuite) TestMergeOntoDefaults() {
	ctx := context.Background()

	xp := 50
	p, err := s.repo.Merge(ctx, models.ProgressPatch{TotalXP: &xp})
	s.Require().NoError(err)

	s.Assert().Equal(50, p.TotalXP)
	s.Assert().Equal(1, p.Level, "untouched fields come from the defaults")
	s.Assert().Equal(0, p.Streak)
	s.Assert().Nil(p.LastActivity)
	s.Assert().Empty(p.CompletedSkills)
	s.Assert().Empty(p.Achievements)
}

func (s *ProgressRepositorySuite) TestMergePreservesUntouchedFields() {
	ctx := context.Background()

	xp, level, streak := 100, 2, 3
	now := time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)
	_, err := s.repo.Merge(ctx, models.ProgressPatch{
		TotalXP:         &xp,
		Level:           &level,
		Streak:          &streak,
		LastActivity:    &now,
		CompletedSkills: &[]string{"skill-arithmetic"},
	})
	s.Require().NoError(err)

	newXP := 150
	p, err := s.repo.Merge(ctx, models.ProgressPatch{TotalXP: &newXP})
	s.Require().NoError(err)

	s.Assert().Equal(150, p.TotalXP)
	s.Assert().Equal(2, p.Level)
	s.Assert().Equal(3, p.Streak)
	s.Require().NotNil(p.LastActivity)
	s.Assert().True(now.Equal(*p.LastActivity))
	s.Assert().Equal([]string{"skill-arithmetic"}, p.CompletedSkills)
}

func (s *ProgressRepositorySuite) TestSingletonNeverAnArray() {
	ctx := context.Background()

	xp := 10
	_, err := s.repo.Merge(ctx, models.ProgressPatch{TotalXP: &xp})
	s.Require().NoError(err)
	_, err = s.repo.Merge(ctx, models.ProgressPatch{TotalXP: &xp})
	s.Require().NoError(err)

	raw := s.mem.Raw("progress")
	s.Require().NotNil(raw)
	s.Assert().Equal(byte('{'), raw[0], "progress is stored as a single object")

	p, err := s.repo.Get(ctx)
	s.Require().NoError(err)
	s.Assert().Equal(10, p.TotalXP)
}

func (s *ProgressRepositorySuite) TestEnsureWritesDefaults() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Ensure(ctx))

	p, err := s.repo.Get(ctx)
	s.Require().NoError(err)
	s.Assert().Equal(models.DefaultProgress(), *p)
}

func TestProgressRepositorySuite(t *testing.T) {
	suite.Run(t, new(ProgressRepositorySuite))
}
