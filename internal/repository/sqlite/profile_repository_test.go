package sqlite_test

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/profilesvc/internal/models"
	"github.com/vytor/profilesvc/internal/repository"
	"github.com/vytor/profilesvc/internal/repository/sqlite"
	"github.com/vytor/profilesvc/internal/testutil"
)

type ProfileRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.ProfileRepository
	t0   time.Time
}

func (s *ProfileRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewProfileRepository(s.db)
	s.t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
}

func (s *ProfileRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *ProfileRepositorySuite) TestGet_NotFound() {
	p, err := s.repo.Get(context.Background(), "missing")
	s.Require().NoError(err)
	s.Assert().Nil(p)
}

func (s *ProfileRepositorySuite) TestUpsert_CreateStoresRow() {
	ctx := context.Background()

	res, err := s.repo.Upsert(ctx, "u1", models.ProfileUpdate{
		Email: models.StringPtr("a@x.com"),
		Name:  models.StringPtr("A"),
	}, s.t0)
	s.Require().NoError(err)
	s.Assert().Equal(models.Created, res.Outcome)

	got, err := s.repo.Get(ctx, "u1")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal("u1", got.UserID)
	s.Assert().Equal("a@x.com", *got.Email)
	s.Assert().Equal("A", *got.Name)
	s.Assert().True(s.t0.Equal(got.CreatedAt), "created_at %v", got.CreatedAt)
	s.Assert().True(s.t0.Equal(got.UpdatedAt), "updated_at %v", got.UpdatedAt)
}

func (s *ProfileRepositorySuite) TestUpsert_AbsentFieldsStoredAsNull() {
	ctx := context.Background()

	_, err := s.repo.Upsert(ctx, "u1", models.ProfileUpdate{}, s.t0)
	s.Require().NoError(err)

	got, err := s.repo.Get(ctx, "u1")
	s.Require().NoError(err)
	s.Assert().Nil(got.Email)
	s.Assert().Nil(got.Name)
}

func (s *ProfileRepositorySuite) TestUpsert_UpdateKeepsUnsuppliedFields() {
	ctx := context.Background()

	_, err := s.repo.Upsert(ctx, "u1", models.ProfileUpdate{
		Email: models.StringPtr("a@x.com"),
		Name:  models.StringPtr("A"),
	}, s.t0)
	s.Require().NoError(err)

	t1 := s.t0.Add(2 * time.Second)
	res, err := s.repo.Upsert(ctx, "u1", models.ProfileUpdate{
		Email: models.StringPtr(""),
		Name:  models.StringPtr("B"),
	}, t1)
	s.Require().NoError(err)
	s.Assert().Equal(models.Updated, res.Outcome)

	got, err := s.repo.Get(ctx, "u1")
	s.Require().NoError(err)
	s.Assert().Equal("a@x.com", *got.Email)
	s.Assert().Equal("B", *got.Name)
	s.Assert().True(s.t0.Equal(got.CreatedAt))
	s.Assert().True(t1.Equal(got.UpdatedAt))

	n, err := s.repo.Count(ctx)
	s.Require().NoError(err)
	s.Assert().Equal(1, n)
}

func (s *ProfileRepositorySuite) TestCount() {
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c", "a"} {
		_, err := s.repo.Upsert(ctx, id, models.ProfileUpdate{}, s.t0)
		s.Require().NoError(err)
	}

	n, err := s.repo.Count(ctx)
	s.Require().NoError(err)
	s.Assert().Equal(3, n)
}

func (s *ProfileRepositorySuite) TestUpsert_ConcurrentWritersKeepOneRecord() {
	ctx := context.Background()
	const writers = 40

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			update := models.ProfileUpdate{Name: models.StringPtr(fmt.Sprintf("n%d", i))}
			if i%2 == 0 {
				update = models.ProfileUpdate{Email: models.StringPtr(fmt.Sprintf("e%d@x.com", i))}
			}
			_, err := s.repo.Upsert(ctx, "shared", update, s.t0.Add(time.Duration(i)*time.Millisecond))
			s.Assert().NoError(err)
		}(i)
	}
	wg.Wait()

	n, err := s.repo.Count(ctx)
	s.Require().NoError(err)
	s.Assert().Equal(1, n)

	got, err := s.repo.Get(ctx, "shared")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Require().NotNil(got.Email)
	s.Require().NotNil(got.Name)
	s.Assert().False(got.UpdatedAt.Before(got.CreatedAt))
}

func TestProfileRepositorySuite(t *testing.T) {
	suite.Run(t, new(ProfileRepositorySuite))
}
