package repository_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/cinema-box-office/internal/apperror"
	"github.com/iliyamo/cinema-box-office/internal/model"
	"github.com/iliyamo/cinema-box-office/internal/repository"
	"github.com/iliyamo/cinema-box-office/internal/utils"
)

func TestMovieRepoLifecycle(t *testing.T) {
	repo := repository.NewMovieRepo()
	hall := &model.Hall{Name: "Hall A", Capacity: 20}
	a, _ := model.NewMovie(model.MovieConfig{Title: "Inception", Price: "12", Hall: hall})
	b, _ := model.NewMovie(model.MovieConfig{Title: "Parasite", Price: "10", Hall: hall})
	require.NoError(t, repo.Create(a))
	require.NoError(t, repo.Create(b))
	assert.True(t, errors.Is(repo.Create(a), apperror.ErrConflict))

	got, err := repo.GetByID(b.ID)
	require.NoError(t, err)
	assert.Same(t, b, got)

	got, err = repo.GetByTitle("Inception")
	require.NoError(t, err)
	assert.Same(t, a, got)

	require.NoError(t, repo.Delete(a.ID))
	assert.Equal(t, []*model.Movie{b}, repo.List())
	_, err = repo.GetByID(a.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
	assert.True(t, errors.Is(repo.Delete(a.ID), apperror.ErrNotFound))
}

func TestHallRepoUniqueNames(t *testing.T) {
	repo := repository.NewHallRepo()
	require.NoError(t, repo.Create(&model.Hall{Name: "IMAX Hall", Capacity: 50}))
	assert.True(t, errors.Is(repo.Create(&model.Hall{Name: "imax hall", Capacity: 10}), apperror.ErrConflict))

	h, err := repo.GetByName("IMAX HALL")
	require.NoError(t, err)
	assert.Equal(t, 50, h.Capacity)
	assert.Len(t, repo.List(), 1)

	_, err = repo.GetByName("nope")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestUserRepoHashesAndRejectsDuplicates(t *testing.T) {
	repo := repository.NewUserRepo(bcrypt.MinCost)
	u, err := repo.Create("customer", "ann", "pw")
	require.NoError(t, err)
	assert.True(t, utils.VerifyPassword(u.PasswordHash, "pw"))

	_, err = repo.Create("admin", "ann", "x")
	assert.True(t, errors.Is(err, apperror.ErrConflict))

	_, err = repo.Create("owner", "bob", "x")
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))

	// taken names are refused before the password is looked at
	_, err = repo.Create("customer", " ann ", "")
	assert.True(t, errors.Is(err, apperror.ErrConflict))
	_, err = repo.Create("customer", "ann", strings.Repeat("p", 100))
	assert.True(t, errors.Is(err, apperror.ErrConflict))

	_, err = repo.Create("customer", "bob", "")
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
	_, err = repo.GetByUsername("bob")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	got, err := repo.GetByUsername("ann")
	require.NoError(t, err)
	assert.Same(t, u, got)
	_, err = repo.GetByUsername("zed")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}
