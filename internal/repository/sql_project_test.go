package repository

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"testing"

	"github.com/alexanderramin/projects/internal/db"
	"github.com/alexanderramin/projects/internal/domain"
	"github.com/alexanderramin/projects/internal/rowcodec"
	"github.com/alexanderramin/projects/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*sql.DB, *SQLProjectRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	return database, NewSQLProjectRepo(testutil.NewTestUoW(database), rowcodec.Tagged{})
}

func assertDecimal(t *testing.T, want string, got *decimal.Decimal) {
	t.Helper()
	require.NotNil(t, got, "expected %s, got nil", want)
	assert.True(t, decimal.RequireFromString(want).Equal(*got), "expected %s, got %s", want, got.String())
}

func TestProjectRepo_InsertAndFetchByID(t *testing.T) {
	_, repo := newTestRepo(t)
	ctx := context.Background()

	in := testutil.NewTestProject("Build shed",
		testutil.WithEstimatedHours("40.00"),
		testutil.WithDifficulty(3),
		testutil.WithNotes("weekend project"),
	)

	saved, err := repo.Insert(ctx, in)
	require.NoError(t, err)
	assert.Same(t, in, saved, "insert should attach the id to the input project")
	assert.NotZero(t, saved.ID)

	fetched, found, err := repo.FetchByID(ctx, saved.ID)
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, saved.ID, fetched.ID)
	assert.Equal(t, "Build shed", fetched.Name)
	assertDecimal(t, "40.00", fetched.EstimatedHours)
	assert.Nil(t, fetched.ActualHours)
	require.NotNil(t, fetched.Difficulty)
	assert.Equal(t, 3, *fetched.Difficulty)
	require.NotNil(t, fetched.Notes)
	assert.Equal(t, "weekend project", *fetched.Notes)

	assert.NotNil(t, fetched.Materials)
	assert.Empty(t, fetched.Materials)
	assert.NotNil(t, fetched.Steps)
	assert.Empty(t, fetched.Steps)
	assert.NotNil(t, fetched.Categories)
	assert.Empty(t, fetched.Categories)
}

func TestProjectRepo_Insert_AllNullables(t *testing.T) {
	_, repo := newTestRepo(t)
	ctx := context.Background()

	saved, err := repo.Insert(ctx, &domain.Project{Name: "Bare"})
	require.NoError(t, err)

	fetched, found, err := repo.FetchByID(ctx, saved.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Bare", fetched.Name)
	assert.Nil(t, fetched.EstimatedHours)
	assert.Nil(t, fetched.ActualHours)
	assert.Nil(t, fetched.Difficulty)
	assert.Nil(t, fetched.Notes)
}

func TestProjectRepo_Insert_FreshIDs(t *testing.T) {
	_, repo := newTestRepo(t)
	ctx := context.Background()

	first, err := repo.Insert(ctx, testutil.NewTestProject("First"))
	require.NoError(t, err)
	deleted, err := repo.Delete(ctx, first.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	second, err := repo.Insert(ctx, testutil.NewTestProject("Second"))
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID, "ids of deleted projects must not be handed out again")
}

func TestProjectRepo_Insert_RoundsHoursToScale(t *testing.T) {
	_, repo := newTestRepo(t)
	ctx := context.Background()

	saved, err := repo.Insert(ctx, testutil.NewTestProject("Rounding",
		testutil.WithEstimatedHours("7.125"),
		testutil.WithActualHours("2.5"),
	))
	require.NoError(t, err)

	fetched, _, err := repo.FetchByID(ctx, saved.ID)
	require.NoError(t, err)
	assertDecimal(t, "7.13", fetched.EstimatedHours)
	assertDecimal(t, "2.50", fetched.ActualHours)
}

func TestProjectRepo_FetchByID_NotFound(t *testing.T) {
	_, repo := newTestRepo(t)

	p, found, err := repo.FetchByID(context.Background(), 4242)
	require.NoError(t, err, "absence is not a storage error")
	assert.False(t, found)
	assert.Nil(t, p)
}

func TestProjectRepo_FetchByID_PopulatesCollections(t *testing.T) {
	database, repo := newTestRepo(t)
	ctx := context.Background()

	p, err := repo.Insert(ctx, testutil.NewTestProject("Garden bed"))
	require.NoError(t, err)

	testutil.SeedMaterial(t, database, p.ID, "Cedar board", 6, "18.50")
	testutil.SeedMaterial(t, database, p.ID, "Deck screws", 1, "9.99")
	testutil.SeedStep(t, database, p.ID, "Fill with soil", 3)
	testutil.SeedStep(t, database, p.ID, "Cut boards", 1)
	testutil.SeedStep(t, database, p.ID, "Assemble frame", 2)
	outdoor := testutil.SeedCategory(t, database, "Outdoor")
	garden := testutil.SeedCategory(t, database, "Garden")
	testutil.SeedCategory(t, database, "Unlinked")
	testutil.LinkCategory(t, database, p.ID, outdoor)
	testutil.LinkCategory(t, database, p.ID, garden)

	fetched, found, err := repo.FetchByID(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, found)

	require.Len(t, fetched.Materials, 2)
	assert.Equal(t, "Cedar board", fetched.Materials[0].Name)
	assert.Equal(t, p.ID, fetched.Materials[0].ProjectID)
	require.NotNil(t, fetched.Materials[0].NumRequired)
	assert.Equal(t, 6, *fetched.Materials[0].NumRequired)
	assertDecimal(t, "18.50", fetched.Materials[0].Cost)

	require.Len(t, fetched.Steps, 3)
	assert.Equal(t, []string{"Cut boards", "Assemble frame", "Fill with soil"},
		[]string{fetched.Steps[0].Text, fetched.Steps[1].Text, fetched.Steps[2].Text},
		"steps should come back in step order")

	require.Len(t, fetched.Categories, 2)
	assert.Equal(t, "Garden", fetched.Categories[0].Name)
	assert.Equal(t, garden, fetched.Categories[0].ID)
	assert.Equal(t, "Outdoor", fetched.Categories[1].Name)

	all, err := repo.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, p.ID, all[0].ID)
	assert.Nil(t, all[0].Materials, "summary view carries no materials")
	assert.Nil(t, all[0].Steps, "summary view carries no steps")
	assert.Nil(t, all[0].Categories, "summary view carries no categories")
}

func TestProjectRepo_FetchByID_CollectionsAreScopedToProject(t *testing.T) {
	database, repo := newTestRepo(t)
	ctx := context.Background()

	a, err := repo.Insert(ctx, testutil.NewTestProject("A"))
	require.NoError(t, err)
	b, err := repo.Insert(ctx, testutil.NewTestProject("B"))
	require.NoError(t, err)

	testutil.SeedMaterial(t, database, a.ID, "Glue", 1, "3.00")
	testutil.SeedStep(t, database, b.ID, "Sand", 1)

	fetchedA, _, err := repo.FetchByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, fetchedA.Materials, 1)
	assert.Empty(t, fetchedA.Steps)

	fetchedB, _, err := repo.FetchByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, fetchedB.Materials)
	assert.Len(t, fetchedB.Steps, 1)
}

func TestProjectRepo_FetchAll_Empty(t *testing.T) {
	_, repo := newTestRepo(t)

	all, err := repo.FetchAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestProjectRepo_FetchAll_SortedByName(t *testing.T) {
	_, repo := newTestRepo(t)
	ctx := context.Background()

	names := []string{"Workbench", "Bird house", "Shelf", "Adirondack chair", "Shelf", "Coat rack"}
	for _, n := range names {
		_, err := repo.Insert(ctx, testutil.NewTestProject(n))
		require.NoError(t, err)
	}

	all, err := repo.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, len(names))

	got := make([]string, len(all))
	for i, p := range all {
		got[i] = p.Name
	}
	assert.True(t, sort.StringsAreSorted(got), "expected non-decreasing names, got %v", got)
}

func TestProjectRepo_Update(t *testing.T) {
	database, repo := newTestRepo(t)
	ctx := context.Background()

	p, err := repo.Insert(ctx, testutil.NewTestProject("Bookcase",
		testutil.WithEstimatedHours("12.00"),
		testutil.WithDifficulty(2),
		testutil.WithNotes("pine"),
	))
	require.NoError(t, err)
	testutil.SeedMaterial(t, database, p.ID, "Pine board", 4, "12.00")
	testutil.SeedStep(t, database, p.ID, "Cut shelves", 1)

	changed := testutil.NewTestProject("Oak bookcase",
		testutil.WithEstimatedHours("20.00"),
		testutil.WithActualHours("22.75"),
		testutil.WithDifficulty(4),
		testutil.WithNotes("oak instead"),
	)
	changed.ID = p.ID

	ok, err := repo.Update(ctx, changed)
	require.NoError(t, err)
	assert.True(t, ok)

	fetched, _, err := repo.FetchByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Oak bookcase", fetched.Name)
	assertDecimal(t, "20.00", fetched.EstimatedHours)
	assertDecimal(t, "22.75", fetched.ActualHours)
	assert.Equal(t, 4, *fetched.Difficulty)
	assert.Equal(t, "oak instead", *fetched.Notes)
	assert.Len(t, fetched.Materials, 1, "update must not touch materials")
	assert.Len(t, fetched.Steps, 1, "update must not touch steps")
}

func TestProjectRepo_Update_ClearsNullableFields(t *testing.T) {
	_, repo := newTestRepo(t)
	ctx := context.Background()

	p, err := repo.Insert(ctx, testutil.NewTestProject("Clearing", testutil.WithActualHours("3.00")))
	require.NoError(t, err)

	ok, err := repo.Update(ctx, &domain.Project{ID: p.ID, Name: "Cleared"})
	require.NoError(t, err)
	require.True(t, ok)

	fetched, _, err := repo.FetchByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.EstimatedHours)
	assert.Nil(t, fetched.ActualHours)
	assert.Nil(t, fetched.Difficulty)
	assert.Nil(t, fetched.Notes)
}

func TestProjectRepo_Update_NotFound(t *testing.T) {
	database, repo := newTestRepo(t)
	ctx := context.Background()

	existing, err := repo.Insert(ctx, testutil.NewTestProject("Untouched"))
	require.NoError(t, err)

	ghost := testutil.NewTestProject("Ghost")
	ghost.ID = existing.ID + 100
	ok, err := repo.Update(ctx, ghost)
	require.NoError(t, err, "zero affected rows is not an error")
	assert.False(t, ok)

	fetched, _, err := repo.FetchByID(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Untouched", fetched.Name)
	assert.Equal(t, 1, testutil.CountRows(t, database, "project", ""))
}

func TestProjectRepo_Delete_NotFound(t *testing.T) {
	_, repo := newTestRepo(t)

	ok, err := repo.Delete(context.Background(), 999)
	require.NoError(t, err)
	assert.False(t, ok)
}

type unreachableProvider struct{}

func (unreachableProvider) Conn(context.Context) (*sql.Conn, error) {
	return nil, errors.New("connection refused")
}

func TestProjectRepo_ConnectionFailure(t *testing.T) {
	repo := NewSQLProjectRepo(db.NewSQLUnitOfWork(unreachableProvider{}, db.DriverSQLite), rowcodec.Tagged{})
	ctx := context.Background()

	p := testutil.NewTestProject("Offline")
	_, err := repo.Insert(ctx, p)
	require.Error(t, err)
	assert.ErrorIs(t, err, db.ErrConnection)
	assert.NotErrorIs(t, err, db.ErrStorage, "connectivity is reported separately from statement failures")
	assert.Zero(t, p.ID)

	_, _, err = repo.FetchByID(ctx, 1)
	assert.ErrorIs(t, err, db.ErrConnection)

	_, err = repo.FetchAll(ctx)
	assert.ErrorIs(t, err, db.ErrConnection)
}

func TestProjectRepo_ScenarioExample(t *testing.T) {
	_, repo := newTestRepo(t)
	ctx := context.Background()

	est := decimal.RequireFromString("40.00")
	difficulty := 3
	notes := "weekend project"
	in := &domain.Project{Name: "Build shed", EstimatedHours: &est, Difficulty: &difficulty, Notes: &notes}

	saved, err := repo.Insert(ctx, in)
	require.NoError(t, err)
	require.NotZero(t, saved.ID)

	fetched, found, err := repo.FetchByID(ctx, saved.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, saved.ID, fetched.ID)
	assert.Equal(t, saved.Name, fetched.Name)
	assertDecimal(t, "40", fetched.EstimatedHours)
	assert.Nil(t, fetched.ActualHours)
	assert.Equal(t, *saved.Difficulty, *fetched.Difficulty)
	assert.Equal(t, *saved.Notes, *fetched.Notes)
	assert.True(t, fetched.HasDetails())
	assert.Empty(t, fetched.Materials)
	assert.Empty(t, fetched.Steps)
	assert.Empty(t, fetched.Categories)
}
