package meet

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muhammedfarooqchalil-dev/sportiva-2k26-jamia/db"
	"github.com/muhammedfarooqchalil-dev/sportiva-2k26-jamia/kv"
)

func newTestService(t *testing.T) (*Service, *db.DB) {
	t.Helper()
	d := db.New(kv.NewMemory())
	return NewService(d), d
}

func mustLoad(t *testing.T, d *db.DB) *db.Document {
	t.Helper()
	doc, err := d.Load()
	require.NoError(t, err)
	return doc
}

func TestAddEvent(t *testing.T) {
	s, d := newTestService(t)

	e, err := s.AddEvent("  Long Jump ", db.CategoryAthletics)
	require.NoError(t, err)
	assert.Equal(t, "Long Jump", e.Name)
	assert.Equal(t, db.CategoryAthletics, e.Type)
	assert.False(t, e.IsCompleted)
	assert.NotEmpty(t, e.ID)

	doc := mustLoad(t, d)
	require.Len(t, doc.Events, 6)
	assert.Equal(t, *e, doc.Events[5])
}

func TestAddEventValidation(t *testing.T) {
	s, d := newTestService(t)

	for _, tc := range []struct {
		name     string
		category db.Category
	}{
		{"", db.CategoryGames},
		{"   \t", db.CategoryGames},
		{"Chess", db.Category("Board")},
	} {
		_, err := s.AddEvent(tc.name, tc.category)
		assert.ErrorIs(t, err, ErrValidation, "%q %q", tc.name, tc.category)
	}

	assert.Len(t, mustLoad(t, d).Events, 5)
}

func TestAddEventRegeneratesCollidingID(t *testing.T) {
	s, _ := newTestService(t)
	ids := []string{"1", "2", "fresh"}
	s.newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}

	e, err := s.AddEvent("Chess", db.CategoryGames)
	require.NoError(t, err)
	assert.Equal(t, "fresh", e.ID)
}

func TestEventIDsUnique(t *testing.T) {
	s, d := newTestService(t)

	var added []string
	for i := 0; i < 20; i++ {
		e, err := s.AddEvent(fmt.Sprintf("Event %d", i), db.CategoryGames)
		require.NoError(t, err)
		added = append(added, e.ID)
		if i%3 == 0 {
			require.NoError(t, s.DeleteEvent(added[i/2]))
		}
	}

	seen := make(map[string]bool)
	for _, e := range mustLoad(t, d).Events {
		assert.False(t, seen[e.ID], "duplicate id %s", e.ID)
		seen[e.ID] = true
	}
}

func TestDeleteEventCascades(t *testing.T) {
	s, d := newTestService(t)

	_, err := s.AddResult("1", "Alice", "REG1", db.TeamGreen, 1)
	require.NoError(t, err)
	_, err = s.AddResult("1", "Bob", "REG2", db.TeamRed, 2)
	require.NoError(t, err)
	other, err := s.AddResult("2", "Carol", "REG3", db.TeamBlue, 1)
	require.NoError(t, err)

	require.NoError(t, s.DeleteEvent("1"))

	doc := mustLoad(t, d)
	assert.Nil(t, doc.Event("1"))
	assert.Len(t, doc.Events, 4)
	assert.Equal(t, []db.Result{*other}, doc.Results)
}

func TestDeleteMissingEvent(t *testing.T) {
	s, d := newTestService(t)
	require.NoError(t, s.DeleteEvent("does-not-exist"))
	assert.Len(t, mustLoad(t, d).Events, 5)
}

func TestAddResult(t *testing.T) {
	s, d := newTestService(t)

	r, err := s.AddResult("1", "Alice", "REG1", db.TeamGreen, 1)
	require.NoError(t, err)
	assert.Equal(t, 10, r.Points)
	assert.Equal(t, "1", r.EventID)
	assert.Equal(t, "Alice", r.StudentName)
	assert.Equal(t, "REG1", r.StudentRegisterNumber)
	assert.Equal(t, db.TeamGreen, r.Group)
	assert.Equal(t, 1, r.Position)
	assert.NotEmpty(t, r.ID)

	doc := mustLoad(t, d)
	assert.True(t, doc.Event("1").IsCompleted)
	assert.False(t, doc.Event("2").IsCompleted)
	assert.Equal(t, []db.Result{*r}, doc.Results)

	board, err := s.Leaderboard()
	require.NoError(t, err)
	assert.Equal(t, GroupScore{Group: db.TeamGreen, TotalPoints: 10, Golds: 1}, board[0])
}

func TestAddResultPoints(t *testing.T) {
	s, _ := newTestService(t)

	for placement, points := range map[int]int{1: 10, 2: 5, 3: 3} {
		r, err := s.AddResult("3", "Student", "REG", db.TeamBlue, placement)
		require.NoError(t, err)
		assert.Equal(t, points, r.Points)
	}
}

func TestAddResultConflict(t *testing.T) {
	s, d := newTestService(t)

	_, err := s.AddResult("1", "Alice", "REG1", db.TeamGreen, 1)
	require.NoError(t, err)

	_, err = s.AddResult("1", "Alice", "REG1", db.TeamGreen, 1)
	require.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "placement 1")

	var meetErr *Error
	require.ErrorAs(t, err, &meetErr)
	assert.Equal(t, 1, meetErr.Placement)

	assert.Len(t, mustLoad(t, d).Results, 1)

	_, err = s.AddResult("2", "Bob", "REG2", db.TeamRed, 1)
	assert.NoError(t, err, "the same placement in another event is allowed")
}

func TestAddResultConcurrentPlacement(t *testing.T) {
	s, d := newTestService(t)
	mustLoad(t, d)

	const writers = 50
	errs := make([]error, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.AddResult("1", fmt.Sprintf("Student %d", i), fmt.Sprintf("REG%d", i), db.TeamColors[i%3], 1)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrConflict)
	}
	assert.Equal(t, 1, succeeded)

	doc := mustLoad(t, d)
	require.Len(t, doc.Results, 1)
	assert.Equal(t, 1, doc.Results[0].Position)
	assert.True(t, doc.Event("1").IsCompleted)
}

func TestAddResultEventNotFound(t *testing.T) {
	s, d := newTestService(t)
	before := mustLoad(t, d)

	_, err := s.AddResult("42", "Alice", "REG1", db.TeamGreen, 1)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, errors.Is(err, ErrConflict))

	assert.Equal(t, before, mustLoad(t, d))
}

func TestAddResultValidation(t *testing.T) {
	s, d := newTestService(t)

	for _, tc := range []struct {
		student, regNo string
		team           db.TeamColor
		placement      int
	}{
		{"", "REG", db.TeamGreen, 1},
		{"Alice", " ", db.TeamGreen, 1},
		{"Alice", "REG", db.TeamColor("Yellow"), 1},
		{"Alice", "REG", db.TeamGreen, 0},
		{"Alice", "REG", db.TeamGreen, 4},
	} {
		_, err := s.AddResult("1", tc.student, tc.regNo, tc.team, tc.placement)
		assert.ErrorIs(t, err, ErrValidation, "%+v", tc)
	}

	doc := mustLoad(t, d)
	assert.Empty(t, doc.Results)
	assert.False(t, doc.Event("1").IsCompleted)
}

func TestDeleteResultKeepsEventCompleted(t *testing.T) {
	s, d := newTestService(t)

	r, err := s.AddResult("4", "Alice", "REG1", db.TeamGreen, 2)
	require.NoError(t, err)

	require.NoError(t, s.DeleteResult(r.ID))
	require.NoError(t, s.DeleteResult(r.ID))

	doc := mustLoad(t, d)
	assert.Empty(t, doc.Results)
	assert.True(t, doc.Event("4").IsCompleted)

	_, err = s.AddResult("4", "Bob", "REG2", db.TeamRed, 2)
	assert.NoError(t, err, "placement is free again after delete")
}

func TestScenario(t *testing.T) {
	s, _ := newTestService(t)

	events, err := s.Events()
	require.NoError(t, err)
	assert.Len(t, events, 5)

	results, err := s.Results()
	require.NoError(t, err)
	assert.Empty(t, results)

	board, err := s.Leaderboard()
	require.NoError(t, err)
	assert.Equal(t, []GroupScore{{Group: db.TeamGreen}, {Group: db.TeamRed}, {Group: db.TeamBlue}}, board)

	r, err := s.AddResult("1", "Alice", "REG1", db.TeamGreen, 1)
	require.NoError(t, err)
	assert.Equal(t, 10, r.Points)

	_, err = s.AddResult("1", "Alice", "REG1", db.TeamGreen, 1)
	assert.ErrorIs(t, err, ErrConflict)

	results, err = s.Results()
	require.NoError(t, err)
	assert.Len(t, results, 1)

	require.NoError(t, s.DeleteEvent("1"))

	results, err = s.Results()
	require.NoError(t, err)
	assert.Empty(t, results)

	events, err = s.Events()
	require.NoError(t, err)
	for _, e := range events {
		assert.NotEqual(t, "1", e.ID)
	}
}

func TestServiceFeed(t *testing.T) {
	s, _ := newTestService(t)

	_, err := s.AddResult("1", "Alice", "REG1", db.TeamGreen, 1)
	require.NoError(t, err)
	_, err = s.AddResult("2", "Bob", "REG2", db.TeamRed, 1)
	require.NoError(t, err)

	entries, err := s.Feed(FeedFilter{Category: db.CategoryGames})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Football", entries[0].EventName)
}

func TestReset(t *testing.T) {
	s, d := newTestService(t)

	_, err := s.AddEvent("Chess", db.CategoryGames)
	require.NoError(t, err)
	require.NoError(t, s.Reset())

	assert.Equal(t, db.Seed(), mustLoad(t, d))
}
