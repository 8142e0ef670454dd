package meet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muhammedfarooqchalil-dev/sportiva-2k26-jamia/db"
)

func feedDocument() *db.Document {
	d := db.Seed()
	d.Results = []db.Result{
		{ID: "a", EventID: "1", StudentName: "Alice", Group: db.TeamGreen, Position: 1, Points: 10},
		{ID: "b", EventID: "2", StudentName: "Bob", Group: db.TeamRed, Position: 1, Points: 10},
		{ID: "c", EventID: "gone", StudentName: "Carol", Group: db.TeamGreen, Position: 2, Points: 5},
	}
	return d
}

func ids(entries []FeedEntry) []string {
	var out []string
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func TestFeedNewestFirst(t *testing.T) {
	entries := Feed(feedDocument(), FeedFilter{})
	assert.Equal(t, []string{"c", "b", "a"}, ids(entries))

	assert.Equal(t, "100m Sprint", entries[2].EventName)
	assert.Equal(t, db.CategoryAthletics, entries[2].EventType)
}

func TestFeedUnknownEvent(t *testing.T) {
	entries := Feed(feedDocument(), FeedFilter{})
	require.Equal(t, "c", entries[0].ID)
	assert.Equal(t, UnknownEventName, entries[0].EventName)
	assert.Equal(t, db.CategoryGames, entries[0].EventType)
}

func TestFeedFilter(t *testing.T) {
	d := feedDocument()

	assert.Equal(t, []string{"c", "a"}, ids(Feed(d, FeedFilter{Team: db.TeamGreen})))
	assert.Equal(t, []string{"c", "b"}, ids(Feed(d, FeedFilter{Category: db.CategoryGames})))
	assert.Equal(t, []string{"c"}, ids(Feed(d, FeedFilter{Team: db.TeamGreen, Category: db.CategoryGames})))
	assert.Empty(t, Feed(d, FeedFilter{Team: db.TeamBlue}))
}
