package meet

import (
	"github.com/muhammedfarooqchalil-dev/sportiva-2k26-jamia/db"
)

//UnknownEventName is shown for results whose event no longer exists
const UnknownEventName = "Unknown Event"

//FeedEntry is a Result with the details of its Event
type FeedEntry struct {
	db.Result
	EventName string      `json:"eventName"`
	EventType db.Category `json:"eventType"`
}

//FeedFilter selects feed entries. Zero fields match everything
type FeedFilter struct {
	Team     db.TeamColor
	Category db.Category
}

func (f FeedFilter) match(e *FeedEntry) bool {
	if f.Team != "" && e.Group != f.Team {
		return false
	}
	if f.Category != "" && e.EventType != f.Category {
		return false
	}
	return true
}

//Feed returns the results in d matching filter, newest first
func Feed(d *db.Document, filter FeedFilter) []FeedEntry {
	events := make(map[string]*db.Event, len(d.Events))
	for i := range d.Events {
		events[d.Events[i].ID] = &d.Events[i]
	}

	entries := make([]FeedEntry, 0, len(d.Results))
	for i := len(d.Results) - 1; i >= 0; i-- {
		e := FeedEntry{
			Result:    d.Results[i],
			EventName: UnknownEventName,
			EventType: db.CategoryGames,
		}
		if ev, ok := events[e.EventID]; ok {
			e.EventName = ev.Name
			e.EventType = ev.Type
		}

		if filter.match(&e) {
			entries = append(entries, e)
		}
	}

	return entries
}
