package db

import "time"

//Category is an event category
type Category string

//Event categories
const (
	CategoryAthletics Category = "Athletics"
	CategoryGames     Category = "Games"
)

//Valid returns whether c is a known Category
func (c Category) Valid() bool {
	return c == CategoryAthletics || c == CategoryGames
}

//TeamColor is the color of a competing team
type TeamColor string

//Team colors, in leaderboard tie-break order
const (
	TeamGreen TeamColor = "Green"
	TeamRed   TeamColor = "Red"
	TeamBlue  TeamColor = "Blue"
)

//TeamColors lists every TeamColor in fixed order
var TeamColors = []TeamColor{TeamGreen, TeamRed, TeamBlue}

//Valid returns whether c is a known TeamColor
func (c TeamColor) Valid() bool {
	for _, t := range TeamColors {
		if c == t {
			return true
		}
	}
	return false
}

//Points maps a placement to the points it awards
var Points = map[int]int{
	1: 10,
	2: 5,
	3: 3,
}

//Event represents a competition item
type Event struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        Category `json:"type"`
	IsCompleted bool     `json:"isCompleted"`
}

//Result represents the placement of a student in an Event
type Result struct {
	ID                    string    `json:"id"`
	EventID               string    `json:"eventId"`
	StudentName           string    `json:"studentName"`
	StudentRegisterNumber string    `json:"studentRegisterNumber"`
	Group                 TeamColor `json:"group"`
	Position              int       `json:"position"`
	Points                int       `json:"points"`
}

//Document is the complete persisted dataset
type Document struct {
	Events  []Event  `json:"events"`
	Results []Result `json:"results"`
}

//Event returns a pointer into d.Events for the Event with the given id, or nil
func (d *Document) Event(id string) *Event {
	for i := range d.Events {
		if d.Events[i].ID == id {
			return &d.Events[i]
		}
	}
	return nil
}

//Clone returns a deep copy of d
func (d *Document) Clone() *Document {
	c := &Document{
		Events:  make([]Event, len(d.Events)),
		Results: make([]Result, len(d.Results)),
	}
	copy(c.Events, d.Events)
	copy(c.Results, d.Results)
	return c
}

//Seed returns the Document stored on first use
func Seed() *Document {
	return &Document{
		Events: []Event{
			{ID: "1", Name: "100m Sprint", Type: CategoryAthletics},
			{ID: "2", Name: "Football", Type: CategoryGames},
			{ID: "3", Name: "Relay 4x100", Type: CategoryAthletics},
			{ID: "4", Name: "Volleyball", Type: CategoryGames},
			{ID: "5", Name: "Shot Put", Type: CategoryAthletics},
		},
		Results: []Result{},
	}
}

//Revision represents a Document that was replaced by a later Save
type Revision struct {
	ID        int32     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Document  *Document `json:"document,omitempty"`
}
