package meet

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/muhammedfarooqchalil-dev/sportiva-2k26-jamia/db"
)

//Service performs the sports meet operations against a DB.
//Every mutating operation runs as a single db.Update transaction
type Service struct {
	db    *db.DB
	newID func() string
}

//NewService returns a new Service using d for storage
func NewService(d *db.DB) *Service {
	return &Service{
		db:    d,
		newID: uuid.NewString,
	}
}

//uniqueID returns a new id for which taken returns false
func (s *Service) uniqueID(taken func(id string) bool) string {
	for {
		id := s.newID()
		if !taken(id) {
			return id
		}
	}
}

//Events returns all events
func (s *Service) Events() ([]db.Event, error) {
	d, err := s.db.Load()
	if err != nil {
		return nil, err
	}
	return d.Events, nil
}

//AddEvent creates a new event with the given name and category
func (s *Service) AddEvent(name string, category db.Category) (*db.Event, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationError("event name is required")
	}
	if !category.Valid() {
		return nil, validationError("unknown event category %q", category)
	}

	var event db.Event
	err := s.db.Update(func(d *db.Document) error {
		event = db.Event{
			ID:   s.uniqueID(func(id string) bool { return d.Event(id) != nil }),
			Name: name,
			Type: category,
		}
		d.Events = append(d.Events, event)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &event, nil
}

//DeleteEvent removes the event with the given id along with all of its results.
//Deleting a missing event is not an error
func (s *Service) DeleteEvent(id string) error {
	return s.db.Update(func(d *db.Document) error {
		events := d.Events[:0]
		for _, e := range d.Events {
			if e.ID != id {
				events = append(events, e)
			}
		}
		d.Events = events

		results := d.Results[:0]
		for _, r := range d.Results {
			if r.EventID != id {
				results = append(results, r)
			}
		}
		d.Results = results

		return nil
	})
}

//Results returns all results in the order they were recorded
func (s *Service) Results() ([]db.Result, error) {
	d, err := s.db.Load()
	if err != nil {
		return nil, err
	}
	return d.Results, nil
}

//AddResult records a student's placement in an event and marks the event completed.
//Each placement can be recorded once per event
func (s *Service) AddResult(eventID, studentName, regNo string, team db.TeamColor, placement int) (*db.Result, error) {
	studentName = strings.TrimSpace(studentName)
	regNo = strings.TrimSpace(regNo)

	switch {
	case studentName == "":
		return nil, validationError("student name is required")
	case regNo == "":
		return nil, validationError("student register number is required")
	case !team.Valid():
		return nil, validationError("unknown team %q", team)
	}

	points, ok := db.Points[placement]
	if !ok {
		return nil, validationError("placement %d is not 1, 2 or 3", placement)
	}

	var result db.Result
	err := s.db.Update(func(d *db.Document) error {
		event := d.Event(eventID)
		if event == nil {
			return &Error{Kind: KindNotFound, Description: fmt.Sprintf("referenced event %q not found", eventID)}
		}

		for _, r := range d.Results {
			if r.EventID == eventID && r.Position == placement {
				return &Error{
					Kind:        KindConflict,
					Description: fmt.Sprintf("placement %d is already taken for event %q", placement, event.Name),
					Placement:   placement,
				}
			}
		}

		result = db.Result{
			ID: s.uniqueID(func(id string) bool {
				for _, r := range d.Results {
					if r.ID == id {
						return true
					}
				}
				return false
			}),
			EventID:               eventID,
			StudentName:           studentName,
			StudentRegisterNumber: regNo,
			Group:                 team,
			Position:              placement,
			Points:                points,
		}
		d.Results = append(d.Results, result)
		event.IsCompleted = true

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

//DeleteResult removes the result with the given id. The event stays completed.
//Deleting a missing result is not an error
func (s *Service) DeleteResult(id string) error {
	return s.db.Update(func(d *db.Document) error {
		results := d.Results[:0]
		for _, r := range d.Results {
			if r.ID != id {
				results = append(results, r)
			}
		}
		d.Results = results
		return nil
	})
}

//Leaderboard returns the current team standings
func (s *Service) Leaderboard() ([]GroupScore, error) {
	var scores []GroupScore
	err := s.db.View(func(d *db.Document) error {
		scores = CalculateLeaderboard(d.Results)
		return nil
	})
	return scores, err
}

//Feed returns the recorded results matching filter, newest first
func (s *Service) Feed(filter FeedFilter) ([]FeedEntry, error) {
	var entries []FeedEntry
	err := s.db.View(func(d *db.Document) error {
		entries = Feed(d, filter)
		return nil
	})
	return entries, err
}

//Reset erases all events and results. The seed events are restored on next use
func (s *Service) Reset() error {
	return s.db.Reset()
}
