package store

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// AddEvent validates, appends and saves a bulletin event. Title and date are
// required and the date must be a calendar date in YYYY-MM-DD form.
func (s *Store) AddEvent(title, date, description string) (*Event, error) {
	title = strings.TrimSpace(title)
	date = strings.TrimSpace(date)

	if title == "" || date == "" {
		return nil, &ValidationError{
			Field:   "title",
			Message: "Please provide both title and date for the event.",
		}
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, &ValidationError{
			Field:   "date",
			Message: "Date must be in YYYY-MM-DD format.",
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e := Event{Title: title, Date: date, Description: strings.TrimSpace(description)}
	s.doc.Events = append(s.doc.Events, e)
	if err := s.save(); err != nil {
		return nil, err
	}
	return &e, nil
}

// DeleteEvent removes every event matching exactly on (title, date). It is a
// no-op when nothing matches.
func (s *Store) DeleteEvent(title, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.doc.Events[:0]
	for _, e := range s.doc.Events {
		if e.Title == title && e.Date == date {
			continue
		}
		kept = append(kept, e)
	}
	s.doc.Events = kept
	return s.save()
}

// Events returns the bulletin events in insertion order.
func (s *Store) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Event, len(s.doc.Events))
	copy(out, s.doc.Events)
	return out
}
