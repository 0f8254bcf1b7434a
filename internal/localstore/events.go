package localstore

import (
	"context"

	"eventmanager/internal/models"
)

// sampleEvents returns the fixed five-event seed used on the very first
// catalogue read.
func sampleEvents() []models.Event {
	return []models.Event{
		{ID: "1", Title: "Tech Conference 2024", Description: "Annual technology conference featuring latest innovations", Date: "2024-12-15", Time: "09:00", Location: "Main Auditorium", Category: "Technology"},
		{ID: "2", Title: "Cultural Festival", Description: "Celebrate diverse cultures with music, food, and performances", Date: "2024-12-20", Time: "14:00", Location: "University Grounds", Category: "Cultural"},
		{ID: "3", Title: "Career Fair", Description: "Meet with top employers and explore career opportunities", Date: "2024-12-25", Time: "10:00", Location: "Convention Center", Category: "Career"},
		{ID: "4", Title: "Sports Day", Description: "Inter-department sports competition", Date: "2025-01-05", Time: "08:00", Location: "Sports Complex", Category: "Sports"},
		{ID: "5", Title: "Workshop on AI", Description: "Hands-on workshop on Artificial Intelligence and Machine Learning", Date: "2025-01-10", Time: "13:00", Location: "Computer Lab 3", Category: "Workshop"},
	}
}

// SaveEvents replaces the whole persisted catalogue. There is no merge.
func (s *Store) SaveEvents(ctx context.Context, events []models.Event) error {
	return s.setJSON(ctx, keyEvents, events)
}

// Events returns the persisted catalogue. On the very first call, when no
// list has ever been saved, it persists and returns the five sample events.
// Later calls never re-seed, even if the catalogue was emptied.
func (s *Store) Events(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	existed, err := s.getJSON(ctx, keyEvents, &events)
	if err != nil {
		return nil, err
	}
	if !existed {
		events = sampleEvents()
		if err := s.SaveEvents(ctx, events); err != nil {
			return nil, err
		}
	}
	return events, nil
}

// DeleteEvent removes the first event with the given id and reports whether
// a removal occurred. An absent id is a no-op returning false; the persisted
// catalogue is not rewritten in that case.
func (s *Store) DeleteEvent(ctx context.Context, id string) (bool, error) {
	events, err := s.Events(ctx)
	if err != nil {
		return false, err
	}
	for i := range events {
		if events[i].ID == id {
			events = append(events[:i], events[i+1:]...)
			if err := s.SaveEvents(ctx, events); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}
