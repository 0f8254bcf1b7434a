package localstore

import "context"

// Mark sets record a boolean fact per (account, event) pair: "registered for"
// and "reminder requested". Registration and reminder marks live in
// independent key namespaces. An unknown user has an empty set.

func (s *Store) marks(ctx context.Context, key string) ([]string, error) {
	var ids []string
	if _, err := s.getJSON(ctx, key, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// addMark appends eventID to the set only if not already present, so two
// identical calls leave a single mark.
func (s *Store) addMark(ctx context.Context, key, eventID string) error {
	ids, err := s.marks(ctx, key)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if id == eventID {
			return nil
		}
	}
	return s.setJSON(ctx, key, append(ids, eventID))
}

// removeMark deletes eventID from the set, reporting whether it was present.
func (s *Store) removeMark(ctx context.Context, key, eventID string) (bool, error) {
	ids, err := s.marks(ctx, key)
	if err != nil {
		return false, err
	}
	for i, id := range ids {
		if id == eventID {
			ids = append(ids[:i], ids[i+1:]...)
			if err := s.setJSON(ctx, key, ids); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) hasMark(ctx context.Context, key, eventID string) (bool, error) {
	ids, err := s.marks(ctx, key)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == eventID {
			return true, nil
		}
	}
	return false, nil
}

// RegisterForEvent marks the user as registered for the event. Idempotent.
func (s *Store) RegisterForEvent(ctx context.Context, userID, eventID string) error {
	return s.addMark(ctx, keyRegisteredPrefix+userID, eventID)
}

// IsRegisteredForEvent reports whether the registration mark exists.
func (s *Store) IsRegisteredForEvent(ctx context.Context, userID, eventID string) (bool, error) {
	return s.hasMark(ctx, keyRegisteredPrefix+userID, eventID)
}

// RegisteredEvents returns the user's registration marks; empty for an
// unknown user.
func (s *Store) RegisteredEvents(ctx context.Context, userID string) ([]string, error) {
	return s.marks(ctx, keyRegisteredPrefix+userID)
}

// CancelRegistration removes the registration mark, reporting whether one
// existed.
func (s *Store) CancelRegistration(ctx context.Context, userID, eventID string) (bool, error) {
	return s.removeMark(ctx, keyRegisteredPrefix+userID, eventID)
}

// SetReminder marks a reminder request for the event. Idempotent.
func (s *Store) SetReminder(ctx context.Context, userID, eventID string) error {
	return s.addMark(ctx, keyRemindersPrefix+userID, eventID)
}

// HasReminder reports whether the reminder mark exists.
func (s *Store) HasReminder(ctx context.Context, userID, eventID string) (bool, error) {
	return s.hasMark(ctx, keyRemindersPrefix+userID, eventID)
}

// Reminders returns the user's reminder marks; empty for an unknown user.
func (s *Store) Reminders(ctx context.Context, userID string) ([]string, error) {
	return s.marks(ctx, keyRemindersPrefix+userID)
}

// CancelReminder removes the reminder mark, reporting whether one existed.
func (s *Store) CancelReminder(ctx context.Context, userID, eventID string) (bool, error) {
	return s.removeMark(ctx, keyRemindersPrefix+userID, eventID)
}
