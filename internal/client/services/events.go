package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"eventmanager/internal/api"
	"eventmanager/internal/common"
	"eventmanager/internal/localstore"
	"eventmanager/internal/models"
)

// EventService defines catalogue, registration, and reminder operations for
// the CLI. Every operation tries the server first and falls back to the
// local store when the server is unreachable; listing additionally refreshes
// the local event cache from the server response.
type EventService interface {
	List(ctx context.Context) ([]models.Event, error)
	Detail(ctx context.Context, eventID string) (*models.Event, error)
	Create(ctx context.Context, event models.Event) (*models.Event, error)
	Update(ctx context.Context, event models.Event) error
	Delete(ctx context.Context, eventID string) error

	Register(ctx context.Context, eventID string) error
	CancelRegistration(ctx context.Context, eventID string) error
	MyRegistrations(ctx context.Context) ([]string, error)

	SetReminder(ctx context.Context, eventID string) error
	CancelReminder(ctx context.Context, eventID string) error
	MyReminders(ctx context.Context) ([]string, error)

	Dashboard(ctx context.Context) (*api.DashboardStats, error)
}

type eventService struct {
	client *api.Client
	store  *localstore.Store
}

// NewEventService constructs an EventService bound to the given API client
// and local store.
func NewEventService(client *api.Client, store *localstore.Store) EventService {
	return &eventService{client: client, store: store}
}

// currentUserID resolves the signed-in account for offline mark operations.
func (e *eventService) currentUserID(ctx context.Context) (string, error) {
	acc, err := e.store.CurrentUser(ctx)
	if err != nil {
		return "", err
	}
	if acc == nil {
		return "", common.ErrUnauthorized
	}
	return acc.ID, nil
}

func toModel(d *api.EventData) models.Event {
	return models.Event{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Date:        d.Date,
		Time:        d.Time,
		Location:    d.Location,
		Category:    d.Category,
	}
}

// List returns the catalogue. A successful server response replaces the
// local cache wholesale; an unreachable server serves the cached copy.
func (e *eventService) List(ctx context.Context) ([]models.Event, error) {
	resp, err := e.client.Events(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnavailable) {
			return e.store.Events(ctx)
		}
		return nil, err
	}

	events := make([]models.Event, 0, len(resp.Events))
	for i := range resp.Events {
		events = append(events, toModel(&resp.Events[i]))
	}
	if err := e.store.SaveEvents(ctx, events); err != nil {
		return nil, err
	}
	return events, nil
}

func (e *eventService) Detail(ctx context.Context, eventID string) (*models.Event, error) {
	resp, err := e.client.EventDetail(ctx, eventID)
	if err != nil {
		if !errors.Is(err, api.ErrUnavailable) {
			return nil, err
		}
		events, err := e.store.Events(ctx)
		if err != nil {
			return nil, err
		}
		for i := range events {
			if events[i].ID == eventID {
				return &events[i], nil
			}
		}
		return nil, common.ErrNotFound
	}

	event := toModel(resp.Event)
	return &event, nil
}

// Create adds an event. Offline, the event is appended to the local cache
// under a freshly assigned id.
func (e *eventService) Create(ctx context.Context, event models.Event) (*models.Event, error) {
	resp, err := e.client.CreateEvent(ctx, api.CreateEventRequest{
		Title:       event.Title,
		Description: event.Description,
		Date:        event.Date,
		Time:        event.Time,
		Location:    event.Location,
		Category:    event.Category,
	})
	if err != nil {
		if !errors.Is(err, api.ErrUnavailable) {
			return nil, err
		}
		events, err := e.store.Events(ctx)
		if err != nil {
			return nil, err
		}
		event.ID = uuid.NewString()
		if err := e.store.SaveEvents(ctx, append(events, event)); err != nil {
			return nil, err
		}
		return &event, nil
	}

	created := toModel(resp.Event)
	return &created, nil
}

func (e *eventService) Update(ctx context.Context, event models.Event) error {
	_, err := e.client.UpdateEvent(ctx, event.ID, api.CreateEventRequest{
		Title:       event.Title,
		Description: event.Description,
		Date:        event.Date,
		Time:        event.Time,
		Location:    event.Location,
		Category:    event.Category,
	})
	if err == nil {
		return nil
	}
	if !errors.Is(err, api.ErrUnavailable) {
		return err
	}

	events, err := e.store.Events(ctx)
	if err != nil {
		return err
	}
	for i := range events {
		if events[i].ID == event.ID {
			events[i] = event
			return e.store.SaveEvents(ctx, events)
		}
	}
	return common.ErrNotFound
}

func (e *eventService) Delete(ctx context.Context, eventID string) error {
	_, err := e.client.DeleteEvent(ctx, eventID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, api.ErrUnavailable) {
		return err
	}

	removed, err := e.store.DeleteEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if !removed {
		return common.ErrNotFound
	}
	return nil
}

func (e *eventService) Register(ctx context.Context, eventID string) error {
	_, err := e.client.RegisterForEvent(ctx, eventID, api.EventRegistrationRequest{})
	if err == nil {
		return nil
	}
	if !errors.Is(err, api.ErrUnavailable) {
		return err
	}

	userID, err := e.currentUserID(ctx)
	if err != nil {
		return err
	}
	registered, err := e.store.IsRegisteredForEvent(ctx, userID, eventID)
	if err != nil {
		return err
	}
	if registered {
		return common.ErrAlreadyRegistered
	}
	return e.store.RegisterForEvent(ctx, userID, eventID)
}

func (e *eventService) CancelRegistration(ctx context.Context, eventID string) error {
	_, err := e.client.CancelRegistration(ctx, eventID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, api.ErrUnavailable) {
		return err
	}

	userID, err := e.currentUserID(ctx)
	if err != nil {
		return err
	}
	removed, err := e.store.CancelRegistration(ctx, userID, eventID)
	if err != nil {
		return err
	}
	if !removed {
		return common.ErrNotFound
	}
	return nil
}

func (e *eventService) MyRegistrations(ctx context.Context) ([]string, error) {
	resp, err := e.client.MyRegistrations(ctx)
	if err != nil {
		if !errors.Is(err, api.ErrUnavailable) {
			return nil, err
		}
		userID, err := e.currentUserID(ctx)
		if err != nil {
			return nil, err
		}
		return e.store.RegisteredEvents(ctx, userID)
	}

	ids := make([]string, 0, len(resp.Registrations))
	for i := range resp.Registrations {
		ids = append(ids, resp.Registrations[i].EventID)
	}
	return ids, nil
}

func (e *eventService) SetReminder(ctx context.Context, eventID string) error {
	_, err := e.client.SetReminder(ctx, eventID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, api.ErrUnavailable) {
		return err
	}

	userID, err := e.currentUserID(ctx)
	if err != nil {
		return err
	}
	exists, err := e.store.HasReminder(ctx, userID, eventID)
	if err != nil {
		return err
	}
	if exists {
		return common.ErrReminderExists
	}
	return e.store.SetReminder(ctx, userID, eventID)
}

func (e *eventService) CancelReminder(ctx context.Context, eventID string) error {
	_, err := e.client.CancelReminder(ctx, eventID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, api.ErrUnavailable) {
		return err
	}

	userID, err := e.currentUserID(ctx)
	if err != nil {
		return err
	}
	removed, err := e.store.CancelReminder(ctx, userID, eventID)
	if err != nil {
		return err
	}
	if !removed {
		return common.ErrNotFound
	}
	return nil
}

func (e *eventService) MyReminders(ctx context.Context) ([]string, error) {
	resp, err := e.client.MyReminders(ctx)
	if err != nil {
		if !errors.Is(err, api.ErrUnavailable) {
			return nil, err
		}
		userID, err := e.currentUserID(ctx)
		if err != nil {
			return nil, err
		}
		return e.store.Reminders(ctx, userID)
	}

	ids := make([]string, 0, len(resp.Reminders))
	for i := range resp.Reminders {
		ids = append(ids, resp.Reminders[i].EventID)
	}
	return ids, nil
}

// Dashboard returns the per-user counters, computed locally when the server
// is unreachable.
func (e *eventService) Dashboard(ctx context.Context) (*api.DashboardStats, error) {
	resp, err := e.client.Dashboard(ctx)
	if err == nil {
		return &resp.Stats, nil
	}
	if !errors.Is(err, api.ErrUnavailable) {
		return nil, err
	}

	userID, err := e.currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	events, err := e.store.Events(ctx)
	if err != nil {
		return nil, err
	}
	registrations, err := e.store.RegisteredEvents(ctx, userID)
	if err != nil {
		return nil, err
	}
	reminders, err := e.store.Reminders(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &api.DashboardStats{
		TotalEvents:     len(events),
		MyRegistrations: len(registrations),
		MyReminders:     len(reminders),
	}, nil
}
