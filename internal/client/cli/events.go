package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"eventmanager/internal/common"
	"eventmanager/internal/models"
	"eventmanager/internal/validate"
)

func printEvent(e *models.Event) {
	fmt.Printf("[%s] %s\n", e.ID, e.Title)
	fmt.Printf("  %s %s @ %s (%s)\n", e.Date, e.Time, e.Location, e.Category)
	if e.Description != "" {
		fmt.Printf("  %s\n", e.Description)
	}
}

// List prints the event catalogue.
func (a *App) List(ctx context.Context) error {
	events, err := a.eventService.List(ctx)
	if err != nil {
		log.Printf("Error listing events: %s", err.Error())
		return err
	}

	if len(events) == 0 {
		fmt.Println("No events")
		return nil
	}
	for i := range events {
		printEvent(&events[i])
	}
	return nil
}

// Show prompts for an event id and prints the full details.
func (a *App) Show(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter event id", os.Stdout)
	if err != nil {
		return err
	}

	event, err := a.eventService.Detail(ctx, id)
	if err != nil {
		log.Printf("Error fetching event: %s", err.Error())
		return err
	}
	printEvent(event)
	return nil
}

// promptEvent collects the event fields interactively. Empty answers are
// kept empty; validation of the filled fields happens here so the user gets
// immediate feedback.
func (a *App) promptEvent(requireAll bool) (*models.Event, error) {
	title, err := getSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		return nil, err
	}
	if requireAll && title == "" {
		return nil, fmt.Errorf("title is required")
	}

	description, err := GetMultiline(a.reader, "Description", os.Stdout)
	if err != nil {
		return nil, err
	}

	date, err := getSimpleText(a.reader, "Date (YYYY-MM-DD)", os.Stdout)
	if err != nil {
		return nil, err
	}
	if date != "" || requireAll {
		if err := validate.EventDate(date); err != nil {
			return nil, err
		}
	}

	timeStr, err := getSimpleText(a.reader, "Time (HH:MM)", os.Stdout)
	if err != nil {
		return nil, err
	}
	if timeStr != "" || requireAll {
		if err := validate.EventTime(timeStr); err != nil {
			return nil, err
		}
	}

	location, err := getSimpleText(a.reader, "Location", os.Stdout)
	if err != nil {
		return nil, err
	}

	category, err := getSimpleText(a.reader,
		"Category ("+strings.Join(validate.Categories, ", ")+")", os.Stdout)
	if err != nil {
		return nil, err
	}
	if category != "" || requireAll {
		if err := validate.Category(category); err != nil {
			return nil, err
		}
	}

	return &models.Event{
		Title:       title,
		Description: description,
		Date:        date,
		Time:        timeStr,
		Location:    location,
		Category:    category,
	}, nil
}

// AddEvent creates a new catalogue entry. Admin only.
func (a *App) AddEvent(ctx context.Context) error {
	if !a.isAdmin() {
		fmt.Println("Admin access required")
		return common.ErrForbidden
	}

	event, err := a.promptEvent(true)
	if err != nil {
		log.Printf("Invalid event: %s", err.Error())
		return err
	}

	created, err := a.eventService.Create(ctx, *event)
	if err != nil {
		log.Printf("Error creating event: %s", err.Error())
		return err
	}
	fmt.Printf("Created event %s\n", created.ID)
	return nil
}

// EditEvent updates an existing entry; empty answers keep the current values.
func (a *App) EditEvent(ctx context.Context) error {
	if !a.isAdmin() {
		fmt.Println("Admin access required")
		return common.ErrForbidden
	}

	id, err := getSimpleText(a.reader, "Enter event id", os.Stdout)
	if err != nil {
		return err
	}
	current, err := a.eventService.Detail(ctx, id)
	if err != nil {
		log.Printf("Error fetching event: %s", err.Error())
		return err
	}

	updated, err := a.promptEvent(false)
	if err != nil {
		log.Printf("Invalid event: %s", err.Error())
		return err
	}

	merged := *current
	if updated.Title != "" {
		merged.Title = updated.Title
	}
	if updated.Description != "" {
		merged.Description = updated.Description
	}
	if updated.Date != "" {
		merged.Date = updated.Date
	}
	if updated.Time != "" {
		merged.Time = updated.Time
	}
	if updated.Location != "" {
		merged.Location = updated.Location
	}
	if updated.Category != "" {
		merged.Category = updated.Category
	}

	if err := a.eventService.Update(ctx, merged); err != nil {
		log.Printf("Error updating event: %s", err.Error())
		return err
	}
	fmt.Println("Event updated")
	return nil
}

// DeleteEvent removes an entry from the catalogue. Admin only.
func (a *App) DeleteEvent(ctx context.Context) error {
	if !a.isAdmin() {
		fmt.Println("Admin access required")
		return common.ErrForbidden
	}

	id, err := getSimpleText(a.reader, "Enter event id", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.eventService.Delete(ctx, id); err != nil {
		log.Printf("Error deleting event: %s", err.Error())
		return err
	}
	fmt.Println("Event deleted")
	return nil
}
