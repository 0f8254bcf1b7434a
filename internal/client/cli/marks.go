package cli

import (
	"context"
	"fmt"
	"log"
	"os"
)

// RegisterForEvent signs the current user up for an event.
func (a *App) RegisterForEvent(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter event id", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.eventService.Register(ctx, id); err != nil {
		log.Printf("Error registering: %s", err.Error())
		return err
	}
	fmt.Println("Registered!")
	return nil
}

// CancelRegistration withdraws the current user from an event.
func (a *App) CancelRegistration(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter event id", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.eventService.CancelRegistration(ctx, id); err != nil {
		log.Printf("Error cancelling registration: %s", err.Error())
		return err
	}
	fmt.Println("Registration cancelled")
	return nil
}

// MyRegistrations lists the event ids the current user is registered for.
func (a *App) MyRegistrations(ctx context.Context) error {
	ids, err := a.eventService.MyRegistrations(ctx)
	if err != nil {
		log.Printf("Error listing registrations: %s", err.Error())
		return err
	}

	if len(ids) == 0 {
		fmt.Println("No registrations")
		return nil
	}
	for _, id := range ids {
		fmt.Println(id)
	}
	return nil
}

// SetReminder requests a reminder for an event.
func (a *App) SetReminder(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter event id", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.eventService.SetReminder(ctx, id); err != nil {
		log.Printf("Error setting reminder: %s", err.Error())
		return err
	}
	fmt.Println("Reminder set")
	return nil
}

// CancelReminder removes a reminder.
func (a *App) CancelReminder(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter event id", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.eventService.CancelReminder(ctx, id); err != nil {
		log.Printf("Error cancelling reminder: %s", err.Error())
		return err
	}
	fmt.Println("Reminder cancelled")
	return nil
}

// MyReminders lists the event ids the current user set reminders for.
func (a *App) MyReminders(ctx context.Context) error {
	ids, err := a.eventService.MyReminders(ctx)
	if err != nil {
		log.Printf("Error listing reminders: %s", err.Error())
		return err
	}

	if len(ids) == 0 {
		fmt.Println("No reminders")
		return nil
	}
	for _, id := range ids {
		fmt.Println(id)
	}
	return nil
}

// Dashboard prints the per-user counters.
func (a *App) Dashboard(ctx context.Context) error {
	stats, err := a.eventService.Dashboard(ctx)
	if err != nil {
		log.Printf("Error fetching dashboard: %s", err.Error())
		return err
	}

	fmt.Printf("Events: %d\n", stats.TotalEvents)
	fmt.Printf("My registrations: %d\n", stats.MyRegistrations)
	fmt.Printf("My reminders: %d\n", stats.MyReminders)
	if stats.TotalUsers > 0 {
		fmt.Printf("Total users: %d\n", stats.TotalUsers)
	}
	return nil
}
