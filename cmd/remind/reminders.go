package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"remind/internal/client"
	"remind/internal/reminder/domain"
)

func newAddCommand() *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Create a reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			when, err := parseWhen(at)
			if err != nil {
				return err
			}
			service, cleanup, err := buildService()
			if err != nil {
				return err
			}
			defer cleanup()

			created, err := service.Create(context.Background(), client.CreateReminderData{
				Text:     args[0],
				DateTime: when,
			})
			if err != nil {
				return err
			}
			fmt.Printf("%s %s\n", green("Created"), created.Text)
			fmt.Printf("  %s %s\n", gray("id:"), created.ID)
			fmt.Printf("  %s %s\n", gray("due:"), created.DateTime.Local().Format("Mon Jan 2 15:04"))
			return nil
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "When the reminder is due (RFC3339 or \"YYYY-MM-DD HH:MM\")")
	_ = cmd.MarkFlagRequired("at")
	return cmd
}

func newListCommand() *cobra.Command {
	var status string
	var limit, page int
	var upcomingOnly bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reminders",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, cleanup, err := buildService()
			if err != nil {
				return err
			}
			defer cleanup()

			reminders, err := service.List(context.Background(), client.ListOptions{
				Status: status,
				Limit:  limit,
				Page:   page,
			})
			if err != nil {
				return err
			}

			// Status is derived at display time so overdue reminders show
			// up without anyone having to write to them.
			reminders = client.UpdateStatuses(reminders, time.Now())
			if upcomingOnly {
				reminders = client.FilterUpcoming(reminders)
			}
			reminders = client.SortByDate(reminders)

			if len(reminders) == 0 {
				fmt.Println(gray("No reminders."))
				return nil
			}
			for _, r := range reminders {
				fmt.Printf("%s  %s  %s\n", statusLabel(r.Status), r.DateTime.Local().Format("Jan 2 15:04"), bold(r.Text))
				fmt.Printf("   %s %s\n", gray("id:"), gray(r.ID))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Filter by stored status")
	cmd.Flags().IntVar(&limit, "limit", 0, "Page size (server default: 10)")
	cmd.Flags().IntVar(&page, "page", 0, "Page number (server default: 1)")
	cmd.Flags().BoolVar(&upcomingOnly, "upcoming", false, "Show only upcoming reminders")
	return cmd
}

func newDoneCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a reminder completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, cleanup, err := buildService()
			if err != nil {
				return err
			}
			defer cleanup()

			status := domain.StatusCompleted
			updated, err := service.Update(context.Background(), args[0], client.UpdateReminderData{Status: &status})
			if err != nil {
				if err == domain.ErrNotFound {
					return fmt.Errorf("no reminder with id %s", args[0])
				}
				return err
			}
			fmt.Printf("%s %s\n", green("Completed"), updated.Text)
			return nil
		},
	}
}

func newRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a reminder",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, cleanup, err := buildService()
			if err != nil {
				return err
			}
			defer cleanup()

			if err := service.Delete(context.Background(), args[0]); err != nil {
				if err == domain.ErrNotFound {
					return fmt.Errorf("no reminder with id %s", args[0])
				}
				return err
			}
			fmt.Printf("%s %s\n", yellow("Deleted"), args[0])
			return nil
		},
	}
}
