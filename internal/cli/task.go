package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	cliadapter "github.com/example/todo/internal/adapters/cli"
	"github.com/example/todo/internal/ports/primary"
)

// ListCmd returns the list command.
func ListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := openScreen(cmd.OutOrStdout(), cliadapter.DetailForm{})
			defer s.close()
			return s.show(false)
		},
	}
}

// SearchCmd returns the search command.
func SearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search [query]",
		Short: "Search tasks by title or description",
		Long: `Search tasks whose title or description contains the query.

Matching is case-insensitive. An empty query lists every task.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}

			s := openScreen(cmd.OutOrStdout(), cliadapter.DetailForm{})
			defer s.close()
			if err := s.show(true); err != nil {
				return err
			}
			s.list.OnSearch(query)
			return s.settle()
		},
	}
}

// AddCmd returns the add command.
func AddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Create a new task",
		Long: `Create a new task.

Examples:
  todo add "Buy milk" --description "2 liters"
  todo add "Call mom" --back   # leave without saving explicitly`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			description, _ := cmd.Flags().GetString("description")
			back, _ := cmd.Flags().GetBool("back")

			form := cliadapter.DetailForm{
				Title:          args[0],
				SetTitle:       true,
				Description:    description,
				SetDescription: true,
				LeaveWithBack:  back,
			}
			return runDetail(cmd, form, func(s *screen) error {
				s.list.OnAddRequested()
				return nil
			})
		},
	}

	cmd.Flags().StringP("description", "d", "", "Task description")
	cmd.Flags().Bool("back", false, "Leave the detail screen with back navigation instead of saving")

	return cmd
}

// EditCmd returns the edit command.
func EditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [task-id]",
		Short: "Edit a task's title or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}

			title, _ := cmd.Flags().GetString("title")
			description, _ := cmd.Flags().GetString("description")
			back, _ := cmd.Flags().GetBool("back")

			form := cliadapter.DetailForm{
				Title:          title,
				SetTitle:       cmd.Flags().Changed("title"),
				Description:    description,
				SetDescription: cmd.Flags().Changed("description"),
				LeaveWithBack:  back,
			}
			return runDetail(cmd, form, func(s *screen) error {
				t, err := s.task(id)
				if err != nil {
					return err
				}
				s.list.OnSelect(t)
				return nil
			})
		},
	}

	cmd.Flags().StringP("title", "t", "", "New title")
	cmd.Flags().StringP("description", "d", "", "New description")
	cmd.Flags().Bool("back", false, "Leave the detail screen with back navigation instead of saving")

	return cmd
}

// runDetail loads the list quietly, lets open navigate to the detail screen,
// then prints the refreshed list.
func runDetail(cmd *cobra.Command, form cliadapter.DetailForm, open func(s *screen) error) error {
	s := openScreen(cmd.OutOrStdout(), form)
	defer s.close()

	if err := s.show(true); err != nil {
		return err
	}
	if err := open(s); err != nil {
		return err
	}
	if err := s.settle(); err != nil {
		return err
	}

	detail := s.nav.LastView()
	if detail == nil {
		return nil
	}
	if detail.Failure() != "" {
		return ErrReported
	}
	if !detail.Completed() {
		fmt.Fprintln(s.out, "No changes saved.")
	}
	return nil
}

// ToggleCmd returns the toggle command.
func ToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle [task-id]",
		Short: "Mark a task done or not done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnTask(cmd, args[0], "Toggled", func(s *screen) func(*primary.Task) {
				return s.list.OnToggle
			})
		},
	}
}

// RemoveCmd returns the rm command.
func RemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm [task-id]",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnTask(cmd, args[0], "Deleted", func(s *screen) func(*primary.Task) {
				return s.list.OnDelete
			})
		},
	}
}

// ShareCmd returns the share command.
func ShareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "share [task-id]",
		Short: "Print a task as plain text for sharing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}

			s := openScreen(cmd.OutOrStdout(), cliadapter.DetailForm{})
			defer s.close()
			if err := s.show(true); err != nil {
				return err
			}
			t, err := s.task(id)
			if err != nil {
				return err
			}
			s.list.OnShare(t)
			return s.failed()
		},
	}
}

// runOnTask loads the list quietly, applies the action to the task and
// prints the refreshed list.
func runOnTask(cmd *cobra.Command, arg, verb string, action func(s *screen) func(*primary.Task)) error {
	id, err := parseTaskID(arg)
	if err != nil {
		return err
	}

	s := openScreen(cmd.OutOrStdout(), cliadapter.DetailForm{})
	defer s.close()
	if err := s.show(true); err != nil {
		return err
	}
	t, err := s.task(id)
	if err != nil {
		return err
	}

	action(s)(t)
	if err := s.settle(); err != nil {
		return err
	}

	fmt.Fprintf(s.out, "✓ %s task %d: %s\n", verb, t.ID, t.Title)
	return nil
}
