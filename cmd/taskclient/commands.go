package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/td0m/taskclient/internal/page"
	"github.com/td0m/taskclient/internal/ui"
	"github.com/td0m/taskclient/pkg/task"
)

func newListCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, f, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := a.ops.Load(cmd.Context()); err != nil {
				return err
			}
			printRows(cmd.OutOrStdout(), a.page.Rows())
			return nil
		},
	}
}

func newAddCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "add LABEL DATE",
		Short: "Add a task",
		Long: `Add a task starting at DATE. DATE can be a timestamp ("2024-05-20T12:00"),
a day ("2024-05-20", "20/05/24", "20 May 2024") or relative ("tomorrow", "in 3 days", "fri").`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(2)(cmd, args); err != nil {
				return err
			}
			if strings.TrimSpace(args[0]) == "" || strings.TrimSpace(args[1]) == "" {
				return errors.New("label and start date are required to add a task")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, f, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			a.page.SetValue(page.FieldLabel, args[0])
			a.page.SetValue(page.FieldDate, args[1])
			if err := a.ops.Add(cmd.Context()); err != nil {
				return err
			}
			printRows(cmd.OutOrStdout(), a.page.Rows())
			return nil
		},
	}
}

func newDeleteCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete KEY",
		Short: "Delete a task by id, or by label when the server assigns no ids",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, f, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.ops.Delete(cmd.Context(), task.Task{ID: args[0]}); err != nil {
				return err
			}
			printRows(cmd.OutOrStdout(), a.page.Rows())
			return nil
		},
	}
}

func newFilterCmd(f *flags) *cobra.Command {
	var text, date string
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "List the tasks matching a label and start date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, f, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			a.page.SetValue(page.FieldSearchText, text)
			a.page.SetValue(page.FieldSearchDate, date)
			if _, err := a.ops.Filter(cmd.Context()); err != nil {
				return err
			}
			printRows(cmd.OutOrStdout(), a.page.Rows())
			return nil
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "Case-insensitive text the label must contain")
	cmd.Flags().StringVar(&date, "date", "", "Start date, or its beginning (2024-05)")
	return cmd
}

func printRows(w io.Writer, rows []page.Row) {
	for _, r := range rows {
		fmt.Fprintln(w, ui.PlainRow(r))
	}
}
