package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
)

func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve <entry-id>",
		Short: "Mark a customer as being served",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStaffAction(cmd, rootOpts, args[0], "serving")
		},
	}
}

func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <entry-id>",
		Short: "Remove a customer from the queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStaffAction(cmd, rootOpts, args[0], "removed")
		},
	}
}

// runStaffAction mirrors the engine: an unknown id changes nothing and is
// not an error, it is only reported.
func runStaffAction(cmd *cobra.Command, opts *RootOptions, rawID, action string) error {
	id, err := strconv.Atoi(rawID)
	if err != nil || id <= 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid entry id %q", rawID))
	}

	out := opts.formatter(cmd)
	ctx := cmd.Context()
	s, err := openSession(ctx, opts)
	if err != nil {
		return err
	}
	defer s.Close()

	_, found, err := s.engine.Entry(ctx, id)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read the queue", err)
	}

	switch action {
	case "serving":
		err = s.engine.MarkServing(ctx, id, ActorCLI)
	case "removed":
		err = s.engine.Depart(ctx, id, ActorCLI)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to update the queue", err)
	}

	out.VerboseLog("entry #%d found=%t action=%s", id, found, action)
	result := map[string]any{"id": id, "action": action, "found": found}
	return out.Success(result, func(w io.Writer) {
		if !found {
			fmt.Fprintf(w, "No entry #%d in the queue; nothing to do.\n", id)
			return
		}
		if action == "serving" {
			fmt.Fprintf(w, "Entry #%d is now being served.\n", id)
			return
		}
		fmt.Fprintf(w, "Entry #%d removed from the queue.\n", id)
	})
}

func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear every entry (ids keep counting up)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := rootOpts.formatter(cmd)
			ctx := cmd.Context()
			s, err := openSession(ctx, rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			cleared, err := s.engine.Reset(ctx, ActorCLI)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to reset the queue", err)
			}
			return out.Success(map[string]int{"cleared": cleared}, func(w io.Writer) {
				fmt.Fprintf(w, "Cleared %d entries.\n", cleared)
			})
		},
	}
}
