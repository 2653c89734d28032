package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	domain "github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/dto"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/models"
	queueUC "github.com/BruksfildServices01/barber-queue/internal/usecase/queue"
	"github.com/BruksfildServices01/barber-queue/internal/validators"
)

// JoinOptions holds flags for the join command.
type JoinOptions struct {
	*RootOptions
	Name      string
	Phone     string
	BarberID  int
	ServiceID int
	WalkIn    bool
}

func NewJoinCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &JoinOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "join",
		Short: "Join the queue",
		Long: `Join the queue as a customer. The entry id is remembered in the store
so that status and leave know who you are.

With --walk-in the customer is added by staff at the counter: any barber
may be chosen and nothing is remembered.

Example:
  queuectl join --name "Ana P." --phone 555-0142 --barber 1 --service 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJoin(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "customer name")
	cmd.Flags().StringVar(&opts.Phone, "phone", "", "customer phone")
	cmd.Flags().IntVar(&opts.BarberID, "barber", 0, "barber id")
	cmd.Flags().IntVar(&opts.ServiceID, "service", 0, "service id")
	cmd.Flags().BoolVar(&opts.WalkIn, "walk-in", false, "add a walk-in at the counter")

	return cmd
}

func runJoin(cmd *cobra.Command, opts *JoinOptions) error {
	out := opts.formatter(cmd)
	if err := validators.ValidateAdmission(opts.Name, opts.Phone, opts.BarberID, opts.ServiceID); err != nil {
		return WrapExitError(ExitCommandError, "invalid join form", err)
	}

	ctx := cmd.Context()
	s, err := openSession(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.Close()

	barbers, err := s.engine.Barbers(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read barbers", err)
	}
	services, err := s.engine.Services(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read services", err)
	}

	if !opts.WalkIn {
		if id, ok, err := s.store.CustomerQueueID(ctx); err == nil && ok {
			if _, found, _ := s.engine.Entry(ctx, id); found {
				return NewExitError(ExitFailure, fmt.Sprintf("already in the queue as #%d; leave first", id))
			}
		}
	}

	in := queueUC.AdmitInput{
		CustomerName: strings.TrimSpace(opts.Name),
		Phone:        strings.TrimSpace(opts.Phone),
		BarberID:     opts.BarberID,
		ServiceID:    opts.ServiceID,
	}
	var entry *models.QueueEntry
	if opts.WalkIn {
		in.WalkIn = true
		in.Actor = ActorCLI
		entry, err = s.engine.Admit(ctx, in)
	} else {
		entry, err = s.engine.Join(ctx, in)
	}
	if be, ok := httperr.AsBusiness(err); ok {
		return NewExitError(ExitCommandError, be.Message)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to join the queue", err)
	}

	if !opts.WalkIn {
		if err := s.store.SetCustomerQueueID(ctx, entry.ID); err != nil {
			return WrapExitError(ExitCommandError, "failed to remember queue entry", err)
		}
	}

	item := dto.NewQueueItem(*entry, barbers, services)
	return out.Success(item, func(w io.Writer) {
		fmt.Fprintf(w, "Joined the queue as #%d: position %d, estimated wait %s\n", item.ID, item.Position, item.WaitLabel)
		fmt.Fprintf(w, "%s with %s\n", orUnknown(item.ServiceName), orUnknown(item.BarberName))
	})
}

func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show your place in the queue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, rootOpts)
		},
	}
}

func runStatus(cmd *cobra.Command, opts *RootOptions) error {
	out := opts.formatter(cmd)
	ctx := cmd.Context()
	s, err := openSession(ctx, opts)
	if err != nil {
		return err
	}
	defer s.Close()

	id, ok, err := s.store.CustomerQueueID(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read session", err)
	}
	if !ok {
		return NewExitError(ExitFailure, "not in the queue; run queuectl join")
	}

	entry, found, err := s.engine.Entry(ctx, id)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read the queue", err)
	}
	if !found {
		// served and removed, or removed by staff
		if err := s.store.ClearCustomerQueueID(ctx); err != nil {
			return WrapExitError(ExitCommandError, "failed to clear session", err)
		}
		return NewExitError(ExitFailure, fmt.Sprintf("entry #%d is no longer in the queue", id))
	}

	barbers, err := s.engine.Barbers(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read barbers", err)
	}
	services, err := s.engine.Services(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read services", err)
	}

	item := dto.NewQueueItem(*entry, barbers, services)
	return out.Success(item, func(w io.Writer) {
		if domain.IsServing(*entry) {
			fmt.Fprintln(w, "NOW - you're being served!")
		} else {
			fmt.Fprintf(w, "Position: #%d\n", item.Position)
		}
		fmt.Fprintf(w, "Est. wait: %s\n", item.WaitLabel)
		fmt.Fprintf(w, "Barber:    %s\n", orUnknown(item.BarberName))
		fmt.Fprintf(w, "Service:   %s\n", orUnknown(item.ServiceName))
	})
}

func NewLeaveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "leave",
		Short: "Leave the queue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLeave(cmd, rootOpts)
		},
	}
}

func runLeave(cmd *cobra.Command, opts *RootOptions) error {
	out := opts.formatter(cmd)
	ctx := cmd.Context()
	s, err := openSession(ctx, opts)
	if err != nil {
		return err
	}
	defer s.Close()

	id, ok, err := s.store.CustomerQueueID(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read session", err)
	}
	if !ok {
		return NewExitError(ExitFailure, "not in the queue")
	}

	if err := s.engine.Depart(ctx, id, queueUC.ActorCustomer); err != nil {
		return WrapExitError(ExitCommandError, "failed to leave the queue", err)
	}
	if err := s.store.ClearCustomerQueueID(ctx); err != nil {
		return WrapExitError(ExitCommandError, "failed to clear session", err)
	}

	return out.Success(map[string]int{"left": id}, func(w io.Writer) {
		fmt.Fprintf(w, "Left the queue (#%d).\n", id)
	})
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
