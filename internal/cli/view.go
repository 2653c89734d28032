package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/barber-queue/internal/dto"
	queueUC "github.com/BruksfildServices01/barber-queue/internal/usecase/queue"
	"github.com/BruksfildServices01/barber-queue/internal/watch"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Staff bool
}

func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the live queue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.Staff, "staff", false, "staff view: ids, status and phone numbers")
	return cmd
}

func runList(cmd *cobra.Command, opts *ListOptions) error {
	out := opts.formatter(cmd)
	ctx := cmd.Context()
	s, err := openSession(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.Close()

	if opts.Staff {
		items, err := staffQueue(ctx, s.engine)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read the queue", err)
		}
		return out.Success(items, func(w io.Writer) { renderStaffQueue(w, items) })
	}

	live, err := liveQueue(ctx, s.engine, clockwork.NewRealClock())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read the queue", err)
	}
	return out.Success(live, func(w io.Writer) { renderLiveQueue(w, live) })
}

func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show queue statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := rootOpts.formatter(cmd)
			ctx := cmd.Context()
			s, err := openSession(ctx, rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			st, err := s.engine.Stats(ctx)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to compute stats", err)
			}
			return out.Success(st, func(w io.Writer) {
				fmt.Fprintf(w, "Waiting:      %d\n", st.Waiting)
				fmt.Fprintf(w, "Serving:      %d\n", st.Serving)
				fmt.Fprintf(w, "Total:        %d\n", st.Total)
				fmt.Fprintf(w, "Average wait: %s\n", dto.FormatWait(st.AvgWaitMinutes))
			})
		},
	}
}

// WatchOptions holds flags for the watch command.
type WatchOptions struct {
	*RootOptions
	Interval time.Duration
	Count    int
}

var errWatchDone = errors.New("watch: update limit reached")

func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow the live queue until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, opts)
		},
	}
	cmd.Flags().DurationVar(&opts.Interval, "interval", 0, "refresh interval (default CUSTOMER_POLL_INTERVAL)")
	cmd.Flags().IntVar(&opts.Count, "count", 0, "stop after this many updates (0 = until interrupted)")
	return cmd
}

func runWatch(cmd *cobra.Command, opts *WatchOptions) error {
	out := opts.formatter(cmd)
	interval := opts.Interval
	if interval <= 0 {
		interval = opts.cfg.CustomerPollInterval
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := openSession(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.Close()

	clock := clockwork.NewRealClock()
	source := func(ctx context.Context) (dto.LiveQueueDTO, error) {
		return liveQueue(ctx, s.engine, clock)
	}

	updates := 0
	err = watch.NewPoller(source, interval, clock).Run(ctx, func(live dto.LiveQueueDTO) error {
		if err := out.Success(live, func(w io.Writer) {
			if updates > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "Last updated: %s\n", live.UpdatedAt.Format("15:04:05"))
			renderLiveQueue(w, live)
		}); err != nil {
			return err
		}
		updates++
		if opts.Count > 0 && updates >= opts.Count {
			return errWatchDone
		}
		return nil
	})
	if err != nil && !errors.Is(err, errWatchDone) {
		return WrapExitError(ExitCommandError, "watch stopped", err)
	}
	return nil
}

// ======================================================
// RENDERING
// ======================================================

func liveQueue(ctx context.Context, engine *queueUC.Engine, clock clockwork.Clock) (dto.LiveQueueDTO, error) {
	snapshot, err := engine.Snapshot(ctx)
	if err != nil {
		return dto.LiveQueueDTO{}, err
	}
	barbers, err := engine.Barbers(ctx)
	if err != nil {
		return dto.LiveQueueDTO{}, err
	}
	services, err := engine.Services(ctx)
	if err != nil {
		return dto.LiveQueueDTO{}, err
	}
	return dto.NewLiveQueue(snapshot, barbers, services, clock.Now()), nil
}

func staffQueue(ctx context.Context, engine *queueUC.Engine) ([]dto.AdminQueueItemDTO, error) {
	snapshot, err := engine.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	barbers, err := engine.Barbers(ctx)
	if err != nil {
		return nil, err
	}
	services, err := engine.Services(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AdminQueueItemDTO, 0, len(snapshot))
	for _, e := range snapshot {
		items = append(items, dto.NewAdminQueueItem(e, barbers, services))
	}
	return items, nil
}

func renderLiveQueue(w io.Writer, live dto.LiveQueueDTO) {
	for _, s := range live.Serving {
		fmt.Fprintf(w, "Now serving: %s - %s\n", s.CustomerName, orUnknown(s.ServiceName))
	}
	if len(live.Waiting) == 0 {
		fmt.Fprintln(w, "No customers in queue. Walk-ins welcome!")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "POS\tCUSTOMER\tSERVICE\tBARBER\tWAIT")
	for _, item := range live.Waiting {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t~%s\n",
			item.Position, item.CustomerName, orUnknown(item.ServiceName), orUnknown(item.BarberName), item.WaitLabel)
	}
	tw.Flush()
}

func renderStaffQueue(w io.Writer, items []dto.AdminQueueItemDTO) {
	if len(items) == 0 {
		fmt.Fprintln(w, "Queue is empty.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tPOS\tCUSTOMER\tPHONE\tSERVICE\tBARBER\tWAIT")
	for _, item := range items {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
			item.ID, item.Status, item.Position, item.CustomerName, item.Phone,
			orUnknown(item.ServiceName), orUnknown(item.BarberName), item.WaitLabel)
	}
	tw.Flush()
}
