package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// SeedOptions holds flags for the seed command.
type SeedOptions struct {
	*RootOptions
	File     string
	NoSample bool
}

func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Install default barbers, services and sample queue",
		Long: `Install the seed data. Only keys that are entirely absent are written;
existing data, even if unreadable, is left alone. Every other command seeds
the same way on open, so this is mostly useful with --file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.File != "" {
				opts.cfg.SeedFile = opts.File
			}
			if opts.NoSample {
				opts.cfg.SeedSampleQueue = false
			}

			out := opts.formatter(cmd)
			s, err := openSession(cmd.Context(), opts.RootOptions)
			if err != nil {
				return err
			}
			defer s.Close()

			written := s.seeded
			if written == nil {
				written = []string{}
			}
			return out.Success(map[string][]string{"written": written}, func(w io.Writer) {
				if len(written) == 0 {
					fmt.Fprintln(w, "Store already seeded; nothing written.")
					return
				}
				fmt.Fprintf(w, "Seeded: %s\n", strings.Join(written, ", "))
			})
		},
	}

	cmd.Flags().StringVar(&opts.File, "file", "", "YAML seed file (default SEED_FILE)")
	cmd.Flags().BoolVar(&opts.NoSample, "no-sample", false, "skip the sample customers")
	return cmd
}
