package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/networth/internal/app"
	"github.com/iho/networth/internal/domain"
	"github.com/iho/networth/internal/infrastructure/config"
	"github.com/iho/networth/internal/infrastructure/logger"
	"github.com/iho/networth/internal/usecase"
)

// session is opened before every command and closed after it.
type session struct {
	cfg     *config.Config
	loadErr error
	verbose bool

	app *app.App
}

func newRootCmd() *cobra.Command {
	// the environment supplies flag defaults; flags win when set
	cfg, err := config.Load()
	if err != nil {
		cfg = &config.Config{}
	}
	s := &session{cfg: cfg, loadErr: err}

	rootCmd := &cobra.Command{
		Use:           "networth",
		Short:         "Net worth tracker",
		Long:          `Records dated changes to net worth and keeps every running balance consistent.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.open(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if s.app != nil {
				s.app.Close()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Directory holding the snapshot files")
	rootCmd.PersistentFlags().StringVar(&cfg.StoreDriver, "store", cfg.StoreDriver, "Snapshot store: file, memory, redis or postgres")
	rootCmd.PersistentFlags().StringVar(&cfg.Currency, "currency", cfg.Currency, "Display currency (ISO 4217)")
	rootCmd.PersistentFlags().BoolVarP(&s.verbose, "verbose", "v", false, "Log store activity to stderr")

	assetCmd := &cobra.Command{
		Use:   "asset",
		Short: "Asset registry operations",
	}
	assetCmd.AddCommand(s.assetAddCmd(), s.assetRemoveCmd(), s.assetListCmd())

	rootCmd.AddCommand(
		s.addCmd(),
		s.updateCmd(),
		s.removeCmd(),
		s.listCmd(),
		s.balanceCmd(),
		s.historyCmd(),
		s.breakdownCmd(),
		s.verifyCmd(),
		assetCmd,
	)

	return rootCmd
}

func (s *session) open(cmd *cobra.Command) error {
	if s.loadErr != nil {
		return fmt.Errorf("loading config: %w", s.loadErr)
	}
	cfg := s.cfg
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := "error"
	if s.verbose {
		level = "debug"
	}
	log := logger.NewWithWriter(logger.Config{Level: level, Format: "console"}, cmd.ErrOrStderr())

	a, err := app.New(cmd.Context(), cfg, log, nil)
	if err != nil {
		return err
	}
	s.app = a
	return nil
}

func (s *session) addCmd() *cobra.Command {
	var kind, direction string

	cmd := &cobra.Command{
		Use:   "add DATE LABEL AMOUNT",
		Short: "Record a change to net worth",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[2])
			if err != nil {
				return err
			}

			entry, err := s.app.Ledger.Add(cmd.Context(), usecase.AddEntryInput{
				Date:      args[0],
				Label:     args[1],
				Kind:      kind,
				Magnitude: amount,
				Direction: direction,
			})
			if err = s.warn(cmd, err); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "added %s  balance %s\n", entry.ID, s.app.Money.Format(entry.RunningBalance))
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "asset", "asset or liability")
	cmd.Flags().StringVar(&direction, "direction", "add", "add or subtract")

	return cmd
}

func (s *session) updateCmd() *cobra.Command {
	var date, label, kind, amount, direction string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change fields of an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input usecase.UpdateEntryInput
			flags := cmd.Flags()

			if flags.Changed("date") {
				input.Date = &date
			}
			if flags.Changed("label") {
				input.Label = &label
			}
			if flags.Changed("kind") {
				input.Kind = &kind
			}
			if flags.Changed("direction") {
				input.Direction = &direction
			}
			if flags.Changed("amount") {
				m, err := parseAmount(amount)
				if err != nil {
					return err
				}
				input.Magnitude = &m
			}

			entry, err := s.app.Ledger.Update(cmd.Context(), args[0], input)
			if err = s.warn(cmd, err); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "updated %s  balance %s\n", entry.ID, s.app.Money.Format(entry.RunningBalance))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "New date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&label, "label", "", "New label")
	cmd.Flags().StringVar(&kind, "kind", "", "asset or liability")
	cmd.Flags().StringVar(&amount, "amount", "", "New magnitude")
	cmd.Flags().StringVar(&direction, "direction", "", "add or subtract")

	return cmd
}

func (s *session) removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Delete an entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.warn(cmd, s.app.Ledger.Remove(cmd.Context(), args[0])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s  balance %s\n", args[0], s.app.Money.Format(s.app.Ledger.CurrentBalance(cmd.Context())))
			return nil
		},
	}
}

func (s *session) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show entries in date order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := s.app.Ledger.List(cmd.Context())
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no entries")
				return nil
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "DATE\tLABEL\tKIND\tCHANGE\tBALANCE\tID")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					e.Date, e.Label, e.Kind, s.app.Money.Signed(e.Delta()), s.app.Money.Format(e.RunningBalance), e.ID)
			}
			return tw.Flush()
		},
	}
}

func (s *session) balanceCmd() *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show current net worth, or net worth on a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asOf == "" {
				fmt.Fprintln(cmd.OutOrStdout(), s.app.Money.Format(s.app.Ledger.CurrentBalance(cmd.Context())))
				return nil
			}

			date, err := domain.ParseDate(asOf)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s.app.Money.Format(s.app.Ledger.AsOf(cmd.Context(), date)))
			return nil
		},
	}

	cmd.Flags().StringVar(&asOf, "as-of", "", "Date (YYYY-MM-DD)")

	return cmd
}

func (s *session) historyCmd() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the closing balance of each entry date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fromDate, err := optionalDate(from)
			if err != nil {
				return err
			}
			toDate, err := optionalDate(to)
			if err != nil {
				return err
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "DATE\tBALANCE")
			for _, p := range s.app.Ledger.History(cmd.Context(), fromDate, toDate) {
				fmt.Fprintf(tw, "%s\t%s\n", p.Date, s.app.Money.Format(p.Balance))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Last date (YYYY-MM-DD)")

	return cmd
}

func (s *session) breakdownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "breakdown",
		Short: "Show how much each label contributes to net worth",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			totals := s.app.Ledger.Breakdown(cmd.Context())
			if len(totals) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no entries")
				return nil
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "LABEL\tTOTAL\tENTRIES")
			for _, t := range totals {
				fmt.Fprintf(tw, "%s\t%s\t%d\n", t.Label, s.app.Money.Signed(t.Total), t.Entries)
			}
			fmt.Fprintf(tw, "net worth\t%s\t\n", s.app.Money.Format(s.app.Ledger.CurrentBalance(cmd.Context())))
			return tw.Flush()
		},
	}
}

func (s *session) verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check stored running balances against a full recompute",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.app.Ledger.Verify(cmd.Context()); err != nil {
				return fmt.Errorf("consistency check FAILED: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "consistency check PASSED")
			return nil
		},
	}
}

func (s *session) assetAddCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "add NAME VALUE",
		Short: "Register an asset or liability",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := parseAmount(args[1])
			if err != nil {
				return err
			}

			asset, err := s.app.Assets.AddAsset(cmd.Context(), usecase.AddAssetInput{
				Name:  args[0],
				Kind:  kind,
				Value: value,
			})
			if err = s.warn(cmd, err); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "added %s %s (%s)\n", asset.Kind, asset.Name, asset.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "type", "asset", "asset or liability")

	return cmd
}

func (s *session) assetRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Remove a registered asset",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.warn(cmd, s.app.Assets.RemoveAsset(cmd.Context(), args[0])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
			return nil
		},
	}
}

func (s *session) assetListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show registered assets and totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "NAME\tTYPE\tVALUE\tID")
			for _, a := range s.app.Assets.ListAssets(cmd.Context()) {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.Name, a.Kind, s.app.Money.Format(a.Value), a.ID)
			}

			t := s.app.Assets.Totals(cmd.Context())
			fmt.Fprintln(tw)
			fmt.Fprintf(tw, "assets\t\t%s\t\n", s.app.Money.Format(t.Assets))
			fmt.Fprintf(tw, "liabilities\t\t%s\t\n", s.app.Money.Format(t.Liabilities))
			fmt.Fprintf(tw, "net worth\t\t%s\t\n", s.app.Money.Format(t.NetWorth))
			return tw.Flush()
		},
	}
}

// warn prints a persistence warning and swallows it; other errors pass through.
func (s *session) warn(cmd *cobra.Command, err error) error {
	if usecase.IsWarning(err) {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
		return nil
	}
	return err
}

// parseAmount accepts plain decimals like "1200" or "99.95".
func parseAmount(s string) (float64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", domain.ErrInvalidMagnitude, s)
	}
	return d.InexactFloat64(), nil
}

func optionalDate(s string) (domain.Date, error) {
	if s == "" {
		return domain.Date{}, nil
	}
	return domain.ParseDate(s)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}
