package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/folashadea/Quantum-Entanglement-Network/internal/flags"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/infrastructure/sqlite"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/command"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/domain"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/tracing"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/log"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/presentation"
)

// withLedger opens the ledger described by the configuration, runs fn and
// shuts everything down again. Each invocation is one short-lived session.
func withLedger(cmd *cobra.Command, fn func(ctx context.Context, l *ledger.Ledger) error) (err error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	registry := cfg.FlagRegistry()
	opts := ledger.Options{
		Flags:         registry,
		Source:        command.SourceCLI,
		QueueCapacity: cfg.Processor.QueueCapacity,
		ReplayWindow:  cfg.Processor.ReplayWindow,
		CacheTTL:      cfg.Processor.CacheTTL,
		SlowThreshold: cfg.Processor.SlowThreshold,
	}

	memory, _ := cmd.Flags().GetBool("memory")
	if !memory && registry.Enabled(flags.FlagSQLitePersistence) {
		db, err := sqlite.NewDB(cfg.DatabasePath())
		if err != nil {
			return fmt.Errorf("opening ledger database: %w", err)
		}
		defer func() {
			if closeErr := db.Close(); closeErr != nil && err == nil {
				err = closeErr
			}
		}()
		opts.Repositories = db.Repositories()
	}

	tracingCfg := cfg.Tracing
	tracingCfg.FilePath = cfg.TracesFilePath()
	provider, err := tracing.NewProvider(tracingCfg)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		if shutdownErr := provider.Shutdown(context.WithoutCancel(ctx)); shutdownErr != nil {
			log.ErrorErr(log.CatTrace, "tracer shutdown failed", shutdownErr)
		}
	}()
	if provider.Enabled() {
		opts.Tracer = provider.Tracer()
	}

	l := ledger.New(opts)
	if err := l.Start(ctx); err != nil {
		return fmt.Errorf("starting ledger: %w", err)
	}
	defer func() { _ = l.Close() }()

	return fn(ctx, l)
}

// transaction reads the sender and height every mutation needs.
func transaction(cmd *cobra.Command) (domain.Sender, domain.Height) {
	sender, _ := cmd.Flags().GetString("sender")
	height, _ := cmd.Flags().GetUint64("height")
	return domain.Sender(sender), domain.Height(height)
}

func formatter(cmd *cobra.Command) (*presentation.Formatter, error) {
	output, _ := cmd.Flags().GetString("output")
	format, err := presentation.ParseFormat(output)
	if err != nil {
		return nil, err
	}
	return presentation.NewFormatter(cmd.OutOrStdout(), format), nil
}

// respond renders the envelope for value/err. A rejected transaction renders
// normally and then fails the command with errRejected; any other error is
// returned as is.
func respond[T any](cmd *cobra.Command, value T, err error) error {
	f, ferr := formatter(cmd)
	if ferr != nil {
		return ferr
	}
	if renderErr := presentation.Render(f, ledger.Respond(value, err)); renderErr != nil {
		return renderErr
	}
	if err == nil {
		return nil
	}
	if _, ok := domain.KindOf(err); ok {
		return errRejected
	}
	return err
}

// view converts a loaded record, passing lookup errors through.
func view[R any, V any](record R, err error, convert func(R) V) (V, error) {
	if err != nil {
		var zero V
		return zero, err
	}
	return convert(record), nil
}

// parseID reads a record ID. Zero parses; no record has it, so the ledger
// answers NotFound like any other unknown ID.
func parseID(arg string) (domain.EntityID, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, domain.InvalidArgument(fmt.Sprintf("invalid id %q", arg))
	}
	return domain.EntityID(id), nil
}

// idCommand builds a subcommand taking a single record ID.
func idCommand(use, short string, run func(ctx context.Context, cmd *cobra.Command, l *ledger.Ledger, id domain.EntityID) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return respond(cmd, false, err)
			}
			return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
				return run(ctx, cmd, l, id)
			})
		},
	}
}

// countCommand builds the "count" subcommand of a registry.
func countCommand(registry domain.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: fmt.Sprintf("Number of %s records, which is also the highest %s ID", registry, registry),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
				count, err := l.Count(ctx, registry)
				return respond(cmd, count, err)
			})
		},
	}
}

// IsRejected reports whether err marks a transaction that was rendered as a
// rejection envelope rather than a failure to run the command.
func IsRejected(err error) bool {
	return errors.Is(err, errRejected)
}
