// Package seminarctl runs operational tasks against the seminar store.
package seminarctl

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	entrypoint "github.com/seminarhub/backend/internal/platform/cmd"
	platerrors "github.com/seminarhub/backend/internal/platform/errors"
	"github.com/seminarhub/backend/internal/services/seminar/awards"
	"github.com/seminarhub/backend/internal/services/seminar/domain"
	"github.com/seminarhub/backend/internal/services/seminar/registry"
	"github.com/seminarhub/backend/internal/services/seminar/reports"
	seminarsqlite "github.com/seminarhub/backend/internal/services/seminar/storage/sqlite"
)

// Config holds seminarctl command configuration.
type Config struct {
	DBPath string `env:"SEMINARHUB_DB_PATH" envDefault:"data/seminar.db"`

	// Command and its arguments, taken from positional args.
	Command string
	Args    []string
}

// ParseConfig parses environment and flags into Config. A local .env file is
// loaded first when present.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the seminar SQLite database")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	rest := fs.Args()
	if len(rest) == 0 {
		return Config{}, errors.New("usage: seminarctl [-db path] <seed|compute-awards|export> [args]")
	}
	cfg.Command = rest[0]
	cfg.Args = rest[1:]
	return cfg, nil
}

// Run executes the requested seminarctl command.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	store, err := openStore(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "close store: %v\n", err)
		}
	}()

	switch cfg.Command {
	case "seed":
		return runSeed(ctx, store, out)
	case "compute-awards":
		return runComputeAwards(ctx, store, out)
	case "export":
		return runExport(ctx, store, out, cfg.Args)
	default:
		return fmt.Errorf("unknown command %q, want seed, compute-awards, or export", cfg.Command)
	}
}

// defaultUsers are the starter accounts provisioned by seed. Seeding is
// idempotent: users that already exist are left untouched.
var defaultUsers = []domain.User{
	{ID: "coordinator", Name: "Seminar Coordinator", Role: domain.RoleCoordinator},
	{ID: "evaluator1", Name: "Evaluator One", Role: domain.RoleEvaluator},
	{ID: "evaluator2", Name: "Evaluator Two", Role: domain.RoleEvaluator},
	{ID: "student1", Name: "Student One", Role: domain.RoleStudent},
	{ID: "student2", Name: "Student Two", Role: domain.RoleStudent},
}

func runSeed(ctx context.Context, store *seminarsqlite.Store, out io.Writer) error {
	reg := registry.New(store)
	for _, user := range defaultUsers {
		err := reg.CreateUser(ctx, user)
		switch {
		case err == nil:
			fmt.Fprintf(out, "created %s (%s)\n", user.ID, user.Role)
		case isDuplicate(err):
			fmt.Fprintf(out, "kept %s (already exists)\n", user.ID)
		default:
			return fmt.Errorf("seed user %s: %w", user.ID, err)
		}
	}
	return nil
}

func runComputeAwards(ctx context.Context, store *seminarsqlite.Store, out io.Writer) error {
	winners, err := awards.New(store).PersistAwards(ctx)
	if err != nil {
		return fmt.Errorf("compute awards: %w", err)
	}
	if len(winners) == 0 {
		fmt.Fprintln(out, "no award categories have evaluated submissions yet")
		return nil
	}
	for _, winner := range winners {
		fmt.Fprintf(out, "%s: %q by %s (%.2f)\n", winner.AwardType, winner.Title, winner.StudentName, winner.Score)
	}
	return nil
}

func runExport(ctx context.Context, store *seminarsqlite.Store, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	format := fs.String("format", "txt", "output format: txt or csv")
	outPath := fs.String("out", "", "output file (default: stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: seminarctl export [-format txt|csv] [-out file] <schedule|final-evaluations|award-agenda>")
	}

	svc := reports.New(store)
	var report reports.Report
	var err error
	switch fs.Arg(0) {
	case "schedule":
		report, err = svc.Schedule(ctx)
	case "final-evaluations":
		report, err = svc.FinalEvaluations(ctx)
	case "award-agenda":
		report, err = svc.AwardAgenda(ctx)
	default:
		return fmt.Errorf("unknown report %q", fs.Arg(0))
	}
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	dest := out
	if *outPath != "" {
		file, err := os.Create(*outPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer file.Close()
		dest = file
	}

	switch *format {
	case "csv":
		return reports.WriteCSV(dest, report)
	case "txt":
		return reports.WriteText(dest, report)
	default:
		return fmt.Errorf("unknown format %q, want txt or csv", *format)
	}
}

func openStore(path string) (*seminarsqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := seminarsqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seminar sqlite store: %w", err)
	}
	return store, nil
}

func isDuplicate(err error) bool {
	return platerrors.CodeOf(err) == platerrors.CodeAssignmentDuplicate
}
