package commands

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"jolt/internal/config"
	"jolt/internal/history"
)

// HistoryCommand lists recorded units, newest first, or every unit of one
// session in the order it ran.
func HistoryCommand(ctx context.Context, env Env, args []string) error {
	fs := newFlagSet("history", env)
	configPath := fs.String("config", "", "configuration file")
	limit := fs.Int("n", 20, "number of entries to show")
	session := fs.String("session", "", "show one session")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	path := cfg.HistoryPath()
	if path == "" {
		return errors.New("history is disabled in the configuration")
	}
	store, err := history.Open(ctx, path)
	if err != nil {
		return err
	}
	defer store.Close()

	var entries []history.Entry
	if *session != "" {
		entries, err = store.Session(ctx, *session)
	} else {
		entries, err = store.Recent(ctx, *limit)
	}
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(env.Stdout, "no history")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintln(env.Stdout, e)
	}
	return nil
}
