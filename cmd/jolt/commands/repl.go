package commands

import (
	"context"

	"jolt/internal/config"
	"jolt/internal/repl"
)

// ReplCommand starts an interactive session. Units are recorded in the
// configured history database.
func ReplCommand(ctx context.Context, env Env, args []string) error {
	fs := newFlagSet("repl", env)
	configPath := fs.String("config", "", "configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	store := openHistory(ctx, cfg)
	if store != nil {
		defer store.Close()
	}

	return repl.Run(ctx, env.Stdin, env.Stdout, repl.Options{
		Prompt:      cfg.REPL.Prompt,
		Banner:      cfg.ShowBanner(),
		Interactive: env.Interactive,
		Recorder:    recorder(store),
	})
}
