package commands

import (
	"context"
	"log"

	"jolt/internal/config"
	"jolt/internal/server"
)

// ServeCommand serves REPL sessions over WebSocket until ctx is done.
func ServeCommand(ctx context.Context, env Env, args []string) error {
	fs := newFlagSet("serve", env)
	configPath := fs.String("config", "", "configuration file")
	addr := fs.String("addr", "", "listen address (overrides server.addr)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	store := openHistory(ctx, cfg)
	if store != nil {
		defer store.Close()
	}

	log.Printf("jolt: serving REPL sessions on ws://%s/repl", cfg.Server.Addr)
	return server.New(cfg.Server, recorder(store)).ListenAndServe(ctx)
}
