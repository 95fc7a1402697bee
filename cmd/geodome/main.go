// Command geodome generates a one-frequency geodesic dome and writes it
// out as meshes, drawings and a building energy model.
//
// Usage:
//
//	geodome [--config geodome.toml] [--radius 4] [--window-ratio 0.8] [-v]
//	geodome config > geodome.toml
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		slog.Error("geodome failed", "err", err)
		os.Exit(1)
	}
}
