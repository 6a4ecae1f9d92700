package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/fx"

	"github.com/polkiloo/klarnapay/internal/di"
	"github.com/polkiloo/klarnapay/internal/pkg/auth"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "hash-token" {
		os.Exit(hashToken(os.Args[2:]))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := fx.New(
		fx.Provide(func() context.Context { return ctx }),
		di.Module(),
	)

	run(ctx, app)
}

// hashToken prints the ADMIN_TOKEN_HASH value for a chosen admin token.
func hashToken(args []string) int {
	if len(args) != 1 || args[0] == "" {
		fmt.Fprintln(os.Stderr, "usage: klarnapay hash-token <token>")
		return 2
	}
	hash, err := auth.NewBcryptHasher(0).Hash(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to hash token: %v\n", err)
		return 1
	}
	fmt.Println(hash)
	return 0
}
