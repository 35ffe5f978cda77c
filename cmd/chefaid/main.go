// Package main is the chefaid command: the HTTP server and a terminal client
// for the same screens
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := Execute(ctx)
	cancel()
	os.Exit(code)
}
