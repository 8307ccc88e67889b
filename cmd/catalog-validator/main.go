// catalog-validator fetches a product catalog and reports records that break
// the title, price and rating rules.
//
// Usage:
//
//	catalog-validator [--url=<endpoint>] [--format=text|json|yaml] [--summary]
//	catalog-validator serve [--addr=:8080] [--jwt-secret=<secret>]
//	catalog-validator token --subject=<name> [--ttl=1h]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
