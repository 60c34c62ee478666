package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/marcuswu/linkage-assembly/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
