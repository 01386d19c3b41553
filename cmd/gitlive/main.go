package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		<-c
		cancel()
	}()

	runner := NewRunner()
	runner.Command.SetArgs(rewriteVeryVerboseShorthand(os.Args[1:]))

	code := runner.Execute(ctx)
	signal.Stop(c)
	os.Exit(code)
}

// rewriteVeryVerboseShorthand translates the literal "-vv" token into
// "--very-verbose". pflag shorthand flags are always exactly one rune,
// so the documented two-character form can't be declared directly.
func rewriteVeryVerboseShorthand(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		if a == "-vv" {
			out[i] = "--very-verbose"
		} else {
			out[i] = a
		}
	}
	return out
}
