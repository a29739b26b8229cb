// Package main runs operational seminar tasks from the command line.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	seminarctlcmd "github.com/seminarhub/backend/internal/cmd/seminarctl"
)

func main() {
	cfg, err := seminarctlcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := seminarctlcmd.Run(ctx, cfg, os.Stdout); err != nil {
		log.Fatalf("seminarctl: %v", err)
	}
}
