package main

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// execReviewer starts the configured external reviewer tool and does not wait
// for it. Callers treat a launch failure as non-fatal.
type execReviewer struct {
	command string
}

func (r *execReviewer) Launch(ctx context.Context) error {
	if r.command == "" {
		return fmt.Errorf("no reviewer command configured")
	}
	args := strings.Fields(r.command)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	return cmd.Start()
}
