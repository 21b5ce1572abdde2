package replay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
)

// ErrNotMatch reports that a file decoded cleanly but does not describe a
// completed match (e.g. an observer-only or aborted replay). Callers treat
// it the same as a decode failure: skip the file, continue the batch.
var ErrNotMatch = errors.New("replay: not a valid match")

// Decoder turns a replay file into a Summary.
type Decoder interface {
	Decode(ctx context.Context, path string) (*Summary, error)
}

// ExecDecoder invokes an external decoder command that reads a replay file
// and prints a JSON Summary on stdout. The replay binary format stays an
// external concern; only the JSON contract is ours.
type ExecDecoder struct {
	// Command is the decoder executable; Args are prepended before the
	// replay path.
	Command string
	Args    []string
}

// NewExecDecoder builds a decoder around the given command line. The command
// is invoked as: command args... <replay-path>.
func NewExecDecoder(command string, args ...string) *ExecDecoder {
	return &ExecDecoder{Command: command, Args: args}
}

// Decode runs the decoder command on one replay file.
func (d *ExecDecoder) Decode(ctx context.Context, path string) (*Summary, error) {
	if d.Command == "" {
		return nil, errors.New("replay: decoder command is not configured")
	}

	args := append(append([]string{}, d.Args...), path)
	cmd := exec.CommandContext(ctx, d.Command, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		slog.Debug("decoder command failed", "path", path, "stderr", stderr.String())
		return nil, fmt.Errorf("run decoder on %s: %w", path, err)
	}

	var s Summary
	if err := json.Unmarshal(stdout.Bytes(), &s); err != nil {
		return nil, fmt.Errorf("decode decoder output for %s: %w", path, err)
	}

	if s.Winner == "" && s.Loser == "" && len(s.Players) == 0 {
		return nil, ErrNotMatch
	}
	return &s, nil
}
