package collab

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Player plays an audio file.
type Player interface {
	Play(ctx context.Context, path string) error
}

// CommandPlayer runs an external command with the audio path appended.
type CommandPlayer struct {
	Command []string
}

// NewCommandPlayer parses a whitespace separated command line. An empty line
// selects the platform default.
func NewCommandPlayer(commandLine string) *CommandPlayer {
	args := strings.Fields(commandLine)
	if len(args) == 0 {
		args = DefaultPlayerCommand(runtime.GOOS)
	}
	return &CommandPlayer{Command: args}
}

// DefaultPlayer opens files with the platform's default handler.
func DefaultPlayer() *CommandPlayer {
	return &CommandPlayer{Command: DefaultPlayerCommand(runtime.GOOS)}
}

// DefaultPlayerCommand returns the file opener for goos.
func DefaultPlayerCommand(goos string) []string {
	switch goos {
	case "windows":
		// start treats the first quoted argument as a window title.
		return []string{"cmd", "/c", "start", ""}
	case "darwin":
		return []string{"open"}
	default:
		return []string{"xdg-open"}
	}
}

// Play runs the command and waits for it to exit. Openers return once the
// handler has been launched.
func (p *CommandPlayer) Play(ctx context.Context, path string) error {
	if p == nil || len(p.Command) == 0 {
		return errors.New("player command is empty")
	}
	args := append(append([]string(nil), p.Command[1:]...), path)
	cmd := exec.CommandContext(ctx, p.Command[0], args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", p.Command[0], err, snippet(out))
	}
	return nil
}
