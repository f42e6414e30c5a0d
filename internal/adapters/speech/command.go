package speech

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/airsenselabs/assistant/internal/domain"
)

// CommandSynthesizer shells out to a local synthesis binary (espeak on
// Linux, say on macOS). Local/device call, no network contract.
type CommandSynthesizer struct {
	command string
}

func NewCommandSynthesizer(command string) *CommandSynthesizer {
	return &CommandSynthesizer{command: command}
}

func (s *CommandSynthesizer) Speak(ctx context.Context, text string, opts domain.SpeechOptions) error {
	cmd := exec.CommandContext(ctx, s.command, buildArgs(filepath.Base(s.command), text, opts)...)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("running %s: %w", s.command, err)
	}
	return nil
}

func buildArgs(base, text string, opts domain.SpeechOptions) []string {
	switch base {
	case "espeak", "espeak-ng":
		// espeak pitch is 0-99 around 50, speed is words per minute.
		args := []string{
			"-p", strconv.Itoa(int(opts.Pitch * 50)),
			"-s", strconv.Itoa(int(opts.Rate * 175)),
		}
		if opts.Language != "" {
			args = append(args, "-v", opts.Language)
		}
		return append(args, text)
	case "say":
		args := []string{
			"-r", strconv.Itoa(int(opts.Rate * 175)),
		}
		return append(args, text)
	default:
		return []string{text}
	}
}

// Null discards utterances; used when spoken replies are disabled.
type Null struct{}

func (Null) Speak(context.Context, string, domain.SpeechOptions) error { return nil }
