package script

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/ordtree/internal/logging"
)

// RunnerConfig configures a Runner.
type RunnerConfig struct {
	// InstructionLimit caps instructions per run. Zero means unlimited.
	InstructionLimit int
	// Timeout cancels a run after this long. Zero means no timeout.
	Timeout time.Duration
	// Output receives print output. Defaults to os.Stdout.
	Output io.Writer
}

// Runner executes scripts, each in a fresh State.
type Runner struct {
	cfg RunnerConfig
	log *logging.Logger
}

// NewRunner creates a runner. A nil logger discards log output.
func NewRunner(cfg RunnerConfig, log *logging.Logger) *Runner {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if log == nil {
		log = logging.NullLogger
	}
	return &Runner{cfg: cfg, log: log.WithComponent("script")}
}

// RunFile reads and runs the script at path.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading script: %w", err)
	}
	return r.Run(ctx, path, string(data))
}

// Run executes code under the given chunk name. Each run is logged with
// its own run id.
func (r *Runner) Run(ctx context.Context, name, code string) error {
	log := r.log.WithFields(map[string]any{
		"run":    uuid.NewString(),
		"script": name,
	})

	state, err := NewState(
		WithExecutionTimeout(r.cfg.Timeout),
		WithInstructionLimit(int64(r.cfg.InstructionLimit)),
		WithOutput(r.cfg.Output),
	)
	if err != nil {
		return fmt.Errorf("creating lua state: %w", err)
	}
	defer state.Close()

	log.Debug("starting")
	start := time.Now()
	err = state.DoChunk(ctx, name, code)
	elapsed := time.Since(start)
	instructions := state.Sandbox().InstructionCount()

	if err != nil {
		log.Error("failed after %v (%d instructions): %v", elapsed, instructions, err)
		return fmt.Errorf("script %s: %w", name, err)
	}
	log.Info("finished in %v (%d instructions)", elapsed, instructions)
	return nil
}
