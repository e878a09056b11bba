package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// Default limits for Lua state.
const (
	DefaultExecutionTimeout = 5 * time.Second // Timeout for Lua execution
	DefaultInstructionLimit = 1_000_000       // Maximum instructions per execution
)

// State wraps gopher-lua with the sandbox and the ordtree module.
//
// gopher-lua's LState is not goroutine-safe. The mutex serializes calls
// made through State; direct use of L bypasses it.
type State struct {
	L *lua.LState

	mu sync.Mutex

	// Configuration
	executionTimeout time.Duration
	instructionLimit int64
	output           io.Writer

	// Sandbox
	sandbox *Sandbox

	// Tracking
	closed bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithExecutionTimeout sets the execution timeout for Lua calls.
// Zero disables the timeout.
func WithExecutionTimeout(d time.Duration) StateOption {
	return func(s *State) {
		s.executionTimeout = d
	}
}

// WithInstructionLimit sets the maximum instructions per execution.
// Zero disables the limit.
func WithInstructionLimit(limit int64) StateOption {
	return func(s *State) {
		s.instructionLimit = limit
	}
}

// WithOutput sets where the Lua print function writes.
func WithOutput(w io.Writer) StateOption {
	return func(s *State) {
		s.output = w
	}
}

// NewState creates a new sandboxed Lua state with the ordtree module loaded.
func NewState(opts ...StateOption) (*State, error) {
	state := &State{
		executionTimeout: DefaultExecutionTimeout,
		instructionLimit: DefaultInstructionLimit,
		output:           os.Stdout,
	}

	for _, opt := range opts {
		opt(state)
	}
	if state.executionTimeout < 0 || state.instructionLimit < 0 {
		return nil, fmt.Errorf("negative limit: timeout %v, instructions %d",
			state.executionTimeout, state.instructionLimit)
	}

	L := lua.NewState(lua.Options{
		SkipOpenLibs: true, // We'll open selectively
	})

	state.L = L

	openSafeLibraries(L)

	state.sandbox = NewSandbox(L, state.instructionLimit, state.output)
	state.sandbox.Install()

	registerModule(L, state.sandbox)

	return state, nil
}

// openSafeLibraries opens only safe Lua standard libraries.
func openSafeLibraries(L *lua.LState) {
	// print, type, pairs, ipairs, etc.
	lua.OpenBase(L)

	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// Not opened: io, os, debug, package, channel, coroutine.
}

// DoString executes a Lua string.
// Execution is synchronous - the call blocks until completion or error.
func (s *State) DoString(ctx context.Context, code string) error {
	return s.DoChunk(ctx, "<string>", code)
}

// DoFile reads and executes the Lua file at path.
func (s *State) DoFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading script: %w", err)
	}
	return s.DoChunk(ctx, path, string(data))
}

// DoChunk compiles code under the chunk name used in error messages and
// executes it.
func (s *State) DoChunk(ctx context.Context, name, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}

	s.sandbox.ResetInstructionCount()

	if s.executionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.executionTimeout)
		defer cancel()
	}
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	fn, err := s.L.Load(strings.NewReader(code), name)
	if err != nil {
		return fmt.Errorf("compiling %s: %w", name, err)
	}

	top := s.L.GetTop()
	defer s.L.SetTop(top)

	err = s.doWithRecovery(func() error {
		s.L.Push(fn)
		return s.L.PCall(0, lua.MultRet, nil)
	})
	return s.classify(ctx, err)
}

// doWithRecovery executes a function with panic recovery.
func (s *State) doWithRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// classify maps a failed run onto the package's sentinel errors.
func (s *State) classify(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case s.sandbox.Exceeded():
		return fmt.Errorf("%w: %v", ErrInstructionLimit, err)
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrExecutionTimeout, err)
	case ctx.Err() != nil:
		return fmt.Errorf("%w: %v", ctx.Err(), err)
	}
	return err
}

// GetGlobal returns a global variable value.
func (s *State) GetGlobal(name string) lua.LValue {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return lua.LNil
	}

	return s.L.GetGlobal(name)
}

// SetGlobal sets a global variable.
func (s *State) SetGlobal(name string, value lua.LValue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.L.SetGlobal(name, value)
}

// Sandbox returns the sandbox for instruction accounting.
func (s *State) Sandbox() *Sandbox {
	return s.sandbox
}

// IsClosed returns true if the state has been closed.
func (s *State) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close releases all resources associated with the Lua state.
// After Close is called, all other methods will return ErrStateClosed.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.L.Close()
	s.closed = true
	return nil
}
