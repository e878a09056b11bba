package script

import (
	"io"
	"strings"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// Sandbox restricts Lua execution to safe operations.
type Sandbox struct {
	L *lua.LState

	// Instruction limiting
	instructionLimit int64
	instructionCount int64
	exceeded         atomic.Bool

	output io.Writer
}

// NewSandbox creates a new sandbox for the Lua state.
func NewSandbox(L *lua.LState, instructionLimit int64, output io.Writer) *Sandbox {
	return &Sandbox{
		L:                L,
		instructionLimit: instructionLimit,
		output:           output,
	}
}

// Install sets up the sandbox restrictions.
func (s *Sandbox) Install() {
	// Functions that load code from outside the script.
	dangerousFuncs := []string{
		"dofile",
		"loadfile",
		"load",
		"loadstring",
		"require",
		"module",
		"_printregs",
	}

	for _, name := range dangerousFuncs {
		s.L.SetGlobal(name, lua.LNil)
	}

	s.installSafePrint()
}

// installSafePrint replaces print with a version that writes to the
// sandbox output.
func (s *Sandbox) installSafePrint() {
	s.L.SetGlobal("print", s.L.NewFunction(func(L *lua.LState) int {
		top := L.GetTop()
		parts := make([]string, top)
		for i := 1; i <= top; i++ {
			parts[i-1] = L.ToStringMeta(L.Get(i)).String()
		}
		if _, err := io.WriteString(s.output, strings.Join(parts, "\t")+"\n"); err != nil {
			L.RaiseError("print: %v", err)
		}
		return 0
	}))
}

// ResetInstructionCount resets the instruction counter.
func (s *Sandbox) ResetInstructionCount() {
	atomic.StoreInt64(&s.instructionCount, 0)
	s.exceeded.Store(false)
}

// InstructionCount returns the current instruction count.
func (s *Sandbox) InstructionCount() int64 {
	return atomic.LoadInt64(&s.instructionCount)
}

// IncrementInstructions adds to the instruction count and returns true if limit exceeded.
func (s *Sandbox) IncrementInstructions(n int64) bool {
	count := atomic.AddInt64(&s.instructionCount, n)
	if s.instructionLimit <= 0 {
		return false
	}
	return count > s.instructionLimit
}

// Charge adds n to the instruction count and raises a Lua error in L once
// the limit is exceeded.
func (s *Sandbox) Charge(L *lua.LState, n int) {
	if s.IncrementInstructions(int64(n)) {
		s.exceeded.Store(true)
		L.RaiseError("%s", ErrInstructionLimit.Error())
	}
}

// Exceeded reports whether the current run hit the instruction limit.
func (s *Sandbox) Exceeded() bool {
	return s.exceeded.Load()
}
