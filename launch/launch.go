// Package launch provides an abstraction over spawn-and-forget process
// launching for testability. The shell starts external programs (editor,
// file manager) without observing any result beyond whether the spawn
// itself succeeded. Production code uses OSSpawner while tests inject
// MockSpawner.
package launch

import (
	"os/exec"
	"sync"
)

// Spawner starts a program and forgets about it.
type Spawner interface {
	// Spawn starts name with args detached from the shell process. It
	// returns an error only if the process could not be started; nothing
	// about the process's outcome is observed.
	Spawn(name string, args ...string) error
}

// OSSpawner launches real processes using os/exec.
type OSSpawner struct{}

// NewOSSpawner returns a new OSSpawner.
func NewOSSpawner() *OSSpawner {
	return &OSSpawner{}
}

// Spawn starts the command and releases the process handle so the child
// outlives the shell and never becomes a zombie waiting to be reaped.
func (s *OSSpawner) Spawn(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

// SpawnCall records a spawn invocation for verification.
type SpawnCall struct {
	Name string
	Args []string
}

// MockSpawner records spawn calls and optionally fails them.
type MockSpawner struct {
	mu       sync.Mutex
	calls    []SpawnCall
	spawnErr error
}

// NewMockSpawner creates a new MockSpawner.
func NewMockSpawner() *MockSpawner {
	return &MockSpawner{}
}

// SetSpawnErr makes subsequent Spawn calls fail with err.
func (s *MockSpawner) SetSpawnErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spawnErr = err
}

// Spawn records the call.
func (s *MockSpawner) Spawn(name string, args ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, SpawnCall{Name: name, Args: args})
	return s.spawnErr
}

// Calls returns all recorded spawn invocations.
func (s *MockSpawner) Calls() []SpawnCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	calls := make([]SpawnCall, len(s.calls))
	copy(calls, s.calls)
	return calls
}

// Ensure implementations satisfy the interface.
var _ Spawner = (*OSSpawner)(nil)
var _ Spawner = (*MockSpawner)(nil)
