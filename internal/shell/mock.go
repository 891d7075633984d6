package shell

import "context"

// MockExecutor implements [Executor] for tests.
//
// Results are looked up by command string; commands without an entry return
// DefaultResult. When Err is set, Run returns it for every command.
type MockExecutor struct {
	Results       map[string]Result
	DefaultResult Result
	Err           error

	// Commands records every command passed to Run, in order.
	Commands []string
}

// Run records command and returns the scripted result.
func (m *MockExecutor) Run(ctx context.Context, command string) (Result, error) {
	m.Commands = append(m.Commands, command)
	if m.Err != nil {
		return Result{}, m.Err
	}
	if res, ok := m.Results[command]; ok {
		return res, nil
	}
	return m.DefaultResult, nil
}
