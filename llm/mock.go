package llm

import "context"

// Mock is a deterministic Client for tests and offline runs.
// Respond is invoked per call when set; otherwise Response/Err are returned.
type Mock struct {
	Respond  func(prompt string, temperature float64) (string, error)
	Response string
	Err      error
	Calls    []string
}

// Complete records the prompt and returns the configured response
func (m *Mock) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	m.Calls = append(m.Calls, prompt)
	if m.Respond != nil {
		return m.Respond(prompt, temperature)
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}
