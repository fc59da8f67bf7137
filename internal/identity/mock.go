package identity

import "context"

// MockFetcher implements Fetcher for testing.
type MockFetcher struct {
	SourceName string
	Value      string
	Err        error
	Calls      int
}

// NewMockFetcher creates a MockFetcher returning the given value.
func NewMockFetcher(source, value string) *MockFetcher {
	return &MockFetcher{
		SourceName: source,
		Value:      value,
	}
}

func (m *MockFetcher) Source() string {
	return m.SourceName
}

func (m *MockFetcher) FetchRawIdentifier(_ context.Context) (string, error) {
	m.Calls++
	if m.Err != nil {
		return "", m.Err
	}
	return m.Value, nil
}

// StaticRunner returns a CommandRunner that replies with canned output per command name.
// Unknown commands fail with ErrComponentUnavailable.
func StaticRunner(outputs map[string]string) CommandRunner {
	return func(_ context.Context, name string, _ ...string) ([]byte, error) {
		out, ok := outputs[name]
		if !ok {
			return nil, unavailable("command %s not found", name)
		}
		return []byte(out), nil
	}
}
