package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/whitelink/pkg/linker"
	"github.com/agentstation/whitelink/pkg/links"
)

// Mock is an Application whose methods call the matching function field.
// Nil fields return zero values, an in-memory store and a no-op logger.
//
//	store := links.NewMemoryStore(map[string]string{"1": "Steve"})
//	mock := &application.Mock{
//	    StoreFunc: func() links.Store { return store },
//	}
//	cmd := links.NewCommand(mock)
type Mock struct {
	StoreFunc        func() links.Store
	ConsoleFunc      func() (Console, error)
	EngineFunc       func() (*linker.Engine, error)
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Store returns the mock store or an empty in-memory store.
func (m *Mock) Store() links.Store {
	if m.StoreFunc != nil {
		return m.StoreFunc()
	}
	return links.NewMemoryStore(nil)
}

// Console returns the mock console or nil.
func (m *Mock) Console() (Console, error) {
	if m.ConsoleFunc != nil {
		return m.ConsoleFunc()
	}
	return nil, nil
}

// Engine returns the mock engine, or one built from Store and Console.
func (m *Mock) Engine() (*linker.Engine, error) {
	if m.EngineFunc != nil {
		return m.EngineFunc()
	}
	console, err := m.Console()
	if err != nil {
		return nil, err
	}
	return linker.New(m.Store(), console, linker.WithLogger(m.Logger())), nil
}

// Logger returns the mock logger or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the mock format or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns the mock version or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns the mock commit or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns the mock date or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns the mock builder or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

var _ Application = (*Mock)(nil)
