package model

import (
	"inquisitive/config"
)

// Model holds the core application data shared by the TUI and CLI
type Model struct {
	// Core dependencies
	Config   *config.Config
	Provider Provider

	// Application data
	Session *Session

	// Runtime state (not UI)
	Quitting bool

	// Application metadata
	Version string
}

// NewModel creates a Model with a fresh empty session
func NewModel(cfg *config.Config, p Provider, sink NotificationSink, version string) *Model {
	m := &Model{
		Config:   cfg,
		Provider: p,
		Session:  NewSession(p, cfg.Preamble(), sink),
		Version:  version,
	}

	if config.DebugLog != nil {
		config.DebugLog.Printf("[Model] NewModel: session=%s provider=%s model=%s",
			m.Session.ID, p.Name(), p.GetModel())
	}

	return m
}
