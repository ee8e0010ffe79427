package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	KeyStoreType    string `json:"key_store_type"`
	RepositoryType  string `json:"repository_type"`
	Watchable       bool   `json:"watchable"`
	KeyStoreState   any    `json:"key_store,omitempty"`
	RepositoryState any    `json:"repository,omitempty"`
}

// State implements introspection.Introspectable.
// Adapters that are themselves introspectable have their state nested.
func (s *Service) State() any {
	_, watchable := s.repo.(Watchable)
	return ServiceState{
		KeyStoreType:    componentType(s.keys, "key_store"),
		RepositoryType:  componentType(s.repo, "repository"),
		Watchable:       watchable,
		KeyStoreState:   componentState(s.keys),
		RepositoryState: componentState(s.repo),
	}
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

func componentType(v any, fallback string) string {
	if comp, ok := v.(introspection.Component); ok {
		return comp.ComponentType()
	}
	return fallback
}

func componentState(v any) any {
	if in, ok := v.(introspection.Introspectable); ok {
		return in.State()
	}
	return nil
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
