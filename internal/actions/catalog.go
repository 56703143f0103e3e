// Package actions exposes the typed GitHub operations as a named action
// catalog. Each action carries metadata describing its contract (name,
// description, signature, argument list) plus a handler that decodes JSON
// arguments into the typed layer. The catalog is what agent tooling and the
// REST surface program against.
package actions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Catalog errors
var (
	ErrUnknownAction    = errors.New("unknown action")
	ErrDuplicateAction  = errors.New("action already registered")
	ErrInvalidArguments = errors.New("invalid action arguments")
)

// HandlerFunc executes an action with raw JSON arguments and returns its
// typed result.
type HandlerFunc func(ctx context.Context, args json.RawMessage) (any, error)

// Definition describes one action in the catalog. The metadata fields are
// for humans and interface-generation tooling; Handler is the executable
// contract.
type Definition struct {
	Name        string      `json:"name"`
	SystemType  string      `json:"system_type"`
	Description string      `json:"description"`
	Signature   string      `json:"signature"`
	Arguments   []string    `json:"arguments"`
	Handler     HandlerFunc `json:"-"`
}

// Registry holds the action catalog. It is populated once at startup and
// read-only afterwards, so concurrent Invoke calls are safe.
type Registry struct {
	defs   map[string]Definition
	order  []string
	logger *zap.Logger
}

// NewRegistry creates an empty action registry.
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		defs:   make(map[string]Definition),
		logger: logger,
	}
}

// Register adds an action definition to the catalog.
func (r *Registry) Register(def Definition) error {
	if def.Name == "" || def.Handler == nil {
		return fmt.Errorf("%w: definition needs a name and a handler", ErrInvalidArguments)
	}
	if _, exists := r.defs[def.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateAction, def.Name)
	}

	r.defs[def.Name] = def
	r.order = append(r.order, def.Name)
	return nil
}

// List returns all definitions in registration order.
func (r *Registry) List() []Definition {
	defs := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.defs[name])
	}
	return defs
}

// Get returns a single definition by name.
func (r *Registry) Get(name string) (Definition, bool) {
	def, ok := r.defs[name]
	return def, ok
}

// Invoke runs the named action with the given JSON arguments.
func (r *Registry) Invoke(ctx context.Context, name string, args json.RawMessage) (any, error) {
	def, ok := r.defs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAction, name)
	}

	result, err := def.Handler(ctx, args)
	if err != nil {
		r.logger.Warn("action failed",
			zap.String("action", name),
			zap.Error(err),
		)
		return nil, err
	}

	r.logger.Info("action completed", zap.String("action", name))
	return result, nil
}
