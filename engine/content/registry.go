package content

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/spaghettifunk/zippy/engine/core"
)

// Factory turns a record into a live object. Factories capture whatever
// context they need (canvas, physics world) when registered.
type Factory[T any] func(rec Record) (T, error)

// Registry maps a record tag to the factory that builds it.
type Registry[T any] struct {
	factories map[string]Factory[T]
}

func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{factories: make(map[string]Factory[T])}
}

// Register binds tag to f, replacing any earlier binding.
func (r *Registry[T]) Register(tag string, f Factory[T]) {
	r.factories[tag] = f
}

func (r *Registry[T]) Has(tag string) bool {
	_, ok := r.factories[tag]
	return ok
}

func (r *Registry[T]) Tags() []string {
	tags := make([]string, 0, len(r.factories))
	for t := range r.factories {
		tags = append(tags, t)
	}
	slices.Sort(tags)
	return tags
}

func (r *Registry[T]) Create(rec Record) (T, error) {
	f, ok := r.factories[rec.Tag]
	if !ok {
		var zero T
		return zero, fmt.Errorf("line %d: tag `%s`: %w", rec.Line, rec.Tag, core.ErrUnknownType)
	}
	return f(rec)
}
