package barter

import (
	"fmt"
	"strings"
)

// Query modifiers, given after a "?" in the query path. Without one a
// query looks up a single key; with "prefix" it returns every model whose
// key starts with the query data.
const (
	KeyQueryMod    = ""
	PrefixQueryMod = "prefix"
)

// Model is a single key and value returned by a query.
type Model struct {
	Key   []byte
	Value []byte
}

func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// QueryHandler answers queries sent to one path, such as "/escrows" or
// "/escrows/maker".
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRegister installs the query handlers of an extension.
type QueryRegister func(QueryRouter)

// QueryRouter maps query paths to their handlers. Paths are registered
// once, while the application is assembled.
type QueryRouter struct {
	routes map[string]QueryHandler
}

func NewQueryRouter() QueryRouter {
	return QueryRouter{routes: make(map[string]QueryHandler)}
}

func (r QueryRouter) RegisterAll(registers ...QueryRegister) {
	for _, register := range registers {
		register(r)
	}
}

// Register panics if path is taken, does not start with a slash, or
// contains a query modifier.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if !strings.HasPrefix(path, "/") || strings.Contains(path, "?") {
		panic(fmt.Sprintf("invalid query path %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("query path %q already registered", path))
	}
	r.routes[path] = h
}

// Handler returns nil if no handler serves path.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.routes[path]
}
