package rawhttp

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
)

// Reverser keeps track of named routes and allows looking up their paths.
type Reverser struct {
	routes map[string]Route
}

// NewReverser inits the reverser.
func NewReverser() *Reverser {
	return &Reverser{make(map[string]Route)}
}

// Reverse returns the path of the named route.
func (r Reverser) Reverse(name string) (string, error) {
	route, ok := r.routes[name]
	if !ok {
		return "", fmt.Errorf("no route named: %q, got: %v", name, r.Names()) //nolint:goerr113
	}

	return route.Path, nil
}

// Names returns the registered route names in sorted order.
func (r Reverser) Names() []string {
	names := lo.Keys(r.routes)
	sort.Strings(names)

	return names
}

// Named is a convenience method that panics if naming the route fails.
func (r Reverser) Named(name string, route Route) Route {
	route, err := r.NamedRoute(name, route)
	if err != nil {
		panic("rawhttp: " + err.Error())
	}

	return route
}

// NamedRoute records route under name while returning it as well.
func (r Reverser) NamedRoute(name string, route Route) (Route, error) {
	if name == "" {
		return route, fmt.Errorf("route name must not be empty") //nolint:goerr113
	}

	if _, exists := r.routes[name]; exists {
		return route, fmt.Errorf("route with name %q already exists", name) //nolint:goerr113
	}

	r.routes[name] = route

	return route, nil
}

func (r Reverser) drop(name string) { delete(r.routes, name) }
