package manifest

import (
	"fmt"
	"strings"
)

// TopoOrder returns every module reachable from root in dependency order
// (a module's dependencies precede it): a depth-first search over deps
// (module path -> its direct imports) that appends a module in
// post-order, with an in-path set for cycle detection instead of a
// visited-only check.
func TopoOrder(root string, deps map[string][]string) ([]string, error) {
	visited := make(map[string]bool)
	inPath := make(map[string]bool)
	var sorted []string
	var path []string

	var visit func(module string) error
	visit = func(module string) error {
		if visited[module] {
			return nil
		}
		if inPath[module] {
			cycle := append(append([]string(nil), path...), module)
			return &CycleError{Cycle: cycle}
		}

		inPath[module] = true
		path = append(path, module)

		for _, dep := range deps[module] {
			if err := visit(dep); err != nil {
				return err
			}
		}

		inPath[module] = false
		path = path[:len(path)-1]
		visited[module] = true
		sorted = append(sorted, module)
		return nil
	}

	if err := visit(root); err != nil {
		return nil, err
	}
	return sorted, nil
}

// CycleError reports a dependency cycle found while computing a
// topological order.
type CycleError struct {
	Cycle []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("manifest: dependency cycle detected: %s", strings.Join(e.Cycle, " -> "))
}
