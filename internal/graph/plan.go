// Package graph builds and validates the task dependency graph and derives
// the deterministic execution plan the scheduler drives.
package graph

import (
	"sort"

	"github.com/nur-run/nur/internal/nur"
	"github.com/nur-run/nur/internal/nurfile"
)

// DefaultRoot is the task requested when the caller asks for no roots at
// all.
const DefaultRoot = "default"

// Entry is one position in an execution plan.
type Entry struct {
	TaskID int
	Name   string
}

// Plan is the ordered, deduplicated task list a scheduler executes. Position
// i's task_id is i; every dependency of the task at position i appears at
// some position j < i.
type Plan []Entry

// Build validates tasks and roots, then derives the deterministic execution
// plan for the requested roots.
//
// If roots is empty, the single root DefaultRoot is used. Validation order
// matches the distilled spec: task-name validation (roots and all declared
// dependencies) happens before cycle detection, and cycle detection happens
// before any plan is returned.
func Build(tasks map[string]nurfile.Task, roots []string) (Plan, error) {
	if len(roots) == 0 {
		roots = []string{DefaultRoot}
	}

	if err := validateNames(tasks, roots); err != nil {
		return nil, err
	}
	if err := detectCycle(tasks); err != nil {
		return nil, err
	}

	return buildPlan(tasks, roots), nil
}

func validateNames(tasks map[string]nurfile.Task, roots []string) error {
	for _, root := range roots {
		if _, ok := tasks[root]; !ok {
			return &nur.NoSuchTaskError{TaskName: root}
		}
	}
	for _, task := range tasks {
		for _, dep := range task.Dependencies {
			if _, ok := tasks[dep]; !ok {
				return &nur.NoSuchTaskError{TaskName: dep}
			}
		}
	}
	return nil
}

// detectCycle walks the dependency graph with a standard three-color DFS
// (white/gray/black) so the reported cycle is the actual loop encountered,
// not just "a cycle exists somewhere".
func detectCycle(tasks map[string]nurfile.Task) error {
	const (
		white = iota
		gray
		black
	)
	color := make(map[string]int, len(tasks))

	// Iterate in sorted order so which cycle is reported (when several
	// exist) is deterministic across runs.
	names := sortedKeys(tasks)

	var path []string
	var visit func(name string) error
	visit = func(name string) error {
		switch color[name] {
		case black:
			return nil
		case gray:
			// Found the back-edge; report the cycle starting at its first
			// occurrence on the current path.
			start := 0
			for i, n := range path {
				if n == name {
					start = i
					break
				}
			}
			cycle := append(append([]string{}, path[start:]...), name)
			return &nur.TaskCycleError{Cycle: cycle}
		}

		color[name] = gray
		path = append(path, name)
		for _, dep := range tasks[name].Dependencies {
			if err := visit(dep); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		color[name] = black
		return nil
	}

	for _, name := range names {
		if color[name] == white {
			if err := visit(name); err != nil {
				return err
			}
		}
	}
	return nil
}

// buildPlan performs the depth-first post-order traversal described in
// SPEC_FULL.md §4.1: for each requested root in order, visit unvisited
// dependencies first, then append the root. Subsequent roots continue the
// same visited set so a task that is reachable from more than one requested
// root still runs exactly once.
func buildPlan(tasks map[string]nurfile.Task, roots []string) Plan {
	visited := make(map[string]bool)
	var plan Plan

	var visit func(name string)
	visit = func(name string) {
		if visited[name] {
			return
		}
		visited[name] = true
		for _, dep := range tasks[name].Dependencies {
			visit(dep)
		}
		plan = append(plan, Entry{TaskID: len(plan), Name: name})
	}

	for _, root := range roots {
		visit(root)
	}
	return plan
}

func sortedKeys(tasks map[string]nurfile.Task) []string {
	names := make([]string, 0, len(tasks))
	for name := range tasks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
