// Package linearize implements C2, the dependency linearizer of spec §4.2:
// a Kahn's-algorithm topological sort over a single work center's orders,
// turning the predecessor relation into one valid placement order.
package linearize

import (
	"github.com/wbaizer/naologic-reflow/internal/domain"
	"github.com/wbaizer/naologic-reflow/internal/domain/reflowerr"
	"github.com/wbaizer/naologic-reflow/internal/logging"
)

// Order produces a permutation of orders such that every order appears
// after all of its predecessors. Ties among simultaneously-ready orders
// are broken by input order, per spec §4.2's reproducibility
// recommendation — the queue is a plain slice appended to in input-scan
// order, never sorted by identifier.
func Order(orders []*domain.WorkOrder, logger logging.Logger) ([]*domain.WorkOrder, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	logger = logger.With("linearize")

	byID := make(map[string]*domain.WorkOrder, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
	}

	var missing []string
	indegree := make(map[string]int, len(orders))
	successors := make(map[string][]string, len(orders))
	for _, o := range orders {
		indegree[o.ID] = 0
	}
	for _, o := range orders {
		for _, p := range o.Predecessors {
			if _, ok := byID[p]; !ok {
				missing = append(missing, p)
				continue
			}
			successors[p] = append(successors[p], o.ID)
			indegree[o.ID]++
		}
	}
	if len(missing) > 0 {
		logger.Warn("missing predecessors", "ids", missing)
		return nil, reflowerr.New(reflowerr.KindMissingPredecessor, "predecessor not found among this center's orders", missing...)
	}

	queue := make([]string, 0, len(orders))
	for _, o := range orders {
		if indegree[o.ID] == 0 {
			queue = append(queue, o.ID)
		}
	}

	result := make([]*domain.WorkOrder, 0, len(orders))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		result = append(result, byID[id])

		for _, next := range successors[id] {
			indegree[next]--
			if indegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if len(result) != len(orders) {
		var cycle []string
		for _, o := range orders {
			if indegree[o.ID] > 0 {
				cycle = append(cycle, o.ID)
			}
		}
		logger.Warn("cycle detected", "ids", cycle)
		return nil, reflowerr.New(reflowerr.KindCycle, "predecessor graph contains a cycle", cycle...)
	}
	return result, nil
}
