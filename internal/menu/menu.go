// Package menu builds and serves the hierarchical menu tree derived from
// the backend's flat menu item list. The service is constructed once and
// passed by reference; every Initialize call rebuilds the forest from
// scratch, so the same input list always yields the same tree.
package menu

import (
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"salesdesk/internal/types"
)

// Node is one menu entry placed in the forest. Depth is 0 for roots and
// parent depth + 1 below.
type Node struct {
	types.MenuItem
	Depth    int
	Children []*Node
}

// Service holds the built menu forest. Safe for concurrent readers; the
// Initialize/Clear writers take the exclusive lock.
type Service struct {
	mu    sync.RWMutex
	log   *zap.Logger
	roots []*Node
	byID  map[string]*Node
	count int
}

// New creates an empty menu service.
func New(log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{log: log, byID: make(map[string]*Node)}
}

// Initialize rebuilds the forest from a flat item list, replacing any
// previous tree wholesale. Items whose trimmed parent id is empty become
// roots, as do items referencing a parent that is not in the list (the
// backend occasionally ships orphans and hiding them would lose menu
// entries). Items trapped in a parent cycle are unreachable from any root
// and are dropped; every non-cyclic item appears in the forest exactly
// once. Sibling groups at every level are ordered by SortOrder ascending,
// stably, so repeated builds from the same input are deterministic.
func (s *Service) Initialize(items []types.MenuItem) {
	nodes := make(map[string]*Node, len(items))
	order := make([]*Node, 0, len(items))
	for _, item := range items {
		if _, dup := nodes[item.ID]; dup {
			s.log.Debug("duplicate menu item id, keeping last", zap.String("id", item.ID))
			// Last write wins, matching the text dictionary contract.
			for i, n := range order {
				if n.ID == item.ID {
					order = append(order[:i], order[i+1:]...)
					break
				}
			}
		}
		n := &Node{MenuItem: item}
		nodes[item.ID] = n
		order = append(order, n)
	}

	var roots []*Node
	for _, n := range order {
		parentID := strings.TrimSpace(n.ParentID)
		if parentID == "" {
			roots = append(roots, n)
			continue
		}
		parent, ok := nodes[parentID]
		if !ok || parent == n {
			s.log.Debug("menu item references unknown parent, promoting to root",
				zap.String("id", n.ID), zap.String("parent", parentID))
			roots = append(roots, n)
			continue
		}
		parent.Children = append(parent.Children, n)
	}

	// Depth assignment doubles as the reachability pass: anything not
	// visited from a root sits in a parent cycle.
	count := 0
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		n.Depth = depth
		count++
		sortSiblings(n.Children)
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	sortSiblings(roots)
	for _, r := range roots {
		walk(r, 0)
	}
	if dropped := len(order) - count; dropped > 0 {
		s.log.Warn("dropped menu items trapped in a parent cycle", zap.Int("count", dropped))
	}

	byID := make(map[string]*Node, count)
	for _, r := range roots {
		indexNodes(byID, r)
	}

	s.mu.Lock()
	s.roots = roots
	s.byID = byID
	s.count = count
	s.mu.Unlock()

	s.log.Info("menu tree rebuilt", zap.Int("items", count), zap.Int("roots", len(roots)))
}

func sortSiblings(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].SortOrder < nodes[j].SortOrder
	})
}

func indexNodes(byID map[string]*Node, n *Node) {
	byID[n.ID] = n
	for _, c := range n.Children {
		indexNodes(byID, c)
	}
}

// Clear drops the forest.
func (s *Service) Clear() {
	s.mu.Lock()
	s.roots = nil
	s.byID = make(map[string]*Node)
	s.count = 0
	s.mu.Unlock()
}

// Roots returns the top-level nodes in sibling order.
func (s *Service) Roots() []*Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roots
}

// Find returns the node with the given id, or nil.
func (s *Service) Find(id string) *Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byID[id]
}

// Count returns the number of items placed in the forest.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}

// Items returns the forest flattened in render order (depth-first,
// siblings by sort order). Useful for list-shaped consumers.
func (s *Service) Items() []*Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		out = append(out, n)
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, r := range s.roots {
		walk(r)
	}
	return out
}
