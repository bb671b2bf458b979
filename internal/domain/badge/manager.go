package badge

import (
	"context"
	"sort"

	"github.com/habitquest/backend/pkg/xcontext"
)

type Manager struct {
	// Written only at initialization, readonly afterwards, so no lock.
	scanners map[string]Scanner
}

func NewManager(scanners ...Scanner) *Manager {
	manager := &Manager{scanners: make(map[string]Scanner)}
	for _, s := range scanners {
		manager.scanners[s.Name()] = s
	}

	return manager
}

func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.scanners))
	for name := range m.scanners {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Evaluate runs a single named rule. Unknown rule names evaluate to false
// rather than failing: rules run in UI-reactive paths where an error would
// take down rendering.
func (m *Manager) Evaluate(ctx context.Context, name string, state State) bool {
	scanner, ok := m.scanners[name]
	if !ok {
		xcontext.Logger(ctx).Debugf("Not found badge rule %s", name)
		return false
	}

	return scanner.Evaluate(state)
}

// Earned scans every registered rule and returns the earned badge names in
// deterministic order.
func (m *Manager) Earned(ctx context.Context, state State) []string {
	earned := []string{}
	for _, name := range m.Names() {
		if m.scanners[name].Evaluate(state) {
			earned = append(earned, name)
		}
	}

	return earned
}
