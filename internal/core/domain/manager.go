package domain

import "sort"

// ManagerRoots are the system package managers the package walk starts from.
// They own no parent in the manager hierarchy.
var ManagerRoots = []string{"apt", "yum"}

// Manager is a read-only view of one package manager's slice of a
// blueprint's package hierarchy. It exists to give walk callbacks an
// identity distinct from a bare name/map pair.
type Manager struct {
	Name string

	packages map[string]Set
}

func newManager(name string, packages map[string]Set) Manager {
	return Manager{Name: name, packages: packages}
}

// PackageNames returns the manager's package names in ascending order.
func (m Manager) PackageNames() []string {
	names := make([]string, 0, len(m.packages))
	for name := range m.packages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Versions returns the version set recorded for a package, or nil if the
// manager does not own it.
func (m Manager) Versions(pkg string) Set {
	return m.packages[pkg]
}

// Len returns the number of packages the manager owns in this blueprint.
func (m Manager) Len() int {
	return len(m.packages)
}

// Managers returns the manager-name to owning-manager-name map derived from
// the package hierarchy. The roots map to the empty string. The map is
// computed on first access and cached for the blueprint's lifetime; mutate
// packages before calling it.
//
// A package name that exists under two different parent managers keeps the
// parent visited last during the walk.
func (b *Blueprint) Managers() map[string]string {
	if b.managers != nil {
		return b.managers
	}
	managers := make(map[string]string)
	for _, root := range ManagerRoots {
		managers[root] = ""
	}
	b.WalkPackages(WalkConfig{
		Package: func(manager Manager, pkg, _ string) {
			if _, ok := b.Packages[pkg]; ok && manager.Name != pkg {
				managers[pkg] = manager.Name
			}
		},
	})
	b.managers = managers
	return managers
}
