package domain

import (
	"regexp"
	"strings"
)

// runtimeDeps maps recognized runtime managers to the OS-level development
// packages they need beyond themselves. The archives do not express these
// as formal dependencies, so subtraction re-adds them. "{v}" expands to the
// version captured from the manager name.
var runtimeDeps = []struct {
	pattern  *regexp.Regexp
	packages []string
}{
	{regexp.MustCompile(`^python(\d+(?:\.\d+)?)$`), []string{"python{v}", "python{v}-dev", "python", "python-devel"}},
	{regexp.MustCompile(`^ruby(\d+\.\d+(?:\.\d+)?)$`), []string{"ruby{v}-dev"}},
	{regexp.MustCompile(`^rubygems(\d+\.\d+(?:\.\d+)?)$`), []string{"ruby{v}", "ruby{v}-dev", "ruby", "ruby-devel"}},
}

// Subtract returns a new blueprint containing what is in b but absent from
// base, so a derived blueprint stays free of its base image's contents.
// Neither operand is mutated. Package removal takes three passes: version
// removal, fixed-point pruning of emptied managers, and re-addition of the
// development packages implied by recognized runtime managers.
func (b *Blueprint) Subtract(base *Blueprint) *Blueprint {
	result := b.Clone()
	result.managers = nil

	// Keep files whose content or metadata differ; drop identical entries.
	for pathname, attrs := range b.Files {
		if baseAttrs, ok := base.Files[pathname]; ok && baseAttrs == attrs {
			delete(result.Files, pathname)
		}
	}

	b.subtractPackages(base, result)

	// Keep source tarballs whose filename (content fingerprint) differs.
	for dirname, filename := range b.Sources {
		if base.Sources[dirname] == filename {
			delete(result.Sources, dirname)
		}
	}

	return result
}

func (b *Blueprint) subtractPackages(base *Blueprint, result *Blueprint) {
	// Pass 1: remove every version base records, except for packages that
	// are themselves managers still present in the result; the pruning pass
	// owns those.
	base.Walk(WalkConfig{
		Package: func(manager Manager, pkg, version string) {
			if _, isManager := result.Packages[pkg]; isManager {
				return
			}
			if pkg == manager.Name {
				return
			}
			packages, ok := result.Packages[manager.Name]
			if !ok {
				return
			}
			versions, ok := packages[pkg]
			if !ok {
				return
			}
			versions.Remove(version)
			if len(versions) == 0 {
				delete(packages, pkg)
			}
		},
	})

	// Pass 2: prune managers that no longer manage any package, both as a
	// top-level manager and as a package of their parent. Pruning a
	// grandchild can empty its parent, so repeat until the manager count
	// stops shrinking; every iteration strictly removes entries, so the
	// loop terminates.
	parents := b.Managers()
	for {
		before := len(result.Packages)
		base.Walk(WalkConfig{
			Package: func(_ Manager, pkg, _ string) {
				packages, ok := result.Packages[pkg]
				if !ok || len(packages) != 0 {
					return
				}
				delete(result.Packages, pkg)
				if parent, ok := parents[pkg]; ok && parent != "" {
					delete(result.Packages[parent], pkg)
				}
			},
		})
		if len(result.Packages) == before {
			break
		}
	}

	// Pass 3: recognized runtime managers that survived need their OS-level
	// development packages back. Only versions b already recorded are
	// re-added; a version number is never invented.
	base.Walk(WalkConfig{
		AfterPackages: func(manager Manager) {
			if _, ok := result.Packages[manager.Name]; !ok {
				return
			}
			readdRuntimeDeps(b, result, manager.Name)
		},
	})

	// Normalize: a manager entry with zero packages serializes as noise.
	for manager, packages := range result.Packages {
		if len(packages) == 0 {
			delete(result.Packages, manager)
		}
	}
}

func readdRuntimeDeps(origin, result *Blueprint, managerName string) {
	for _, dep := range runtimeDeps {
		match := dep.pattern.FindStringSubmatch(managerName)
		if match == nil {
			continue
		}
		for _, template := range dep.packages {
			pkg := strings.ReplaceAll(template, "{v}", match[1])
			for _, root := range ManagerRoots {
				versions, ok := origin.Packages[root][pkg]
				if !ok {
					continue
				}
				packages, ok := result.Packages[root]
				if !ok {
					packages = make(map[string]Set)
					result.Packages[root] = packages
				}
				packages[pkg] = versions.Clone()
			}
		}
	}
}
