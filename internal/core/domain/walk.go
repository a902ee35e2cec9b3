package domain

import "sort"

// ContentFunc lazily returns the stored bytes of a source tarball.
type ContentFunc func() ([]byte, error)

// WalkConfig names the callbacks a walk consumer supplies. Every field is
// optional; a nil callback is skipped. Consumers implement only what they
// need: the subtraction algorithm supplies Package and AfterPackages, a
// shell generator supplies most of them.
type WalkConfig struct {
	BeforeSources func()
	Source        func(dirname, filename string, content ContentFunc)
	AfterSources  func()

	BeforeFiles func()
	File        func(pathname string, attrs FileAttrs)
	AfterFiles  func()

	BeforePackages func(manager Manager)
	Package        func(manager Manager, pkg, version string)
	AfterPackages  func(manager Manager)

	BeforeServices func(manager string)
	Service        func(manager, service string)
	AfterServices  func(manager string)

	ServiceFile    func(manager, service, pathname string)
	ServicePackage func(manager, service, packageManager, pkg string)
	ServiceSource  func(manager, service, dirname string)
}

// Walk traverses the whole blueprint in fixed order: sources, files,
// packages, services. Services come last so that consumers emitting service
// definitions can assume their dependencies were already seen.
func (b *Blueprint) Walk(cfg WalkConfig) {
	b.WalkSources(cfg)
	b.WalkFiles(cfg)
	b.WalkPackages(cfg)
	b.WalkServices(cfg)
}

// WalkSources visits source tarballs in sorted dirname order. The content
// func reads the tarball's bytes from the attached content source.
func (b *Blueprint) WalkSources(cfg WalkConfig) {
	if cfg.BeforeSources != nil {
		cfg.BeforeSources()
	}
	if cfg.Source != nil {
		for _, dirname := range sortedKeys(b.Sources) {
			filename := b.Sources[dirname]
			cfg.Source(dirname, filename, b.contentFunc(filename))
		}
	}
	if cfg.AfterSources != nil {
		cfg.AfterSources()
	}
}

func (b *Blueprint) contentFunc(filename string) ContentFunc {
	return func() ([]byte, error) {
		if b.source == nil {
			return nil, ErrNoContentSource
		}
		return b.source.Content(filename)
	}
}

// WalkFiles visits files in sorted pathname order.
func (b *Blueprint) WalkFiles(cfg WalkConfig) {
	if cfg.BeforeFiles != nil {
		cfg.BeforeFiles()
	}
	if cfg.File != nil {
		for _, pathname := range sortedKeys(b.Files) {
			cfg.File(pathname, b.Files[pathname])
		}
	}
	if cfg.AfterFiles != nil {
		cfg.AfterFiles()
	}
}

// WalkPackages recursively visits the package hierarchy starting from the
// system managers. For each manager AfterPackages fires before any child
// manager is descended into: a manager must be installed before the
// packages it hosts can be acted on. Each manager is visited at most once
// per walk.
func (b *Blueprint) WalkPackages(cfg WalkConfig) {
	visited := make(map[string]bool)
	for _, root := range ManagerRoots {
		b.walkManager(root, cfg, visited)
	}
}

func (b *Blueprint) walkManager(name string, cfg WalkConfig, visited map[string]bool) {
	if visited[name] {
		return
	}
	visited[name] = true

	manager := newManager(name, b.Packages[name])
	if cfg.BeforePackages != nil {
		cfg.BeforePackages(manager)
	}

	// Note which packages are themselves managers so they can be recursed
	// into after this manager's callbacks complete.
	var children []string
	for _, pkg := range manager.PackageNames() {
		for _, version := range manager.Versions(pkg).Sorted() {
			if cfg.Package != nil {
				cfg.Package(manager, pkg, version)
			}
		}
		if pkg != name {
			if _, ok := b.Packages[pkg]; ok {
				children = append(children, pkg)
			}
		}
	}

	if cfg.AfterPackages != nil {
		cfg.AfterPackages(manager)
	}

	for _, child := range children {
		b.walkManager(child, cfg, visited)
	}
}

// WalkServices visits service managers and their services in sorted order.
// After the Service callback each dependency kind is walked through its
// nested callback. Dependencies are visited in sorted order, but that order
// carries no meaning; they are sets.
func (b *Blueprint) WalkServices(cfg WalkConfig) {
	for _, manager := range sortedKeys(b.Services) {
		b.walkServiceManager(manager, cfg)
	}
}

func (b *Blueprint) walkServiceManager(manager string, cfg WalkConfig) {
	if cfg.BeforeServices != nil {
		cfg.BeforeServices(manager)
	}

	services := b.Services[manager]
	for _, service := range sortedKeys(services) {
		if cfg.Service != nil {
			cfg.Service(manager, service)
		}
		deps := services[service]
		b.walkServiceFiles(manager, service, deps, cfg)
		b.walkServicePackages(manager, service, deps, cfg)
		b.walkServiceSources(manager, service, deps, cfg)
	}

	if cfg.AfterServices != nil {
		cfg.AfterServices(manager)
	}
}

func (b *Blueprint) walkServiceFiles(manager, service string, deps *ServiceDeps, cfg WalkConfig) {
	if cfg.ServiceFile == nil || deps.Files == nil {
		return
	}
	for _, pathname := range deps.Files.Sorted() {
		cfg.ServiceFile(manager, service, pathname)
	}
}

func (b *Blueprint) walkServicePackages(manager, service string, deps *ServiceDeps, cfg WalkConfig) {
	if cfg.ServicePackage == nil || deps.Packages == nil {
		return
	}
	for _, packageManager := range sortedKeys(deps.Packages) {
		for _, pkg := range deps.Packages[packageManager].Sorted() {
			cfg.ServicePackage(manager, service, packageManager, pkg)
		}
	}
}

func (b *Blueprint) walkServiceSources(manager, service string, deps *ServiceDeps, cfg WalkConfig) {
	if cfg.ServiceSource == nil || deps.Sources == nil {
		return
	}
	for _, dirname := range deps.Sources.Sorted() {
		cfg.ServiceSource(manager, service, dirname)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
