// Package domain holds the blueprint data model: the captured state of a
// machine's installed software, the walk engine that traverses it, and the
// subtraction algorithm that removes a base blueprint's contents from a
// derived one.
package domain

import (
	"regexp"

	"go.trai.ch/zerr"
)

// Disclaimer is prepended by code generators to everything they emit.
const Disclaimer = "#\n# Automatically generated by stencil. Edit at your own risk.\n#\n"

// invalidNameRe matches characters that are not allowed in blueprint names.
// Names become branch references in the store, so path separators and
// whitespace are rejected.
var invalidNameRe = regexp.MustCompile(`[/ \t\r\n]`)

// ValidateName checks a blueprint name for characters that cannot appear in
// a branch reference. Git rejects "." and ".." as branch names and so do we,
// since they would resolve to the reference directory itself or its parent.
// The empty name is valid; committing resolves it.
func ValidateName(name string) error {
	if name == "." || name == ".." {
		return zerr.With(ErrInvalidName, "name", name)
	}
	if invalidNameRe.MatchString(name) {
		return zerr.With(ErrInvalidName, "name", name)
	}
	return nil
}

// FileAttrs records the captured metadata of a single file. Content holds
// either inline content or a digest reference depending on Encoding. All
// fields are strings so two records compare with ==. Fields are declared in
// key order so the canonical form serializes them sorted.
type FileAttrs struct {
	Content  string `json:"content,omitempty"`
	Encoding string `json:"encoding,omitempty"`
	Group    string `json:"group,omitempty"`
	Mode     string `json:"mode,omitempty"`
	Owner    string `json:"owner,omitempty"`
	Target   string `json:"target,omitempty"`
}

// ServiceDeps records what a service depends on. A service with no recorded
// dependencies is still a valid entry; its existence is the fact being
// captured, so empty collections are never materialized.
type ServiceDeps struct {
	Files    Set            `json:"files,omitempty"`
	Packages map[string]Set `json:"packages,omitempty"`
	Sources  Set            `json:"sources,omitempty"`
}

// Clone returns an independent copy of the dependency record.
func (d *ServiceDeps) Clone() *ServiceDeps {
	c := &ServiceDeps{}
	if d.Files != nil {
		c.Files = d.Files.Clone()
	}
	if d.Packages != nil {
		c.Packages = make(map[string]Set, len(d.Packages))
		for manager, packages := range d.Packages {
			c.Packages[manager] = packages.Clone()
		}
	}
	if d.Sources != nil {
		c.Sources = d.Sources.Clone()
	}
	return c
}

// ContentSource resolves a stored file's bytes by name. Blueprints loaded
// from a store carry one bound to their commit tree so that walk consumers
// can read source tarball contents lazily.
type ContentSource interface {
	Content(filename string) ([]byte, error)
}

// Blueprint is a named snapshot of captured system state. Container fields
// are always initialized; empty containers are omitted from the canonical
// serialized form.
type Blueprint struct {
	// Arch identifies the CPU architecture; empty means not recorded.
	Arch string

	// Files maps absolute pathnames to captured file metadata.
	Files map[string]FileAttrs

	// Packages maps manager name to package name to the set of installed
	// versions. A package whose name is itself a manager key establishes a
	// manager hierarchy edge.
	Packages map[string]map[string]Set

	// Services maps service manager name to service name to dependencies.
	Services map[string]map[string]*ServiceDeps

	// Sources maps the directory a tarball was unpacked into to the tarball
	// filename. The filename embeds a content fingerprint.
	Sources map[string]string

	name     string
	commitID string
	source   ContentSource
	managers map[string]string
}

// New constructs an empty blueprint with the given name.
func New(name string) (*Blueprint, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	return &Blueprint{
		name:     name,
		Files:    make(map[string]FileAttrs),
		Packages: make(map[string]map[string]Set),
		Services: make(map[string]map[string]*ServiceDeps),
		Sources:  make(map[string]string),
	}, nil
}

// Name returns the blueprint's name; empty for anonymous blueprints.
func (b *Blueprint) Name() string {
	return b.name
}

// Rename validates and sets the blueprint's name.
func (b *Blueprint) Rename(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	b.name = name
	return nil
}

// CommitID returns the commit this blueprint was loaded from or committed
// as; empty for blueprints that never touched a store.
func (b *Blueprint) CommitID() string {
	return b.commitID
}

// Bind attaches the commit id and content source of the stored revision this
// blueprint corresponds to. Called by the store on load and commit.
func (b *Blueprint) Bind(commitID string, source ContentSource) {
	b.commitID = commitID
	b.source = source
}

// AddFile upserts file metadata for a pathname.
func (b *Blueprint) AddFile(pathname string, attrs FileAttrs) {
	b.Files[pathname] = attrs
}

// AddPackage inserts a version into the package's version set. Idempotent.
func (b *Blueprint) AddPackage(manager, pkg, version string) {
	packages, ok := b.Packages[manager]
	if !ok {
		packages = make(map[string]Set)
		b.Packages[manager] = packages
	}
	versions, ok := packages[pkg]
	if !ok {
		versions = NewSet()
		packages[pkg] = versions
	}
	versions.Add(version)
}

// AddService ensures a service entry exists with no dependencies. Idempotent.
func (b *Blueprint) AddService(manager, service string) *ServiceDeps {
	services, ok := b.Services[manager]
	if !ok {
		services = make(map[string]*ServiceDeps)
		b.Services[manager] = services
	}
	deps, ok := services[service]
	if !ok {
		deps = &ServiceDeps{}
		services[service] = deps
	}
	return deps
}

// AddServiceFile adds file dependencies to a service. Calling it with no
// pathnames is a no-op and never creates an empty collection.
func (b *Blueprint) AddServiceFile(manager, service string, pathnames ...string) {
	if len(pathnames) == 0 {
		return
	}
	deps := b.AddService(manager, service)
	if deps.Files == nil {
		deps.Files = NewSet()
	}
	for _, pathname := range pathnames {
		deps.Files.Add(pathname)
	}
}

// AddServicePackage adds package dependencies to a service. Calling it with
// no packages is a no-op.
func (b *Blueprint) AddServicePackage(manager, service, packageManager string, packages ...string) {
	if len(packages) == 0 {
		return
	}
	deps := b.AddService(manager, service)
	if deps.Packages == nil {
		deps.Packages = make(map[string]Set)
	}
	versions, ok := deps.Packages[packageManager]
	if !ok {
		versions = NewSet()
		deps.Packages[packageManager] = versions
	}
	for _, pkg := range packages {
		versions.Add(pkg)
	}
}

// AddServiceSource adds source tarball dependencies to a service. Calling it
// with no dirnames is a no-op.
func (b *Blueprint) AddServiceSource(manager, service string, dirnames ...string) {
	if len(dirnames) == 0 {
		return
	}
	deps := b.AddService(manager, service)
	if deps.Sources == nil {
		deps.Sources = NewSet()
	}
	for _, dirname := range dirnames {
		deps.Sources.Add(dirname)
	}
}

// AddSource upserts a source tarball resource. Last write wins for a dirname.
func (b *Blueprint) AddSource(dirname, filename string) {
	b.Sources[dirname] = filename
}

// Clone returns a deep copy of the blueprint. The copy shares the content
// source and commit binding but no mutable state.
func (b *Blueprint) Clone() *Blueprint {
	c := &Blueprint{
		Arch:     b.Arch,
		Files:    make(map[string]FileAttrs, len(b.Files)),
		Packages: make(map[string]map[string]Set, len(b.Packages)),
		Services: make(map[string]map[string]*ServiceDeps, len(b.Services)),
		Sources:  make(map[string]string, len(b.Sources)),
		name:     b.name,
		commitID: b.commitID,
		source:   b.source,
	}
	for pathname, attrs := range b.Files {
		c.Files[pathname] = attrs
	}
	for manager, packages := range b.Packages {
		cp := make(map[string]Set, len(packages))
		for pkg, versions := range packages {
			cp[pkg] = versions.Clone()
		}
		c.Packages[manager] = cp
	}
	for manager, services := range b.Services {
		cs := make(map[string]*ServiceDeps, len(services))
		for service, deps := range services {
			cs[service] = deps.Clone()
		}
		c.Services[manager] = cs
	}
	for dirname, filename := range b.Sources {
		c.Sources[dirname] = filename
	}
	return c
}
