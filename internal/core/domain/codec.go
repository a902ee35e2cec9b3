package domain

import (
	"encoding/json"

	"go.trai.ch/zerr"
)

// DocumentName is the filename the canonical document is stored under in
// every commit tree.
const DocumentName = "blueprint.json"

// document is the canonical wire shape of a blueprint. Keys are omitted
// when empty so that re-serializing an unchanged blueprint produces
// byte-identical output, and with it an identical tree object.
type document struct {
	Arch     string                             `json:"arch,omitempty"`
	Files    map[string]FileAttrs               `json:"files,omitempty"`
	Packages map[string]map[string]Set          `json:"packages,omitempty"`
	Services map[string]map[string]*ServiceDeps `json:"services,omitempty"`
	Sources  map[string]string                  `json:"sources,omitempty"`
}

// MarshalCanonical returns the deterministic serialized form of the
// blueprint: sorted keys, two-space indentation, trailing newline, empty
// containers and an unset arch suppressed.
func (b *Blueprint) MarshalCanonical() ([]byte, error) {
	doc := document{
		Arch:    b.Arch,
		Sources: b.Sources,
	}

	if len(b.Files) > 0 {
		doc.Files = b.Files
	}

	// Drop packages and managers that emptied out; the invariant is that a
	// package key never exists with zero versions.
	if len(b.Packages) > 0 {
		doc.Packages = make(map[string]map[string]Set, len(b.Packages))
		for manager, packages := range b.Packages {
			kept := make(map[string]Set, len(packages))
			for pkg, versions := range packages {
				if len(versions) > 0 {
					kept[pkg] = versions
				}
			}
			if len(kept) > 0 {
				doc.Packages[manager] = kept
			}
		}
	}

	if len(b.Services) > 0 {
		doc.Services = make(map[string]map[string]*ServiceDeps, len(b.Services))
		for manager, services := range b.Services {
			if len(services) > 0 {
				doc.Services[manager] = services
			}
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, zerr.Wrap(err, ErrDocumentInvalid.Error())
	}
	return append(data, '\n'), nil
}

// UnmarshalBlueprint decodes a canonical document into a fresh anonymous
// blueprint. Absent containers come back empty, never nil.
func UnmarshalBlueprint(data []byte) (*Blueprint, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, zerr.Wrap(err, ErrDocumentInvalid.Error())
	}

	b, err := New("")
	if err != nil {
		return nil, err
	}
	b.Arch = doc.Arch
	for pathname, attrs := range doc.Files {
		b.Files[pathname] = attrs
	}
	for manager, packages := range doc.Packages {
		for pkg, versions := range packages {
			for version := range versions {
				b.AddPackage(manager, pkg, version)
			}
		}
	}
	for manager, services := range doc.Services {
		for service, deps := range services {
			entry := b.AddService(manager, service)
			if deps == nil {
				continue
			}
			if len(deps.Files) > 0 {
				entry.Files = deps.Files.Clone()
			}
			if len(deps.Packages) > 0 {
				entry.Packages = make(map[string]Set, len(deps.Packages))
				for packageManager, packages := range deps.Packages {
					entry.Packages[packageManager] = packages.Clone()
				}
			}
			if len(deps.Sources) > 0 {
				entry.Sources = deps.Sources.Clone()
			}
		}
	}
	for dirname, filename := range doc.Sources {
		b.Sources[dirname] = filename
	}
	return b, nil
}
