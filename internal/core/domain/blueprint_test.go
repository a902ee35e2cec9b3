package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/stencil/internal/core/domain"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "Simple Name", input: "small", wantErr: false},
		{name: "Dots And Dashes", input: "my-app.v2", wantErr: false},
		{name: "Empty Name Is Anonymous", input: "", wantErr: false},
		{name: "Dot Rejected", input: ".", wantErr: true},
		{name: "Dot Dot Rejected", input: "..", wantErr: true},
		{name: "Slash Rejected", input: "my/app", wantErr: true},
		{name: "Space Rejected", input: "my app", wantErr: true},
		{name: "Tab Rejected", input: "my\tapp", wantErr: true},
		{name: "Newline Rejected", input: "my\napp", wantErr: true},
		{name: "Carriage Return Rejected", input: "my\rapp", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidateName(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalidName)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNew_RejectsInvalidName(t *testing.T) {
	_, err := domain.New("no spaces")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidName)
}

func TestBlueprint_AddPackage(t *testing.T) {
	b, err := domain.New("pkgs")
	require.NoError(t, err)

	b.AddPackage("apt", "curl", "7.88.1")
	b.AddPackage("apt", "curl", "7.88.1")
	b.AddPackage("apt", "curl", "8.0.0")

	require.Contains(t, b.Packages, "apt")
	require.Contains(t, b.Packages["apt"], "curl")
	assert.Equal(t, []string{"7.88.1", "8.0.0"}, b.Packages["apt"]["curl"].Sorted())
}

func TestBlueprint_AddService(t *testing.T) {
	b, err := domain.New("svcs")
	require.NoError(t, err)

	deps := b.AddService("sysvinit", "nginx")
	require.NotNil(t, deps)

	// Registering a service twice returns the same dependency record.
	again := b.AddService("sysvinit", "nginx")
	assert.Same(t, deps, again)

	// A bare service entry carries no dependency collections.
	assert.Nil(t, deps.Files)
	assert.Nil(t, deps.Packages)
	assert.Nil(t, deps.Sources)
}

func TestBlueprint_AddServiceDeps_EmptyIsNoop(t *testing.T) {
	b, err := domain.New("svcs")
	require.NoError(t, err)

	b.AddService("sysvinit", "nginx")
	b.AddServiceFile("sysvinit", "nginx")
	b.AddServicePackage("sysvinit", "nginx", "apt")
	b.AddServiceSource("sysvinit", "nginx")

	deps := b.Services["sysvinit"]["nginx"]
	assert.Nil(t, deps.Files)
	assert.Nil(t, deps.Packages)
	assert.Nil(t, deps.Sources)
}

func TestBlueprint_AddServiceDeps(t *testing.T) {
	b, err := domain.New("svcs")
	require.NoError(t, err)

	b.AddServiceFile("sysvinit", "nginx", "/etc/nginx/nginx.conf", "/etc/nginx/mime.types")
	b.AddServicePackage("sysvinit", "nginx", "apt", "nginx", "nginx-common")
	b.AddServiceSource("sysvinit", "nginx", "/usr/local/nginx")

	deps := b.Services["sysvinit"]["nginx"]
	assert.Equal(t, []string{"/etc/nginx/mime.types", "/etc/nginx/nginx.conf"}, deps.Files.Sorted())
	assert.Equal(t, []string{"nginx", "nginx-common"}, deps.Packages["apt"].Sorted())
	assert.Equal(t, []string{"/usr/local/nginx"}, deps.Sources.Sorted())
}

func TestBlueprint_Managers(t *testing.T) {
	b, err := domain.New("hierarchy")
	require.NoError(t, err)

	b.AddPackage("apt", "ruby1.9", "1.9.3")
	b.AddPackage("apt", "rubygems1.9", "1.8.23")
	b.AddPackage("rubygems1.9", "bundler", "1.3.5")

	managers := b.Managers()
	assert.Equal(t, map[string]string{
		"apt":         "",
		"yum":         "",
		"rubygems1.9": "apt",
	}, managers)
}

func TestBlueprint_Clone(t *testing.T) {
	b, err := domain.New("orig")
	require.NoError(t, err)
	b.Arch = "amd64"
	b.AddFile("/etc/motd", domain.FileAttrs{Owner: "root", Group: "root", Mode: "0644", Content: "hi\n", Encoding: "plain"})
	b.AddPackage("apt", "curl", "7.88.1")
	b.AddServiceFile("sysvinit", "nginx", "/etc/nginx/nginx.conf")
	b.AddSource("/usr/local", "local-066d2bf4.tar")

	c := b.Clone()
	assert.Equal(t, b.Name(), c.Name())
	assert.Equal(t, b.Arch, c.Arch)
	assert.Equal(t, b.Files, c.Files)
	assert.Equal(t, b.Packages, c.Packages)
	assert.Equal(t, b.Sources, c.Sources)

	// Mutating the clone must not leak into the original.
	c.AddPackage("apt", "curl", "8.0.0")
	c.AddServiceFile("sysvinit", "nginx", "/etc/nginx/mime.types")
	delete(c.Files, "/etc/motd")

	assert.Equal(t, []string{"7.88.1"}, b.Packages["apt"]["curl"].Sorted())
	assert.Equal(t, []string{"/etc/nginx/nginx.conf"}, b.Services["sysvinit"]["nginx"].Files.Sorted())
	assert.Contains(t, b.Files, "/etc/motd")
}

func TestBlueprint_Rename(t *testing.T) {
	b, err := domain.New("")
	require.NoError(t, err)

	require.NoError(t, b.Rename("captured"))
	assert.Equal(t, "captured", b.Name())

	err = b.Rename("bad name")
	require.Error(t, err)
	assert.Equal(t, "captured", b.Name())
}
