package cli

import (
	"os"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/contentsearch/internal/adapters/driving/mcp"
)

func TestVersionCmd(t *testing.T) {
	original := version
	t.Cleanup(func() { SetVersion(original) })

	tests := []struct {
		name    string
		version string
	}{
		{name: "default build", version: "dev"},
		{name: "release build", version: "v1.4.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetVersion(tt.version)

			out, err := execute(t, "version")

			require.NoError(t, err)
			assert.Contains(t, out, "contentsearch version "+tt.version)
			assert.Contains(t, out, runtime.GOOS+"/"+runtime.GOARCH)
			assert.Contains(t, out, "mcp server "+mcp.Version)
		})
	}
}

func TestVersionCmd_SkipsBootstrap(t *testing.T) {
	// Without injected services the root pre-run would open stores here.
	SetServices(nil)
	dir := t.TempDir()
	t.Cleanup(func() {
		dataDir = ""
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	_, err := execute(t, "version", "--data-dir", dir)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
