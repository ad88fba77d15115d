package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/contentsearch/internal/adapters/driven/config/file"
	"github.com/custodia-labs/contentsearch/internal/app"
	"github.com/custodia-labs/contentsearch/internal/core/domain"
	"github.com/custodia-labs/contentsearch/internal/core/services"
	"github.com/custodia-labs/contentsearch/internal/testutil"
)

// setupServices injects in-memory services for the duration of the test.
func setupServices(t *testing.T) {
	t.Helper()

	settings := domain.DefaultSettings()
	settings.Index.Backend = domain.IndexBackendMemory
	a, err := app.Open(context.Background(), t.TempDir(), settings)
	require.NoError(t, err)

	cfg, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)

	SetServices(&Services{
		Content:   a.Content,
		Sync:      a.Sync,
		Search:    a.Search,
		Settings:  services.NewSettingsService(cfg),
		Scheduler: a.Scheduler,
	})

	t.Cleanup(func() {
		SetServices(nil)
		_ = a.Close()
		searchJSON, searchWatch = false, false
		importNoIndex, importReplace = false, false
		countWait, countTimeout = 0, time.Minute
		runsLimit = 10
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
}

// execute runs the command tree with args and returns its combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

// writeBundle writes the shared fixture bundle to a temp file.
func writeBundle(t *testing.T) string {
	t.Helper()
	data, err := json.Marshal(testutil.Bundle())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

// importFixtures imports and indexes the fixture bundle.
func importFixtures(t *testing.T) {
	t.Helper()
	_, err := execute(t, "import", writeBundle(t))
	require.NoError(t, err)
}
