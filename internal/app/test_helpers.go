package app

import (
	"os"
	"testing"

	"github.com/specialistvlad/formtree/internal/config"
	"github.com/specialistvlad/formtree/internal/hcl_adapter"
	"github.com/specialistvlad/formtree/internal/testutil"
	"github.com/stretchr/testify/require"
)

// SetupAppTest writes files to a temporary project directory and creates an
// app for it. The returned buffers capture the results and the logs.
func SetupAppTest(t *testing.T, files map[string]string, appConfig *Config) (*App, *testutil.SafeBuffer, *testutil.SafeBuffer) {
	t.Helper()

	dir := testutil.WriteFiles(t, files)
	appConfig.ProjectPath = dir
	appConfig.LogLevel = "debug"
	cfg, err := NewConfig(*appConfig)
	require.NoError(t, err)
	*appConfig = *cfg

	out, logs := &testutil.SafeBuffer{}, &testutil.SafeBuffer{}
	var loader config.Loader = hcl_adapter.NewLoader()
	testApp, err := NewApp(out, logs, appConfig, loader)
	require.NoError(t, err)

	t.Cleanup(func() {
		if os.Getenv("FORMTREE_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})

	return testApp, out, logs
}
