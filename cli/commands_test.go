package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Grupp-8-TSEA56-2022/control-center/params"
)

func writeFile(t *testing.T, name string, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

const cliTestMap = `{"nodes": [
	{"name": "A", "edges": [{"to": "B", "road": "ab", "turn": "forward"}]},
	{"name": "B", "edges": [{"to": "A", "road": "ba", "turn": "left"}]}
]}`

func TestRouteCommand(t *testing.T) {
	mapPath := writeFile(t, "map.json", cliTestMap)

	assert.NoError(t, route(mapPath, "A", "B"))
	assert.Error(t, route(mapPath, "A", ""))
	assert.Error(t, route(mapPath, "A", "Z"))
	assert.Error(t, route(filepath.Join(t.TempDir(), "missing.json"), "A", "B"))
}

func TestScenarioCommand(t *testing.T) {
	path := writeFile(t, "drive.yaml", "name: x\nframes:\n  - stop: 400\n")

	assert.NoError(t, checkScenario(path))
	assert.Error(t, checkScenario(""))
	assert.Error(t, checkScenario(filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestSettingsCommand(t *testing.T) {
	oldPath := params.ParamsPath
	oldSettings := params.CONTROL_SETTINGS
	params.ParamsPath = filepath.Join(t.TempDir(), "d")
	params.CONTROL_SETTINGS = params.ParamPath("ControlSettings")
	t.Cleanup(func() {
		params.ParamsPath = oldPath
		params.CONTROL_SETTINGS = oldSettings
	})

	// Nothing saved yet.
	assert.Error(t, settingsCommand(false, false))

	require.NoError(t, settingsCommand(true, false))
	assert.NoError(t, settingsCommand(false, false))
}

func TestMissionCommandNeedsStartAndStop(t *testing.T) {
	assert.Error(t, mission("http://127.0.0.1:1", "", []string{"A"}))
}

func TestInstructionCommandNeedsKind(t *testing.T) {
	assert.Error(t, instruction("http://127.0.0.1:1", "", ""))
}
