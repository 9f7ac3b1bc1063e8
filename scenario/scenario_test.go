package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleScenario = `
name: drive one road
mission: [A, B]
frames:
  - obstacle: 200
    stop: 400
    speed: 0
  - obstacle: 200
    stop: 400
    speed: 30
    angle_left: 10
    angle_right: 12
    repeat: 5
  - obstacle: 200
    stop: 10
    speed: 30
    repeat: 3
`

func TestParseScenario(t *testing.T) {
	s, err := Parse([]byte(sampleScenario))
	require.NoError(t, err)

	assert.Equal(t, "drive one road", s.Name)
	assert.Equal(t, []string{"A", "B"}, s.Mission)
	require.Len(t, s.Frames, 3)
	assert.Equal(t, 10, s.Frames[1].AngleLeft)
	assert.Equal(t, 9, s.TotalTicks())
}

func TestFrameTicks(t *testing.T) {
	assert.Equal(t, 1, Frame{}.Ticks())
	assert.Equal(t, 1, Frame{Repeat: 1}.Ticks())
	assert.Equal(t, 4, Frame{Repeat: 4}.Ticks())
}

func TestParseRejectsEmptyScenario(t *testing.T) {
	_, err := Parse([]byte("name: empty\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no frames")
}

func TestParseRejectsNegativeRepeat(t *testing.T) {
	doc := `
frames:
  - stop: 400
    repeat: -2
`
	_, err := Parse([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative repeat")
}

func TestParseRejectsMalformedYaml(t *testing.T) {
	_, err := Parse([]byte("frames: ["))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not parse scenario")
}

func TestLoadScenarioFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drive.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleScenario), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "drive one road", s.Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
