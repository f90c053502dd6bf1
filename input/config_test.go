package input_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/plus3/platform/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	keyA input.Key = iota + 1
	keyD
	keyW
	keyS
	keySpace
	keyLeft
	keyRight
)

var testKeys = input.KeyNames{
	"A":     keyA,
	"D":     keyD,
	"W":     keyW,
	"S":     keyS,
	"SPACE": keySpace,
	"LEFT":  keyLeft,
	"RIGHT": keyRight,
}

const sampleYAML = `
action_mappings:
  jump: [SPACE]
  left: [A, Left]
axis_mappings:
  horizontal:
    acceleration: 2.0
    deceleration: 4.0
    positive: [D, Right]
    negative: [A, Left]
`

func TestParseConfig(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		cfg, err := input.ParseConfig(strings.NewReader(sampleYAML))
		require.NoError(t, err)

		assert.Equal(t, []string{"SPACE"}, cfg.ActionMappings["jump"])
		h := cfg.AxisMappings["horizontal"]
		assert.Equal(t, float32(2), h.Acceleration)
		assert.Equal(t, float32(4), h.Deceleration)
		assert.Equal(t, []string{"D", "Right"}, h.Positive)
	})

	t.Run("json", func(t *testing.T) {
		doc := `{
			"action_mappings": {"jump": ["SPACE"]},
			"axis_mappings": {"vertical": {"acceleration": 1, "deceleration": 1, "positive": ["S"], "negative": ["W"]}}
		}`
		cfg, err := input.ParseConfig(strings.NewReader(doc))
		require.NoError(t, err)
		assert.Contains(t, cfg.AxisMappings, "vertical")
	})

	t.Run("empty", func(t *testing.T) {
		_, err := input.ParseConfig(strings.NewReader(""))
		assert.ErrorIs(t, err, input.ErrEmptyConfig)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := input.ParseConfig(strings.NewReader("action_mapping: {}\n"))
		assert.Error(t, err)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := input.ParseConfig(strings.NewReader("action_mappings: [\n"))
		assert.Error(t, err)
	})
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	cfg, err := input.LoadConfig(path)
	require.NoError(t, err)
	assert.Len(t, cfg.ActionMappings, 2)

	_, err = input.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCompile(t *testing.T) {
	cfg, err := input.ParseConfig(strings.NewReader(sampleYAML))
	require.NoError(t, err)

	t.Run("resolves keys", func(t *testing.T) {
		m, err := input.Compile(cfg, testKeys)
		require.NoError(t, err)

		require.Len(t, m.Actions, 2)
		assert.Equal(t, "jump", m.Actions[0].Name, "actions are sorted by name")
		assert.Equal(t, "left", m.Actions[1].Name)

		left, ok := m.Action("left")
		require.True(t, ok)
		assert.Equal(t, []input.Key{keyA, keyLeft}, left.Keys)

		axis, ok := m.Axis("horizontal")
		require.True(t, ok)
		assert.Equal(t, []input.Key{keyD, keyRight}, axis.Positive)
		assert.Equal(t, []input.Key{keyA, keyLeft}, axis.Negative)

		assert.Equal(t, []input.Key{keyA, keyD, keySpace, keyLeft, keyRight}, m.RelevantKeys(),
			"relevant keys are deduplicated and sorted")
	})

	t.Run("unknown key fails the whole table", func(t *testing.T) {
		bad := input.Config{
			ActionMappings: map[string][]string{"jump": {"SPACE"}, "dash": {"NOPE"}},
		}
		m, err := input.Compile(bad, testKeys)
		assert.Nil(t, m)
		assert.ErrorIs(t, err, input.ErrUnknownKey)
		assert.Contains(t, err.Error(), "NOPE")
	})

	t.Run("unknown axis key", func(t *testing.T) {
		bad := input.Config{
			AxisMappings: map[string]input.AxisConfig{
				"horizontal": {Positive: []string{"D"}, Negative: []string{"Q"}},
			},
		}
		_, err := input.Compile(bad, testKeys)
		assert.ErrorIs(t, err, input.ErrUnknownKey)
	})

	t.Run("negative rates", func(t *testing.T) {
		bad := input.Config{
			AxisMappings: map[string]input.AxisConfig{
				"horizontal": {Acceleration: -1},
			},
		}
		_, err := input.Compile(bad, testKeys)
		assert.ErrorIs(t, err, input.ErrInvalidAxis)
	})
}
