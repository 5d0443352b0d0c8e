package presentation

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleScenes() []SceneDTO {
	return []SceneDTO{
		{ID: "a", Name: "Main", Position: 0, Active: true, Items: []ItemDTO{
			{ID: "1", Source: "Camera"},
			{ID: "2", Source: "Mic/Aux", Hidden: true},
		}},
		{ID: "b", Name: "BRB", Position: 1, Items: []ItemDTO{}},
	}
}

func TestFormatter_FormatJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(&buf).FormatJSON(sampleScenes()))

	var decoded []SceneDTO
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, sampleScenes(), decoded)
	require.Contains(t, buf.String(), "\n  {", "output is indented")
}

func TestFormatter_FormatSceneTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(&buf).FormatSceneTable(sampleScenes()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[0], "NAME")
	require.Equal(t, []string{"*", "Main", "2", "1", "a"}, strings.Fields(lines[1]))
	require.Equal(t, []string{"BRB", "0", "0", "b"}, strings.Fields(lines[2]))
}

func TestSceneListing(t *testing.T) {
	require.Equal(t, "* Main\n  BRB\n", SceneListing(sampleScenes()))
	require.Empty(t, SceneListing(nil))
}
