package scene

import (
	"fmt"
	"sort"
	"strings"
)

// SceneInfo describes a builtin scene that can be selected by name
type SceneInfo struct {
	ID          string // Unique identifier used on the command line
	DisplayName string // Human-readable name
	Description string
	Build       func() (*Scene, Viewpoint)
}

var builtInScenes = []SceneInfo{
	{
		ID:          "spheres",
		Description: "Blue and red spheres resting on a large ground sphere",
		Build:       NewSpheresScene,
	},
	{
		ID:          "ground",
		Description: "Single large ground sphere under the sky",
		Build:       NewGroundScene,
	},
	{
		ID:          "empty",
		Description: "No geometry, every pixel is sky",
		Build:       NewEmptyScene,
	},
	{
		ID:          "enclosed",
		Description: "Camera inside a grey sphere, every primary ray hits the wall",
		Build:       NewEnclosedScene,
	},
}

// ListScenes returns every builtin scene sorted by id
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, len(builtInScenes))
	for i, info := range builtInScenes {
		info.DisplayName = titleCase(info.ID)
		scenes[i] = info
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// Lookup finds a builtin scene by id, ignoring case and surrounding space
func Lookup(id string) (SceneInfo, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, info := range ListScenes() {
		if info.ID == id {
			return info, nil
		}
	}
	return SceneInfo{}, fmt.Errorf("unknown scene %q", id)
}

// titleCase converts an id-style string to title case
// e.g., "ground-only" -> "Ground Only"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
