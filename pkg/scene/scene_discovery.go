package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-sphere-tracer/pkg/log"
)

var logger = log.New("scene")

// ErrUnknownScene is returned when a scene ID matches no built-in or discovered scene
var ErrUnknownScene = errors.New("scene: unknown scene")

// BuiltinGroup is the group name of the scenes compiled into the binary
const BuiltinGroup = "Built-in Scenes"

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to the JSON file (file type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

type builtin struct {
	info  SceneInfo
	build func(seed int64) *Scene
}

var builtins = []builtin{
	{
		info:  SceneInfo{ID: "default", Name: "Default Scene", Description: "Diffuse, fuzzy metal and glass spheres with depth of field"},
		build: func(int64) *Scene { return NewDefaultScene() },
	},
	{
		info:  SceneInfo{ID: "metal", Name: "Metal Spheres", Description: "Diffuse sphere between fuzzy and polished metal"},
		build: func(int64) *Scene { return NewMetalScene() },
	},
	{
		info:  SceneInfo{ID: "normals", Name: "Surface Normals", Description: "Single sphere with flat normal shading and red silhouette"},
		build: func(int64) *Scene { return NewNormalsScene() },
	},
	{
		info:  SceneInfo{ID: "random", Name: "Random Spheres", Description: "Hundreds of small random spheres around three large ones"},
		build: NewRandomScene,
	},
}

// BuiltinScenes lists the built-in scenes in registration order
func BuiltinScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtins))
	for _, b := range builtins {
		info := b.info
		info.DisplayName = info.Name
		info.Group = BuiltinGroup
		info.Type = "builtin"
		scenes = append(scenes, info)
	}
	return scenes
}

// New builds the built-in scene with the given ID. The seed only affects generated scenes.
func New(id string, seed int64) (*Scene, error) {
	for _, b := range builtins {
		if b.info.ID == id {
			return b.build(seed), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
}

// Resolve builds a built-in scene or loads a scene file discovered in dir
func Resolve(id string, seed int64, dir string) (*Scene, error) {
	if !strings.HasPrefix(id, "file:") {
		return New(id, seed)
	}

	files, err := ListSceneFiles(dir)
	if err != nil {
		return nil, err
	}
	for _, info := range files {
		if info.ID == id {
			return Load(info.FilePath)
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
}

// ListSceneFiles scans dir for JSON scene files. A missing directory yields no scenes.
// Files that fail to parse are logged and skipped.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	if dir == "" {
		return []SceneInfo{}, nil
	}
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("scene: scan %s: %w", dir, err)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		info, err := ParseFileMetadata(filePath)
		if err != nil {
			logger.Warningf("skipping scene file: %v", err)
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseFileMetadata reads the name, description and group of a scene file
func ParseFileMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	info := SceneInfo{
		ID:          "file:" + nameWithoutExt,
		Name:        titleCase(nameWithoutExt),
		DisplayName: titleCase(nameWithoutExt),
		Group:       "Scene Files",
		Type:        "file",
		FilePath:    filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return info, fmt.Errorf("scene: read %s: %w", filePath, err)
	}
	file, err := Parse(data)
	if err != nil {
		return info, fmt.Errorf("scene: parse %s: %w", filePath, err)
	}

	if file.Name != "" {
		info.Name = file.Name
		info.DisplayName = file.Name
	}
	if file.Group != "" {
		info.Group = file.Group
	}
	info.Description = file.Description

	return info, nil
}

// ListAllScenes returns built-in scenes and the scene files in dir, grouped by category
func ListAllScenes(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	files, err := ListSceneFiles(dir)
	if err != nil {
		return response, err
	}

	allScenes := append(BuiltinScenes(), files...)

	groupMap := make(map[string][]SceneInfo)
	for _, scene := range allScenes {
		groupMap[scene.Group] = append(groupMap[scene.Group], scene)
	}

	// Built-in first, then alphabetical
	var groupNames []string
	for groupName := range groupMap {
		if groupName != BuiltinGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	response.Groups = append(response.Groups, SceneGroup{
		Name:   BuiltinGroup,
		Scenes: groupMap[BuiltinGroup],
	})

	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return response, nil
}

// titleCase converts a filename-style string to title case
// e.g., "three-spheres" -> "Three Spheres"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
