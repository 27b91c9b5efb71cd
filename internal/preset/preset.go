package preset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/panelctl/panelctl/internal/api"
	bundledpresets "github.com/panelctl/panelctl/presets"
)

// Preset is an egg template loaded from a YAML file, used to publish a
// new egg without typing the whole definition by hand.
type Preset struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	DockerImage string `yaml:"docker_image"`
	Startup     string `yaml:"startup,omitempty"`
	Icon        string `yaml:"icon,omitempty"`
}

// Request converts the preset into an admin create-egg payload.
func (p Preset) Request() api.CreateEggRequest {
	return api.CreateEggRequest{
		Name:        p.Name,
		Description: p.Description,
		DockerImage: p.DockerImage,
		Startup:     p.Startup,
		IconURL:     p.Icon,
	}
}

// Load loads egg presets from one or more directories.
//
// If no paths are provided, default locations are used in this order:
//  1. presets/ relative to the executable
//  2. presets/ relative to the current working directory
//  3. ~/.config/panelctl/presets
//
// When multiple files define the same preset name, the last loaded
// definition wins, so user-local presets override bundled ones.
func Load(paths ...string) (map[string]Preset, error) {
	loadBundledDefaults := len(paths) == 0

	loadPaths, err := resolvePaths(paths...)
	if err != nil {
		return nil, err
	}

	presets := make(map[string]Preset)
	if loadBundledDefaults {
		if err := loadEmbedded(presets); err != nil {
			return nil, err
		}
	}

	for _, rawPath := range loadPaths {
		path, err := expandHome(rawPath)
		if err != nil {
			return nil, fmt.Errorf("expand presets path %q: %w", rawPath, err)
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}

			return nil, fmt.Errorf("read presets directory %q: %w", path, err)
		}

		for _, entry := range entries {
			if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
				continue
			}

			filePath := filepath.Join(path, entry.Name())
			data, err := os.ReadFile(filePath)
			if err != nil {
				return nil, fmt.Errorf("read preset file %q: %w", filePath, err)
			}

			p, err := parse(filePath, data)
			if err != nil {
				return nil, err
			}

			presets[p.Name] = p
		}
	}

	return presets, nil
}

// Validate validates required fields for a preset.
func Validate(p Preset) error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("preset name is required")
	}

	if strings.TrimSpace(p.DockerImage) == "" {
		return fmt.Errorf("preset %q requires docker_image", p.Name)
	}

	return nil
}

func loadEmbedded(presets map[string]Preset) error {
	entries, err := bundledpresets.FS.ReadDir(".")
	if err != nil {
		return fmt.Errorf("read embedded presets: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}

		data, err := bundledpresets.FS.ReadFile(entry.Name())
		if err != nil {
			return fmt.Errorf("read embedded preset file %q: %w", entry.Name(), err)
		}

		p, err := parse("embedded/"+entry.Name(), data)
		if err != nil {
			return err
		}

		presets[p.Name] = p
	}

	return nil
}

func parse(path string, data []byte) (Preset, error) {
	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Preset{}, fmt.Errorf("parse preset file %q: %w", path, err)
	}

	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	p.DockerImage = strings.TrimSpace(p.DockerImage)
	p.Startup = strings.TrimSpace(p.Startup)
	p.Icon = strings.TrimSpace(p.Icon)

	if err := Validate(p); err != nil {
		return Preset{}, fmt.Errorf("validate preset file %q: %w", path, err)
	}

	return p, nil
}

func resolvePaths(paths ...string) ([]string, error) {
	if len(paths) > 0 {
		return paths, nil
	}

	binaryPath := "presets"
	executablePath, err := os.Executable()
	if err == nil {
		binaryPath = filepath.Join(filepath.Dir(executablePath), "presets")
	}

	loadPaths := []string{binaryPath}

	workingDirectory, err := os.Getwd()
	if err == nil {
		loadPaths = append(loadPaths, filepath.Join(workingDirectory, "presets"))
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return dedupePaths(loadPaths), nil
	}

	loadPaths = append(loadPaths, filepath.Join(homeDir, ".config", "panelctl", "presets"))

	return dedupePaths(loadPaths), nil
}

func dedupePaths(paths []string) []string {
	seenPaths := make(map[string]struct{}, len(paths))
	uniquePaths := make([]string, 0, len(paths))

	for _, path := range paths {
		normalizedPath := filepath.Clean(path)
		if normalizedPath == "" {
			continue
		}

		if _, seen := seenPaths[normalizedPath]; seen {
			continue
		}

		seenPaths[normalizedPath] = struct{}{}
		uniquePaths = append(uniquePaths, path)
	}

	return uniquePaths
}

func expandHome(path string) (string, error) {
	if path == "~" {
		return os.UserHomeDir()
	}

	if !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, "~\\") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	relativePath := path[2:]
	return filepath.Join(homeDir, relativePath), nil
}
