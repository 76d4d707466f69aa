package presets

import (
	"fmt"
	"os"
	"strings"

	yaml "gopkg.in/yaml.v2"

	"varsift/api/models/dtos"
	filterService "varsift/api/services/filter"
)

type (
	PresetService struct {
		Initialized bool
		presets     []dtos.FilterPresetDto
	}
)

// NewPresetService loads the preset catalogue from a yaml file at startup.
// Presets whose expression fails to parse are dropped with a warning
// instead of poisoning the whole catalogue.
func NewPresetService(presetsPath string) *PresetService {
	ps := &PresetService{
		Initialized: false,
	}

	ps.Init(presetsPath)

	return ps
}

func (ps *PresetService) Init(presetsPath string) {
	if !ps.Initialized {
		ps.presets = loadPresets(presetsPath)

		ps.Initialized = true
		fmt.Printf("Preset Service Initialized with %d presets ..\n", len(ps.presets))
	}
}

func loadPresets(presetsPath string) []dtos.FilterPresetDto {
	if presetsPath == "" {
		return nil
	}

	contents, err := os.ReadFile(presetsPath)
	if err != nil {
		fmt.Printf("Failed to read presets file %s : %v\n", presetsPath, err)
		return nil
	}

	var catalogue struct {
		Presets []dtos.FilterPresetDto `yaml:"presets"`
	}
	if err := yaml.Unmarshal(contents, &catalogue); err != nil {
		fmt.Printf("Failed to parse presets file %s : %v\n", presetsPath, err)
		return nil
	}

	kept := make([]dtos.FilterPresetDto, 0, len(catalogue.Presets))
	for _, preset := range catalogue.Presets {
		if preset.Name == "" {
			continue
		}
		if _, parseErr := filterService.ParseFilterExpression(preset.Filter); parseErr != nil {
			fmt.Printf("Dropping preset %q : %v\n", preset.Name, parseErr)
			continue
		}
		kept = append(kept, preset)
	}
	return kept
}

func (ps *PresetService) ListPresets() []dtos.FilterPresetDto {
	return ps.presets
}

// GetPresetByName looks a preset up by its name, case-insensitively.
func (ps *PresetService) GetPresetByName(name string) (dtos.FilterPresetDto, bool) {
	for _, preset := range ps.presets {
		if strings.EqualFold(preset.Name, name) {
			return preset, true
		}
	}
	return dtos.FilterPresetDto{}, false
}
