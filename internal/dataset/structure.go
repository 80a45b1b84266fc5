package dataset

import (
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const eventsFile = "events.yml"

// Entry is one `name: [requirement, ...]` line of a structure file.
type Entry struct {
	Name         string
	Requirements []string
}

func (e *Entry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode || len(node.Content) != 2 {
		return fmt.Errorf("line %d: entry must be a single-key map", node.Line)
	}
	if err := node.Content[0].Decode(&e.Name); err != nil {
		return fmt.Errorf("line %d: entry name: %w", node.Line, err)
	}
	e.Name = strings.TrimSpace(e.Name)
	if e.Name == "" {
		return fmt.Errorf("line %d: entry name is empty", node.Line)
	}
	value := node.Content[1]
	switch {
	case value.Tag == "!!null":
		e.Requirements = nil
	case value.Kind == yaml.SequenceNode:
		if err := value.Decode(&e.Requirements); err != nil {
			return fmt.Errorf("line %d: %s: %w", node.Line, e.Name, err)
		}
	default:
		return fmt.Errorf("line %d: %s: requirements must be a list", node.Line, e.Name)
	}
	return nil
}

func (e Entry) MarshalYAML() (any, error) {
	return map[string][]string{e.Name: e.Requirements}, nil
}

// FieldFile lists the spots of one field.
type FieldFile struct {
	Field       string  `yaml:"field"`
	MainWeapons []Entry `yaml:"mainWeapons,omitempty"`
	SubWeapons  []Entry `yaml:"subWeapons,omitempty"`
	Chests      []Entry `yaml:"chests,omitempty"`
	Seals       []Entry `yaml:"seals,omitempty"`
	Roms        []Entry `yaml:"roms,omitempty"`
	Talks       []Entry `yaml:"talks,omitempty"`
	Shops       []Entry `yaml:"shops,omitempty"`
}

// Structure is the raw game layout as read from disk.
type Structure struct {
	Fields []FieldFile
	Events []Entry
}

// Load reads a structure directory: one YAML file per field plus events.yml.
func Load(dir string) (*Structure, error) {
	return LoadFS(os.DirFS(dir))
}

func LoadFS(fsys fs.FS) (*Structure, error) {
	paths, err := fs.Glob(fsys, "*.yml")
	if err != nil {
		return nil, fmt.Errorf("glob structure files: %w", err)
	}
	sort.Strings(paths)

	st := &Structure{}
	sawEvents := false
	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if path == eventsFile {
			if err := yaml.Unmarshal(data, &st.Events); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
			sawEvents = true
			continue
		}
		var ff FieldFile
		if err := yaml.Unmarshal(data, &ff); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if strings.TrimSpace(ff.Field) == "" {
			return nil, fmt.Errorf("%s: field is required", path)
		}
		st.Fields = append(st.Fields, ff)
	}
	if len(st.Fields) == 0 {
		return nil, fmt.Errorf("no field files found")
	}
	if !sawEvents {
		return nil, fmt.Errorf("%s not found", eventsFile)
	}
	return st, nil
}
