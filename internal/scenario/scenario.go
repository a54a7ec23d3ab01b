// Package scenario loads cyclic simulation scenarios: named field setups
// plus staged programs, either from YAML files on disk or from the
// embedded demo set.
package scenario

import (
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed scenarios/*.yaml
var embedded embed.FS

// FieldSpec declares one field to create before the stages run.
type FieldSpec struct {
	Name      string  `yaml:"name"`
	Energy    float64 `yaml:"energy"`
	Frequency float64 `yaml:"frequency"`
}

// Stage is one titled block of program lines.
type Stage struct {
	Title string   `yaml:"title"`
	Lines []string `yaml:"lines"`
}

// Scenario is a complete simulation setup.
type Scenario struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Fields      []FieldSpec `yaml:"fields"`
	Stages      []Stage     `yaml:"stages"`
}

// Validate checks structural requirements: a name, at least one stage, and
// no empty stage.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario has no name")
	}
	if len(s.Stages) == 0 {
		return fmt.Errorf("scenario %q has no stages", s.Name)
	}
	for i, stage := range s.Stages {
		if len(stage.Lines) == 0 {
			return fmt.Errorf("scenario %q stage %d (%s) has no lines", s.Name, i, stage.Title)
		}
	}
	for _, f := range s.Fields {
		if f.Name == "" {
			return fmt.Errorf("scenario %q declares a field without a name", s.Name)
		}
	}
	return nil
}

// Source returns the scenario's stages flattened into one program, stages
// separated by blank lines.
func (s *Scenario) Source() string {
	var b strings.Builder
	for i, stage := range s.Stages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(strings.Join(stage.Lines, "\n"))
		b.WriteString("\n")
	}
	return b.String()
}

func parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile reads and validates a scenario from a YAML file.
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario %s: %w", path, err)
	}
	s, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Builtin returns the embedded demo scenario with the given name.
func Builtin(name string) (*Scenario, error) {
	data, err := embedded.ReadFile("scenarios/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("unknown demo scenario %q (available: %s)",
			name, strings.Join(BuiltinNames(), ", "))
	}
	return parse(data)
}

// BuiltinNames lists the embedded demo scenarios in sorted order.
func BuiltinNames() []string {
	entries, err := embedded.ReadDir("scenarios")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}
