// Package script replays a YAML list of gestures against an editor without a
// terminal. It backs the apply command and doubles as a fixture format for tests.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jask/rowedit/internal/service"
)

// Script is a seed list plus the gestures to apply to it.
type Script struct {
	// Seed replaces the configured seed when non-nil.
	Seed  []string `yaml:"seed,omitempty"`
	Steps []Step   `yaml:"steps" validate:"dive"`
}

// Step is one gesture. Index is used by select and delete, From/To by move and
// Label by add.
type Step struct {
	Op    string `yaml:"op" validate:"required,oneof=select delete add move"`
	Index int    `yaml:"index,omitempty"`
	From  int    `yaml:"from,omitempty"`
	To    int    `yaml:"to,omitempty"`
	Label string `yaml:"label,omitempty"`
}

// Result holds the final list and the events produced along the way.
type Result struct {
	Items  []string        `json:"items"`
	Events []service.Event `json:"events"`
}

// Parse decodes and validates a script.
func Parse(r io.Reader) (*Script, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	var s Script
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if err := validator.New().Struct(s); err != nil {
		return nil, fmt.Errorf("invalid script: %w", err)
	}
	return &s, nil
}

// Load reads a script from path.
func Load(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Apply runs the steps in order and stops at the first failure. The returned
// result always reflects the list as it stands, including on error.
func Apply(ed *service.EditorService, s *Script, record func(service.Event) error) (Result, error) {
	var res Result
	for i, step := range s.Steps {
		ev, err := applyStep(ed, step)
		if err != nil {
			res.Items = ed.Store.Items()
			return res, fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}
		res.Events = append(res.Events, ev)
		if record != nil {
			if err := record(ev); err != nil {
				res.Items = ed.Store.Items()
				return res, fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
			}
		}
	}
	res.Items = ed.Store.Items()
	return res, nil
}

func applyStep(ed *service.EditorService, step Step) (service.Event, error) {
	switch step.Op {
	case "select":
		return ed.Select(step.Index)
	case "delete":
		return ed.Delete(step.Index)
	case "add":
		return ed.Add(step.Label)
	case "move":
		return ed.Move(step.From, step.To)
	default:
		return service.Event{}, fmt.Errorf("unknown op %q", step.Op)
	}
}
