package vessel

import (
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// LoadError provides details about a craft loading error.
type LoadError struct {
	// File is the path to the file that failed to load.
	File string

	// Message describes the error.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	if e.File == "" {
		return msg
	}
	return e.File + ": " + msg
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Craft is the YAML representation of a vessel.
type Craft struct {
	ID    string      `yaml:"id,omitempty"`
	Name  string      `yaml:"name"`
	Parts []CraftPart `yaml:"parts"`
}

// CraftPart is the YAML representation of a single part.
type CraftPart struct {
	ID      string      `yaml:"id"`
	Name    string      `yaml:"name"`
	Nodes   []CraftNode `yaml:"nodes,omitempty"`
	Surface string      `yaml:"surface,omitempty"`

	// Fairing holds the raw fairing module block, if the part carries one.
	// It is decoded by the fairing package. A bare "fairing:" key yields
	// an empty mapping, meaning a fairing with default settings.
	Fairing *yaml.Node `yaml:"fairing,omitempty"`
}

// UnmarshalYAML decodes the part and keeps an empty fairing block, which
// the YAML decoder would otherwise drop as null.
func (p *CraftPart) UnmarshalYAML(value *yaml.Node) error {
	type plain CraftPart
	if err := value.Decode((*plain)(p)); err != nil {
		return err
	}
	if p.Fairing != nil || value.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		if value.Content[i].Value == "fairing" {
			p.Fairing = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			break
		}
	}
	return nil
}

// CraftNode is a single attach node in a craft file.
type CraftNode struct {
	Label    string `yaml:"label"`
	Attached string `yaml:"attached,omitempty"`
}

// ParseCraft decodes a craft file without building the graph.
func ParseCraft(data []byte) (*Craft, error) {
	var c Craft
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, &LoadError{Message: "failed to parse YAML", Cause: err}
	}
	if len(c.Parts) == 0 {
		return nil, &LoadError{Message: "craft must have at least one part"}
	}
	return &c, nil
}

// Build creates the vessel graph described by the craft. Parts without an
// ID get a generated one and cannot be referenced by other parts.
func (c *Craft) Build() (*Vessel, error) {
	v := New(c.ID, c.Name)

	for i := range c.Parts {
		cp := &c.Parts[i]
		if cp.ID == "" {
			cp.ID = uuid.NewString()
		}
		if cp.Name == "" {
			return nil, &LoadError{Message: "part " + cp.ID + ": name is required"}
		}
		if err := v.AddPart(NewPart(cp.ID, cp.Name)); err != nil {
			return nil, &LoadError{Message: "part " + cp.ID, Cause: err}
		}
	}

	for _, cp := range c.Parts {
		for _, n := range cp.Nodes {
			if n.Label == "" {
				return nil, &LoadError{Message: "part " + cp.ID + ": node label is required"}
			}
			if err := v.Attach(cp.ID, n.Label, n.Attached); err != nil {
				return nil, &LoadError{Message: "part " + cp.ID + " node " + n.Label, Cause: err}
			}
		}
		if cp.Surface != "" {
			if err := v.SurfaceAttach(cp.ID, cp.Surface); err != nil {
				return nil, &LoadError{Message: "part " + cp.ID + " surface", Cause: err}
			}
		}
	}

	return v, nil
}

// ParseVessel parses a craft file from YAML bytes and builds the vessel.
func ParseVessel(data []byte) (*Vessel, error) {
	c, err := ParseCraft(data)
	if err != nil {
		return nil, err
	}
	return c.Build()
}

// LoadCraft reads and parses a craft file.
func LoadCraft(path string) (*Craft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{File: path, Message: "failed to read file", Cause: err}
	}
	c, err := ParseCraft(data)
	if err != nil {
		return nil, withFile(err, path)
	}
	return c, nil
}

// LoadVessel reads a craft file and builds the vessel.
func LoadVessel(path string) (*Vessel, error) {
	c, err := LoadCraft(path)
	if err != nil {
		return nil, err
	}
	v, err := c.Build()
	if err != nil {
		return nil, withFile(err, path)
	}
	return v, nil
}

func withFile(err error, path string) error {
	if le, ok := err.(*LoadError); ok {
		le.File = path
		return le
	}
	return &LoadError{File: path, Message: err.Error()}
}
