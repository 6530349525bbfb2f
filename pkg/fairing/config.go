package fairing

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kwcargobay/fairing-go/pkg/shield"
)

// Configuration defaults.
const (
	DefaultDecouplerNode = "bottom"
	DefaultPayloadNode   = "top"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid fairing configuration")

// Config is the fairing module configuration block.
type Config struct {
	// DecouplerNode is the node on the fairing part that holds the decoupler.
	DecouplerNode string `yaml:"decoupler_node"`

	// PayloadNode is the decoupler node label the payload sits on. All
	// nodes sharing the label are searched.
	PayloadNode string `yaml:"payload_node"`

	// SecondaryPayloadNode is an optional second payload node group.
	SecondaryPayloadNode string `yaml:"secondary_payload_node,omitempty"`

	// PreNode, when set, names a node on the decoupler holding an
	// intermediate structure part. Payload nodes are then searched on the
	// structure part instead of the decoupler.
	PreNode string `yaml:"pre_node,omitempty"`

	// ExemptParts lists part names that are never shielded.
	ExemptParts []string `yaml:"exempt_parts,omitempty"`

	// EnableLogging enables informational diagnostics.
	EnableLogging bool `yaml:"enable_logging"`

	// MaxRadialIterations caps radial closure passes.
	MaxRadialIterations int `yaml:"max_radial_iterations"`
}

// DefaultConfig returns a Config with the module defaults.
func DefaultConfig() Config {
	return Config{
		DecouplerNode:       DefaultDecouplerNode,
		PayloadNode:         DefaultPayloadNode,
		EnableLogging:       true,
		MaxRadialIterations: shield.DefaultMaxRadialIterations,
	}
}

// Validate checks if the config is usable.
func (c *Config) Validate() error {
	if c.DecouplerNode == "" {
		return fmt.Errorf("%w: decoupler node is required", ErrInvalidConfig)
	}
	if c.PayloadNode == "" {
		return fmt.Errorf("%w: payload node is required", ErrInvalidConfig)
	}
	if c.SecondaryPayloadNode == c.PayloadNode {
		return fmt.Errorf("%w: secondary payload node duplicates %q", ErrInvalidConfig, c.PayloadNode)
	}
	if c.MaxRadialIterations < 1 {
		return fmt.Errorf("%w: max radial iterations must be positive, got %d", ErrInvalidConfig, c.MaxRadialIterations)
	}
	return nil
}

// ApplyYAML overlays the fields present in node onto c.
func (c *Config) ApplyYAML(node *yaml.Node) error {
	if node == nil {
		return nil
	}
	if err := node.Decode(c); err != nil {
		return &ConfigError{Message: "failed to decode fairing block", Cause: err}
	}
	return nil
}

// Merge returns base with the fields present in override applied on top.
// A nil override returns base unchanged.
func Merge(base Config, override *yaml.Node) (Config, error) {
	cfg := base
	cfg.ExemptParts = append([]string(nil), base.ExemptParts...)
	if err := cfg.ApplyYAML(override); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ConfigError provides details about a configuration parsing error.
type ConfigError struct {
	// File is the path to the file that failed to load.
	File string

	// Line is the line number where the error occurred (0 if unknown).
	Line int

	// Message describes the error.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	if e.File != "" {
		b.WriteString(e.File)
		b.WriteString(": ")
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// ParseConfig parses a fairing configuration on top of DefaultConfig.
// It auto-detects YAML or the legacy "key = value" module block format.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if isLegacyFormat(data) {
		if err := parseLegacy(data, &cfg); err != nil {
			return Config{}, err
		}
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, &ConfigError{Message: "failed to parse YAML", Cause: err}
	}
	return cfg, nil
}

// LoadConfig reads and parses a fairing configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &ConfigError{File: path, Message: "failed to read file", Cause: err}
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		var ce *ConfigError
		if errors.As(err, &ce) {
			ce.File = path
		}
		return Config{}, err
	}
	return cfg, nil
}

// isLegacyFormat reports whether the first meaningful line looks like a
// module block or a key = value assignment.
func isLegacyFormat(data []byte) bool {
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "//") {
			continue
		}
		if isModuleWrapper(trimmed) {
			if strings.HasPrefix(trimmed, "MODULE") {
				return true
			}
			continue
		}
		// First real line decides; "{a: b}" is a YAML flow mapping.
		return strings.Contains(trimmed, "=") && !strings.Contains(trimmed, ":")
	}
	return false
}

// isModuleWrapper reports whether line only opens or closes a MODULE block:
// "MODULE", "MODULE {", "MODULE{", "{" or "}".
func isModuleWrapper(line string) bool {
	if rest, ok := strings.CutPrefix(line, "MODULE"); ok {
		rest = strings.TrimSpace(rest)
		return rest == "" || rest == "{"
	}
	return line == "{" || line == "}"
}

func parseLegacy(data []byte, cfg *Config) error {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if i := strings.Index(line, "//"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)

		if line == "" || isModuleWrapper(line) {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return &ConfigError{Line: lineNum, Message: fmt.Sprintf("invalid line: %s", line)}
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if err := applyLegacyKey(cfg, key, value); err != nil {
			return &ConfigError{Line: lineNum, Message: "invalid value for " + key, Cause: err}
		}
	}

	if err := scanner.Err(); err != nil {
		return &ConfigError{Message: "failed to read module block", Cause: err}
	}
	return nil
}

// applyLegacyKey sets one legacy field. Keys that belong to other modules
// (name, ejectionForce, ...) are ignored.
func applyLegacyKey(cfg *Config, key, value string) error {
	switch key {
	case "explosiveNodeID":
		cfg.DecouplerNode = value
	case "payloadNode":
		cfg.PayloadNode = value
	case "payloadNode2":
		cfg.SecondaryPayloadNode = value
	case "preNode":
		cfg.PreNode = value
	case "exemptParts":
		cfg.ExemptParts = nil
		for _, name := range strings.Split(value, ",") {
			if name = strings.TrimSpace(name); name != "" {
				cfg.ExemptParts = append(cfg.ExemptParts, name)
			}
		}
	case "enableLogging":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		cfg.EnableLogging = b
	case "maxRadialIterations":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		cfg.MaxRadialIterations = n
	}
	return nil
}
