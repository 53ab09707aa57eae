// Package catalog loads the shell-command catalog that the embedding
// generator consumes. The catalog is produced by an external collector
// and read here as-is; this package never writes it.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/localrivet/cmdembed/internal/logger"
)

// Command is one catalog entry. Only Command, Description and Keywords
// feed the embedding generator; the remaining fields are pass-through
// metadata for the downstream consumer. Absent optional fields decode
// to their zero values rather than null.
type Command struct {
	// Command is the actual shell command or command template
	Command string `yaml:"command"`

	// Description provides a human-readable explanation of what the command does
	Description string `yaml:"description"`

	// Keywords are searchable terms associated with this command
	Keywords []string `yaml:"keywords"`

	// Tags provide additional categorization for the command
	Tags []string `yaml:"tags,omitempty"`

	// Niche specifies the domain or specialty area (e.g., "git", "docker", "system")
	Niche string `yaml:"niche,omitempty"`

	// Platform specifies which operating systems support this command
	Platform []string `yaml:"platform,omitempty"`

	// Pipeline indicates whether this command is commonly used in pipelines
	Pipeline bool `yaml:"pipeline"`
}

// Load reads commands from a YAML file. Both catalog shapes produced by
// collectors are accepted: a top-level list of entries, or a mapping
// with a "commands" key holding the list.
func Load(path string) ([]Command, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, logger.InputError(err, "command catalog not found").
				WithField("path", path)
		}
		return nil, fmt.Errorf("failed to read command catalog: %w", err)
	}

	return Parse(data)
}

// Parse decodes catalog YAML from memory.
func Parse(data []byte) ([]Command, error) {
	var commands []Command
	if err := yaml.Unmarshal(data, &commands); err == nil {
		return commands, nil
	}

	var wrapper struct {
		Commands []Command `yaml:"commands"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, logger.ValidationError(err, "failed to parse command catalog")
	}

	return wrapper.Commands, nil
}
