package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/BurntSushi/toml"
	securejoin "github.com/cyphar/filepath-securejoin"
)

// instanceNameRegex validates instance names.
// Names must start with a lowercase letter or digit, followed by lowercase letters, digits, underscores, or hyphens.
// Maximum length is 63 characters (common container name limit).
var instanceNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,62}$`)

// ValidateInstanceName checks if an instance name is valid.
// Valid names:
//   - Start with a lowercase letter or digit
//   - Contain only lowercase letters, digits, underscores, or hyphens
//   - Are between 1 and 63 characters long
func ValidateInstanceName(name string) error {
	if name == "" {
		return fmt.Errorf("instance name cannot be empty")
	}

	if !instanceNameRegex.MatchString(name) {
		return fmt.Errorf("invalid instance name %q: must start with a lowercase letter or digit, contain only lowercase letters, digits, underscores, or hyphens, and be at most 63 characters", name)
	}

	return nil
}

const (
	// DefaultScenarioFile is the scenario file looked up in the working directory.
	DefaultScenarioFile = "kiln.toml"

	// ContainerPrefix is prepended to instance names to form container names.
	ContainerPrefix = "kiln-"

	stateDirName = ".kiln"
)

// Paths holds the directory layout used by kiln-ctl.
type Paths struct {
	// StateDir is the root of kiln-ctl's persistent state.
	StateDir string

	// InstancesDir holds one metadata file per created instance.
	InstancesDir string
}

// DefaultPaths returns the default paths configuration. The state dir is
// $KILN_STATE_DIR if set, otherwise ~/.kiln.
func DefaultPaths() *Paths {
	stateDir := os.Getenv("KILN_STATE_DIR")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		stateDir = filepath.Join(home, stateDirName)
	}

	return &Paths{
		StateDir:     stateDir,
		InstancesDir: filepath.Join(stateDir, "instances"),
	}
}

// RegistryConfig carries registry coordinates for a platform image. The
// credentials are names of environment variables, not the values themselves;
// both are passed through unchanged to the driver.
type RegistryConfig struct {
	URL         string `toml:"url"`
	UsernameEnv string `toml:"username_env"`
	PasswordEnv string `toml:"password_env"`
}

// Platform describes one container instance a scenario wants created.
// All fields are passed through to the driver unmodified.
type Platform struct {
	Name           string            `toml:"name"`
	Image          string            `toml:"image"`
	Command        string            `toml:"command"`
	Privileged     bool              `toml:"privileged"`
	Pull           bool              `toml:"pull"`
	PreBuildImage  bool              `toml:"pre_build_image"`
	Env            map[string]string `toml:"env"`
	Volumes        []string          `toml:"volumes"`
	PublishedPorts []string          `toml:"published_ports"`
	Networks       []string          `toml:"networks"`
	Registry       RegistryConfig    `toml:"registry"`
}

// DriverConfig selects the infrastructure driver for a scenario.
type DriverConfig struct {
	Name string `toml:"name"`
}

// Scenario is the top-level scenario configuration loaded from kiln.toml.
type Scenario struct {
	Name      string       `toml:"name"`
	Driver    DriverConfig `toml:"driver"`
	Platforms []Platform   `toml:"platforms"`
}

// Validate checks the scenario for structural problems.
func (s *Scenario) Validate() error {
	if len(s.Platforms) == 0 {
		return fmt.Errorf("scenario defines no platforms")
	}

	seen := make(map[string]bool, len(s.Platforms))
	for _, p := range s.Platforms {
		if err := ValidateInstanceName(p.Name); err != nil {
			return err
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate platform name %q", p.Name)
		}
		seen[p.Name] = true

		if p.Image == "" {
			return fmt.Errorf("platform %q has no image", p.Name)
		}
	}

	return nil
}

// Platform returns the platform with the given name, or nil.
func (s *Scenario) Platform(name string) *Platform {
	for i := range s.Platforms {
		if s.Platforms[i].Name == name {
			return &s.Platforms[i]
		}
	}
	return nil
}

// LoadScenario loads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	var scenario Scenario

	if _, err := toml.DecodeFile(path, &scenario); err != nil {
		return nil, fmt.Errorf("failed to load scenario %s: %w", path, err)
	}

	if scenario.Name == "" {
		scenario.Name = "default"
	}
	if scenario.Driver.Name == "" {
		scenario.Driver.Name = "docker"
	}

	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}

	return &scenario, nil
}

// InstanceMetadata records a created instance. One JSON file per instance
// lives under the instances dir; it is written at create and removed at
// destroy.
type InstanceMetadata struct {
	Name      string `json:"name"`
	Scenario  string `json:"scenario"`
	Driver    string `json:"driver"`
	Image     string `json:"image"`
	CreatedAt string `json:"createdAt"`
}

// ContainerName returns the container name for this instance.
func (m *InstanceMetadata) ContainerName() string {
	return ContainerPrefix + m.Name
}

// Validate checks that the metadata is complete.
func (m *InstanceMetadata) Validate() error {
	if err := ValidateInstanceName(m.Name); err != nil {
		return err
	}
	if m.Driver == "" {
		return fmt.Errorf("instance %q has no driver", m.Name)
	}
	return nil
}

// instancePath builds the metadata file path for an instance, rejecting
// names that would escape the instances dir.
func instancePath(instancesDir, name string) (string, error) {
	return securejoin.SecureJoin(instancesDir, name+".json")
}

// LoadInstanceMetadata loads the metadata for a named instance.
func LoadInstanceMetadata(instancesDir, name string) (*InstanceMetadata, error) {
	path, err := instancePath(instancesDir, name)
	if err != nil {
		return nil, fmt.Errorf("invalid instance name %q: %w", name, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read instance metadata: %w", err)
	}

	var metadata InstanceMetadata
	if err := json.Unmarshal(data, &metadata); err != nil {
		return nil, fmt.Errorf("failed to parse instance metadata: %w", err)
	}

	return &metadata, nil
}

// SaveInstanceMetadata persists the metadata for an instance.
func SaveInstanceMetadata(instancesDir string, metadata *InstanceMetadata) error {
	if err := metadata.Validate(); err != nil {
		return err
	}

	path, err := instancePath(instancesDir, metadata.Name)
	if err != nil {
		return fmt.Errorf("invalid instance name %q: %w", metadata.Name, err)
	}

	if err := os.MkdirAll(instancesDir, 0o755); err != nil {
		return fmt.Errorf("failed to create instances dir: %w", err)
	}

	data, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal instance metadata: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write instance metadata: %w", err)
	}

	return nil
}

// DeleteInstanceMetadata removes the metadata file for an instance.
func DeleteInstanceMetadata(instancesDir, name string) error {
	path, err := instancePath(instancesDir, name)
	if err != nil {
		return fmt.Errorf("invalid instance name %q: %w", name, err)
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete instance metadata: %w", err)
	}

	return nil
}

// ListInstances returns metadata for all known instances, sorted by name.
func ListInstances(instancesDir string) ([]*InstanceMetadata, error) {
	entries, err := os.ReadDir(instancesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read instances dir: %w", err)
	}

	var instances []*InstanceMetadata
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		name := entry.Name()[:len(entry.Name())-len(".json")]
		metadata, err := LoadInstanceMetadata(instancesDir, name)
		if err != nil {
			continue
		}
		instances = append(instances, metadata)
	}

	sort.Slice(instances, func(i, j int) bool {
		return instances[i].Name < instances[j].Name
	})

	return instances, nil
}

// InstanceExists reports whether metadata exists for the named instance.
func InstanceExists(instancesDir, name string) bool {
	path, err := instancePath(instancesDir, name)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}
