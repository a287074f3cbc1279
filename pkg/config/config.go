package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"

	"labelord/pkg/labels"
)

// Config represents the labelord configuration file
type Config struct {
	GitHub GitHubConfig      `yaml:"github"`
	Repos  map[string]bool   `yaml:"repos,omitempty"`
	Labels map[string]string `yaml:"labels,omitempty"`
	Others OthersConfig      `yaml:"others,omitempty"`
}

// GitHubConfig represents GitHub connection settings
type GitHubConfig struct {
	Token string `yaml:"token,omitempty"`
	// APIURL points at a GitHub Enterprise API instead of api.github.com
	APIURL string `yaml:"api_url,omitempty"`
}

// OthersConfig holds the alternative label sources
type OthersConfig struct {
	TemplateRepo string `yaml:"template-repo,omitempty"`
}

// Format is the on-disk encoding of a configuration file
type Format string

const (
	FormatINI  Format = "ini"
	FormatYAML Format = "yaml"
)

const (
	sectionGitHub = "github"
	sectionRepos  = "repos"
	sectionLabels = "labels"
	sectionOthers = "others"
)

// DetectFormat picks the encoding from the file extension. Anything that is
// not YAML is read as INI.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatINI
	}
}

// LoadConfig loads configuration from the default location
func LoadConfig() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	return LoadConfigFromPath(configPath)
}

// LoadConfigFromPath loads configuration from a specific path
func LoadConfigFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil // Return empty config if file doesn't exist
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data, DetectFormat(path))
}

// Parse decodes configuration data in the given format
func Parse(data []byte, format Format) (*Config, error) {
	switch format {
	case FormatYAML:
		var config Config
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		return &config, nil
	case FormatINI:
		return parseINI(data)
	default:
		return nil, fmt.Errorf("unsupported config format: %s", format)
	}
}

func parseINI(data []byte) (*Config, error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment: true,
		KeyValueDelimiters:  "=",
	}, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config := &Config{}

	if section, err := file.GetSection(sectionGitHub); err == nil {
		config.GitHub.Token = section.Key("token").String()
		config.GitHub.APIURL = section.Key("api_url").String()
	}

	if section, err := file.GetSection(sectionRepos); err == nil {
		config.Repos = make(map[string]bool)
		for _, key := range section.Keys() {
			enabled, err := key.Bool()
			if err != nil {
				return nil, &ValidationError{
					Field:   fmt.Sprintf("repos.%s", key.Name()),
					Value:   key.Value(),
					Message: "must be a boolean",
				}
			}
			config.Repos[key.Name()] = enabled
		}
	}

	if section, err := file.GetSection(sectionLabels); err == nil {
		config.Labels = make(map[string]string)
		for _, key := range section.Keys() {
			config.Labels[key.Name()] = key.Value()
		}
	}

	if section, err := file.GetSection(sectionOthers); err == nil {
		config.Others.TemplateRepo = section.Key("template-repo").String()
	}

	return config, nil
}

// SaveConfig saves configuration to the default location
func (c *Config) SaveConfig() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	return c.SaveConfigToPath(configPath)
}

// SaveConfigToPath saves configuration to a specific path, encoded by extension
func (c *Config) SaveConfigToPath(path string) error {
	// Create config directory if it doesn't exist
	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if DetectFormat(path) == FormatYAML {
		data, err := yaml.Marshal(c)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		if err := os.WriteFile(path, data, 0600); err != nil {
			return fmt.Errorf("failed to write config file: %w", err)
		}
		return nil
	}

	if err := c.toINI().SaveTo(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return os.Chmod(path, 0600)
}

func (c *Config) toINI() *ini.File {
	file := ini.Empty()

	github := file.Section(sectionGitHub)
	github.Key("token").SetValue(c.GitHub.Token)
	if c.GitHub.APIURL != "" {
		github.Key("api_url").SetValue(c.GitHub.APIURL)
	}

	repos := file.Section(sectionRepos)
	for _, name := range sortedKeys(c.Repos) {
		repos.Key(name).SetValue(fmt.Sprintf("%t", c.Repos[name]))
	}

	if c.Others.TemplateRepo != "" {
		file.Section(sectionOthers).Key("template-repo").SetValue(c.Others.TemplateRepo)
	} else {
		section := file.Section(sectionLabels)
		for _, name := range labels.LabelSet(c.Labels).Names() {
			section.Key(name).SetValue(c.Labels[name])
		}
	}

	return file
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".labelord", "config.ini"), nil
}

// EnabledRepositories returns the repositories switched on in the repos
// section, sorted by name
func (c *Config) EnabledRepositories() []string {
	var repos []string
	for _, name := range sortedKeys(c.Repos) {
		if c.Repos[name] {
			repos = append(repos, name)
		}
	}
	return repos
}

// DesiredLabels returns a copy of the explicit label map
func (c *Config) DesiredLabels() labels.LabelSet {
	return labels.LabelSet(c.Labels).Clone()
}

// Validate validates the configuration
func (c *Config) Validate() error {
	var errs ValidationErrors

	for _, name := range sortedKeys(c.Repos) {
		if _, _, err := SplitRepository(name); err != nil {
			errs.Add(fmt.Sprintf("repos.%s", name), name, err.Error())
		}
	}

	// the labels section is ignored when a template repository is set
	if repo := c.Others.TemplateRepo; repo != "" {
		if _, _, err := SplitRepository(repo); err != nil {
			errs.Add("others.template-repo", repo, err.Error())
		}
	} else {
		for _, name := range labels.LabelSet(c.Labels).Names() {
			if strings.TrimSpace(name) == "" {
				errs.Add("labels", name, "label name cannot be empty")
				continue
			}
			if color := c.Labels[name]; !labels.ValidColor(color) {
				errs.Add(fmt.Sprintf("labels.%s", name), color, "color must be 6 hex digits without '#'")
			}
		}
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// SplitRepository splits an owner/name reference
func SplitRepository(ref string) (owner, name string, err error) {
	parts := strings.Split(ref, "/")
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
		return "", "", fmt.Errorf("repository %q must be in owner/name form", ref)
	}
	return parts[0], parts[1], nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
