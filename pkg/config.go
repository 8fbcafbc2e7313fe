package structhash

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-ini/ini"
)

// Config represents the structhash configuration file. The library itself
// takes explicit options; the config layer supplies defaults to the CLI and
// to embedding applications that want user-tunable behavior.
type Config struct {
	configPath string
	ini        *ini.File
}

// HashConfig represents hash algorithm configuration
type HashConfig struct {
	Default string // Default hash algorithm name
}

// BaseConfig represents digest output configuration
type BaseConfig struct {
	Default string // Default output base: hex, abc, alphanum, dec
}

// FileConfig represents file hashing configuration
type FileConfig struct {
	Blocksize string // Read chunk size as a human size string ("1M")
	Stride    int    // Sampling stride (1 = hash everything)
	MaxBytes  int64  // Byte cap, negative = unlimited
}

// LoadConfig loads configuration from <dir>/config, creating a default file
// when none exists.
func LoadConfig(dir string) (*Config, error) {
	configPath := filepath.Join(dir, "config")
	cfg := &Config{configPath: configPath}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg.ini = ini.Empty()
		if err := cfg.setDefaults(); err != nil {
			return nil, fmt.Errorf("failed to set default config: %w", err)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create config dir: %w", err)
		}
		if err := cfg.Save(); err != nil {
			return nil, fmt.Errorf("failed to save default config: %w", err)
		}
	} else {
		iniFile, err := ini.Load(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
		cfg.ini = iniFile
	}

	return cfg, nil
}

// setDefaults sets default configuration values
func (c *Config) setDefaults() error {
	hashSection, err := c.ini.NewSection("hash")
	if err != nil {
		return fmt.Errorf("failed to create hash section: %w", err)
	}
	if _, err := hashSection.NewKey("default", DefaultHasher); err != nil {
		return fmt.Errorf("failed to set default hash algorithm: %w", err)
	}

	baseSection, err := c.ini.NewSection("base")
	if err != nil {
		return fmt.Errorf("failed to create base section: %w", err)
	}
	if _, err := baseSection.NewKey("default", BaseHex); err != nil {
		return fmt.Errorf("failed to set default base: %w", err)
	}

	fileSection, err := c.ini.NewSection("file")
	if err != nil {
		return fmt.Errorf("failed to create file section: %w", err)
	}
	if _, err := fileSection.NewKey("blocksize", "1M"); err != nil {
		return fmt.Errorf("failed to set default blocksize: %w", err)
	}
	if _, err := fileSection.NewKey("stride", "1"); err != nil {
		return fmt.Errorf("failed to set default stride: %w", err)
	}
	if _, err := fileSection.NewKey("maxbytes", "-1"); err != nil {
		return fmt.Errorf("failed to set default maxbytes: %w", err)
	}

	return nil
}

// GetHashConfig returns the hash configuration
func (c *Config) GetHashConfig() *HashConfig {
	hashConfig := &HashConfig{
		Default: DefaultHasher, // fallback default
	}
	if c.ini.HasSection("hash") {
		section := c.ini.Section("hash")
		if section.HasKey("default") {
			hashConfig.Default = section.Key("default").String()
		}
	}
	return hashConfig
}

// GetBaseConfig returns the output base configuration
func (c *Config) GetBaseConfig() *BaseConfig {
	baseConfig := &BaseConfig{
		Default: BaseHex, // fallback default
	}
	if c.ini.HasSection("base") {
		section := c.ini.Section("base")
		if section.HasKey("default") {
			baseConfig.Default = section.Key("default").String()
		}
	}
	return baseConfig
}

// GetFileConfig returns the file hashing configuration
func (c *Config) GetFileConfig() *FileConfig {
	fileConfig := &FileConfig{
		Blocksize: "1M", // fallback defaults
		Stride:    1,
		MaxBytes:  NoLimit,
	}
	if c.ini.HasSection("file") {
		section := c.ini.Section("file")
		if section.HasKey("blocksize") {
			if blocksize := section.Key("blocksize").String(); blocksize != "" {
				fileConfig.Blocksize = blocksize
			}
		}
		if section.HasKey("stride") {
			if stride, err := section.Key("stride").Int(); err == nil {
				fileConfig.Stride = stride
			}
		}
		if section.HasKey("maxbytes") {
			if maxBytes, err := section.Key("maxbytes").Int64(); err == nil {
				fileConfig.MaxBytes = maxBytes
			}
		}
	}
	return fileConfig
}

// FileOptions converts the file configuration into ready HashFile options.
func (c *Config) FileOptions() (*FileOptions, error) {
	fileConfig := c.GetFileConfig()
	blocksize, err := ParseHumanSize(fileConfig.Blocksize)
	if err != nil {
		return nil, fmt.Errorf("invalid blocksize in config: %w", err)
	}
	opts := DefaultFileOptions()
	opts.Blocksize = blocksize
	opts.Stride = fileConfig.Stride
	opts.MaxBytes = fileConfig.MaxBytes
	opts.Hasher = c.GetHashConfig().Default
	opts.Base = c.GetBaseConfig().Default
	return opts, nil
}

// SetHashDefault sets the default hash algorithm
func (c *Config) SetHashDefault(algorithm string) error {
	if err := ValidateHasherName(algorithm); err != nil {
		return err
	}
	c.ini.Section("hash").Key("default").SetValue(algorithm)
	return c.Save()
}

// SetBaseDefault sets the default output base
func (c *Config) SetBaseDefault(base string) error {
	if err := ValidateBaseName(base); err != nil {
		return err
	}
	c.ini.Section("base").Key("default").SetValue(base)
	return c.Save()
}

// Save saves the configuration to disk
func (c *Config) Save() error {
	return c.ini.SaveTo(c.configPath)
}

// ApplyOverrides applies command-line overrides to the configuration.
// Accepts strings like "default:sha256", "base:abc", "blocksize:64K",
// "stride:4", "maxbytes:1048576".
func (c *Config) ApplyOverrides(overrides []string) error {
	for _, override := range overrides {
		parts := strings.SplitN(override, ":", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid override format '%s', expected 'key:value'", override)
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch key {
		case "default":
			c.ini.Section("hash").Key("default").SetValue(value)
		case "base":
			c.ini.Section("base").Key("default").SetValue(value)
		case "blocksize":
			c.ini.Section("file").Key("blocksize").SetValue(value)
		case "stride":
			c.ini.Section("file").Key("stride").SetValue(value)
		case "maxbytes":
			c.ini.Section("file").Key("maxbytes").SetValue(value)
		default:
			return fmt.Errorf("unsupported override key '%s' (supported: default, base, blocksize, stride, maxbytes)", key)
		}
	}
	return nil
}

// ValidateHasherName validates that a hash algorithm is in the catalog
func ValidateHasherName(name string) error {
	_, err := GetHasher(name)
	return err
}

// ValidateBaseName validates that a base shorthand is recognized
func ValidateBaseName(base string) error {
	_, err := rectifyBase(base, nil)
	return err
}

// ValidateStride validates that a sampling stride is usable
func ValidateStride(stride int) error {
	if stride < 1 {
		return fmt.Errorf("stride must be at least 1, got: %d", stride)
	}
	return nil
}

// ValidateMaxBytes validates a maxbytes override string
func ValidateMaxBytes(value string) error {
	if _, err := strconv.ParseInt(value, 10, 64); err != nil {
		return fmt.Errorf("invalid maxbytes value %q: %w", value, err)
	}
	return nil
}
