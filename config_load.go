package jsonbytes

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	j "github.com/goccy/go-json"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// ConfigFile is the on-disk form of a Config plus the options the CLI
// applies with it.
//
//	bytes:
//	  format: hex
//	  hexPrefix: true
//	maxDepth: 64
//	pretty: true
type ConfigFile struct {
	Bytes    BytesSection `yaml:"bytes" json:"bytes"`
	MaxDepth int          `yaml:"maxDepth" json:"maxDepth"`
	Pretty   bool         `yaml:"pretty" json:"pretty"`
	Indent   string       `yaml:"indent" json:"indent"`
}

type BytesSection struct {
	Format          BytesFormat `yaml:"format" json:"format"`
	HexPrefix       bool        `yaml:"hexPrefix" json:"hexPrefix"`
	HexChecksumCase bool        `yaml:"hexChecksumCase" json:"hexChecksumCase"`
}

// Config builds the codec configuration described by the file.
func (f ConfigFile) Config() Config {
	c := DefaultConfig().WithBytesFormat(f.Bytes.Format)
	if f.Bytes.HexPrefix {
		c = c.EnableHexPrefix()
	}
	if f.Bytes.HexChecksumCase {
		c = c.EnableHexChecksumCase()
	}
	return c
}

// Options returns the call options described by the file.
func (f ConfigFile) Options() Options {
	return Options{MaxDepth: f.MaxDepth, Indent: f.Indent}
}

// LoadConfig reads a YAML (.yaml, .yml) or JSON (.json, .jsonc) config file.
func LoadConfig(path string) (ConfigFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ConfigFile{}, fmt.Errorf("reading %s: %w", path, err)
	}
	f, err := ParseConfig(data, filepath.Ext(path))
	if err != nil {
		return ConfigFile{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// ParseConfig parses config data in the format named by ext. JSON input may
// carry comments and trailing commas.
func ParseConfig(data []byte, ext string) (ConfigFile, error) {
	var f ConfigFile
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return ConfigFile{}, fmt.Errorf("parsing yaml config: %w", err)
		}
	case ".json", ".jsonc", "":
		if err := j.Unmarshal(jsonc.ToJSON(data), &f); err != nil {
			return ConfigFile{}, fmt.Errorf("parsing json config: %w", err)
		}
	default:
		return ConfigFile{}, fmt.Errorf("unsupported config extension %q", ext)
	}
	return f, nil
}
