// Package cfgfile loads [helmet.Config] values from YAML, JSON,
// and TOML documents.
//
// Documents use the camelCase option names of the original helmet
// middleware, legacy names included:
//
//	contentSecurityPolicy:
//	  useDefaults: true
//	  directives:
//	    scriptSrc: ["'self'", "https://cdn.example.com"]
//	    upgradeInsecureRequests: null
//	hsts:
//	  maxAge: 86400
//	frameguard:
//	  action: deny
//	xPoweredBy: false
//
// An option whose value is true is enabled with its default settings;
// an option whose value is false is disabled; an option which is absent
// behaves as per its default. An option whose value is null is present,
// and enabled with its default settings; in particular, it conflicts
// with its alias. A setting whose value is the empty string is invalid.
// A directive whose value is null (or false, since TOML has no null)
// is removed from the default policy; a directive whose value is a single
// string has that string as its only source.
// Directives keep the order in which they appear in the document.
// Unknown keys are ignored.
package cfgfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/jub0bs/helmet"
	"github.com/jub0bs/helmet/internal/util"
)

// A Format is a configuration-file format.
type Format int

const (
	YAML Format = iota
	JSON
	TOML
)

func (f Format) String() string {
	switch f {
	case YAML:
		return "yaml"
	case JSON:
		return "json"
	case TOML:
		return "toml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatOf infers a configuration file's format from its extension.
func FormatOf(path string) (Format, error) {
	switch ext := util.ByteLowercase(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	case ".toml":
		return TOML, nil
	default:
		return 0, fmt.Errorf("unsupported config file extension %q", ext)
	}
}

// Load reads the configuration file at path,
// whose format is inferred from its extension.
func Load(path string) (*helmet.Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Decode(data, format)
}

// Decode decodes a configuration document.
// Errors that pertain to the meaning (rather than the syntax) of the
// document are of type [*github.com/jub0bs/helmet/cfgerrors.ConfigError].
//
// Decode does not validate the resulting configuration;
// [helmet.Compile] does.
func Decode(data []byte, format Format) (*helmet.Config, error) {
	var (
		doc any
		err error
	)
	switch format {
	case YAML, JSON:
		// JSON is a subset of YAML, and yaml.v3, unlike encoding/json,
		// preserves the order of keys.
		doc, err = decodeYAML(data)
	case TOML:
		doc, err = decodeTOML(data)
	default:
		return nil, fmt.Errorf("unsupported config format %v", format)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return toConfig(doc)
}

func decodeYAML(data []byte) (any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	return fromYAML(&root)
}

func decodeTOML(data []byte) (any, error) {
	var raw map[string]any
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, err
	}
	return fromTOML(raw, "", keyOrder(md)), nil
}
