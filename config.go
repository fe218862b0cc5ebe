package iso8583

import (
	"encoding"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// RegistryConfig is the external form of a field table, typically loaded
// from YAML or JSON:
//
//	name: acquirer-x
//	bitmap_encoding: binary
//	fields:
//	  - {field: 2, length: LLVAR, max_length: 19, content: n}
//	  - {field: 3, length: fixed, max_length: 6, content: n}
type RegistryConfig struct {
	Name           string         `mapstructure:"name"`
	BitmapEncoding BitmapEncoding `mapstructure:"bitmap_encoding"`
	Fields         []FieldRule    `mapstructure:"fields"`
}

// Registry builds and validates the registry described by the config.
func (rc *RegistryConfig) Registry() (*Registry, error) {
	return NewRegistry(rc.Name, rc.Fields...)
}

// NewCodecFromConfig builds a codec for the config's registry and bitmap
// encoding. opts are applied after the config's own settings.
func NewCodecFromConfig(rc *RegistryConfig, opts ...CodecOption) (*Codec, error) {
	registry, err := rc.Registry()
	if err != nil {
		return nil, err
	}
	all := append([]CodecOption{WithBitmapEncoding(rc.BitmapEncoding)}, opts...)
	return NewCodec(registry, all...), nil
}

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

// textUnmarshalerHook lets class names such as "LLVAR" or "ans" decode into
// LengthClass, ContentClass and BitmapEncoding.
func textUnmarshalerHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || !reflect.PointerTo(to).Implements(textUnmarshalerType) {
		return data, nil
	}
	v := reflect.New(to)
	if err := v.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(data.(string))); err != nil {
		return nil, err
	}
	return v.Elem().Interface(), nil
}

// ParseConfigMap decodes a generic configuration tree, such as a section of
// a larger application config, into a RegistryConfig. Unknown keys are
// rejected.
func ParseConfigMap(raw map[string]interface{}) (*RegistryConfig, error) {
	var rc RegistryConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       textUnmarshalerHook,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           &rc,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRegistry, err)
	}
	return &rc, nil
}

func ParseConfigYAML(data []byte) (*RegistryConfig, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse registry config: %w", err)
	}
	return ParseConfigMap(raw)
}

func ParseConfigJSON(data []byte) (*RegistryConfig, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse registry config: %w", err)
	}
	return ParseConfigMap(raw)
}

// LoadConfigFile reads a registry config, choosing the format from the file
// extension (.yaml, .yml or .json).
func LoadConfigFile(path string) (*RegistryConfig, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseConfigYAML(content)
	case ".json":
		return ParseConfigJSON(content)
	default:
		return nil, fmt.Errorf("unsupported config file extension %q", filepath.Ext(path))
	}
}

func LoadRegistryYAML(data []byte) (*Registry, error) {
	rc, err := ParseConfigYAML(data)
	if err != nil {
		return nil, err
	}
	return rc.Registry()
}

func LoadRegistryJSON(data []byte) (*Registry, error) {
	rc, err := ParseConfigJSON(data)
	if err != nil {
		return nil, err
	}
	return rc.Registry()
}

func LoadRegistryMap(raw map[string]interface{}) (*Registry, error) {
	rc, err := ParseConfigMap(raw)
	if err != nil {
		return nil, err
	}
	return rc.Registry()
}

// LoadRegistryFile is LoadConfigFile followed by building the registry.
func LoadRegistryFile(path string) (*Registry, error) {
	rc, err := LoadConfigFile(path)
	if err != nil {
		return nil, err
	}
	return rc.Registry()
}
