// Package config loads pool configuration from YAML.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/longerwu/wrpc-go/codec"
	"github.com/longerwu/wrpc-go/server"
)

// Config describes which wallet servers a pool should talk to and how the
// wire is encoded. Exactly one of Registry and Endpoints supplies the
// members; endpoints use the client's protocol@addr form.
type Config struct {
	Registry       string   `yaml:"registry"`
	Endpoints      []string `yaml:"endpoints"`
	Codec          string   `yaml:"codec"`
	Serialization  string   `yaml:"serialization"`
	Compress       string   `yaml:"compress"`
	ConnectTimeout int      `yaml:"connect_timeout_seconds"`
}

var codecTypes = map[string]codec.CodecType{
	"gob":   codec.CodecTypeGob,
	"frame": codec.CodecTypeFrame,
}

var serializationTypes = map[string]int{
	"pb":   codec.SerializationTypePB,
	"json": codec.SerializationTypeJson,
	"xml":  codec.SerializationTypeXml,
	"gob":  codec.SerializationTypeGob,
}

var compressTypes = map[string]int{
	"none":   codec.CompressTypeNoop,
	"gzip":   codec.CompressTypeGzip,
	"snappy": codec.CompressTypeSnappy,
	"zlib":   codec.CompressTypeZlib,
}

// Default returns the configuration used when the file leaves a field out.
func Default() *Config {
	return &Config{
		Codec:          "frame",
		Serialization:  "json",
		Compress:       "none",
		ConnectTimeout: 10,
	}
}

// Load reads a YAML config file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Registry == "" && len(c.Endpoints) == 0 {
		return fmt.Errorf("either registry or endpoints must be set")
	}
	if c.Registry != "" && len(c.Endpoints) > 0 {
		return fmt.Errorf("registry and endpoints are mutually exclusive")
	}
	if _, ok := codecTypes[c.Codec]; !ok {
		return fmt.Errorf("unknown codec %q", c.Codec)
	}
	if _, ok := serializationTypes[c.Serialization]; !ok {
		return fmt.Errorf("unknown serialization %q", c.Serialization)
	}
	if _, ok := compressTypes[c.Compress]; !ok {
		return fmt.Errorf("unknown compress %q", c.Compress)
	}
	if c.ConnectTimeout <= 0 {
		return fmt.Errorf("connect_timeout_seconds must be positive")
	}
	return nil
}

// Options translates the config into dial options for the client.
func (c *Config) Options() []server.OptionFunc {
	return []server.OptionFunc{
		server.WithCodecType(codecTypes[c.Codec]),
		server.WithSerializationType(serializationTypes[c.Serialization]),
		server.WithCompressType(compressTypes[c.Compress]),
		server.WithConnectTimeout(time.Duration(c.ConnectTimeout) * time.Second),
	}
}
