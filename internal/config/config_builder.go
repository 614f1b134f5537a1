package config

import (
	"fmt"

	"dario.cat/mergo"
)

// configBuilder accumulates configuration from multiple sources and produces
// the final validated StructuredConfig. Sources are applied in call order;
// a later source only fills fields still at their zero value.
type configBuilder struct {
	cfg *StructuredConfig
	err error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{cfg: &StructuredConfig{}}
}

func (b *configBuilder) withEnv() *configBuilder {
	if b.err != nil {
		return b
	}
	b.err = parseEnv(b.cfg)

	return b
}

func (b *configBuilder) withFlags() *configBuilder {
	if b.err != nil {
		return b
	}
	b.err = parseFlags(b.cfg)

	return b
}

func (b *configBuilder) withJSON() *configBuilder {
	if b.err != nil {
		return b
	}
	b.err = parseJSON(b.cfg)

	return b
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, b.err
	}

	applyDefaults(b.cfg)

	if err := validate(b.cfg); err != nil {
		return nil, err
	}

	return b.cfg, nil
}

// mergeConfigs copies non-zero fields from src into zero fields of dst.
func mergeConfigs(dst, src *StructuredConfig) error {
	if err := mergo.Merge(dst, src); err != nil {
		return fmt.Errorf("%w: %w", ErrConfigMerging, err)
	}

	return nil
}
