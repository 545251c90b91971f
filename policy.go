package kestrel

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BasePolicy carries the per-command knobs consulted by the codec layer.
// Transport-level policy (timeouts, retries) lives with the transport.
type BasePolicy struct {
	// SendKey stores the user key with the record instead of only its digest.
	SendKey bool `yaml:"send_key"`

	// UseCompression compresses command payloads at or above
	// CompressionThreshold bytes.
	UseCompression       bool `yaml:"use_compression"`
	CompressionThreshold int  `yaml:"compression_threshold"`
}

// WritePolicy extends BasePolicy for write commands.
type WritePolicy struct {
	BasePolicy    `yaml:",inline"`
	DurableDelete bool `yaml:"durable_delete"`
}

// ClientConfig aggregates the default policies, loadable from a YAML file.
type ClientConfig struct {
	Read  BasePolicy  `yaml:"read"`
	Write WritePolicy `yaml:"write"`
	Map   MapPolicy   `yaml:"map"`
}

const defaultCompressionThreshold = 128

func DefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		Read:  BasePolicy{CompressionThreshold: defaultCompressionThreshold},
		Write: WritePolicy{BasePolicy: BasePolicy{CompressionThreshold: defaultCompressionThreshold}},
		Map:   MapPolicy{Order: MapUnordered},
	}
}

// LoadClientConfig reads a YAML policy file over the defaults.
func LoadClientConfig(path string) (*ClientConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultClientConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid client config %s: %w", path, err)
	}
	return cfg, nil
}

// MaybeCompress applies the policy's compression decision to a packed
// payload, reporting whether compression was applied.
func (p *BasePolicy) MaybeCompress(payload []byte) ([]byte, bool, error) {
	threshold := p.CompressionThreshold
	if threshold <= 0 {
		threshold = defaultCompressionThreshold
	}
	if !p.UseCompression || len(payload) < threshold {
		return payload, false, nil
	}
	out, err := CompressPayload(payload)
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}
