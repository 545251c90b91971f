package kestrel

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadClientConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.yaml")
	doc := `
read:
  use_compression: true
  compression_threshold: 64
write:
  send_key: true
  durable_delete: true
map:
  order: 1
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadClientConfig(path)
	if err != nil {
		t.Fatalf("LoadClientConfig failed: %v", err)
	}
	if !cfg.Read.UseCompression || cfg.Read.CompressionThreshold != 64 {
		t.Fatalf("read policy = %+v", cfg.Read)
	}
	if !cfg.Write.SendKey || !cfg.Write.DurableDelete {
		t.Fatalf("write policy = %+v", cfg.Write)
	}
	// unset fields keep their defaults
	if cfg.Write.CompressionThreshold != defaultCompressionThreshold {
		t.Fatalf("write threshold = %d, wanted default %d", cfg.Write.CompressionThreshold, defaultCompressionThreshold)
	}
	if cfg.Map.Order != MapKeyOrdered {
		t.Fatalf("map order = %d, wanted %d", cfg.Map.Order, MapKeyOrdered)
	}
}

func TestLoadClientConfigErrors(t *testing.T) {
	if _, err := LoadClientConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("missing file did not fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("read: ["), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := LoadClientConfig(path); err == nil {
		t.Fatalf("malformed file did not fail")
	}
}
