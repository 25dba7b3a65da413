package config

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/folashadea/Quantum-Entanglement-Network/internal/flags"
)

// SaveFlags rewrites the flags section of the config file, leaving every other
// section and its comments as they were.
func SaveFlags(configPath string, values map[string]bool) error {
	if err := ValidateFlags(values); err != nil {
		return err
	}

	section := &yaml.Node{}
	if err := section.Encode(values); err != nil {
		return fmt.Errorf("encoding flags: %w", err)
	}
	return updateConfig(configPath, "flags", section)
}

// SetFlag stores one flag value on top of current and the catalog defaults.
func SetFlag(configPath string, name string, enabled bool, current map[string]bool) error {
	values := flags.Defaults()
	maps.Copy(values, current)
	values[name] = enabled
	return SaveFlags(configPath, values)
}

func updateConfig(configPath, key string, section *yaml.Node) error {
	doc, err := readDocument(configPath)
	if err != nil {
		return err
	}
	if err := upsertKey(doc, key, section); err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return writeFileAtomic(configPath, buf.Bytes())
}

// readDocument parses configPath into a node tree. A missing or empty file
// yields a document holding an empty mapping.
func readDocument(configPath string) (*yaml.Node, error) {
	data, err := os.ReadFile(configPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	doc := &yaml.Node{}
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, doc); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}
	if doc.Kind == 0 {
		doc.Kind = yaml.DocumentNode
	}
	if doc.Kind == yaml.DocumentNode && len(doc.Content) == 0 {
		doc.Content = []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}
	}
	return doc, nil
}

func upsertKey(doc *yaml.Node, key string, value *yaml.Node) error {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return errors.New("config root must be a mapping")
	}
	root := doc.Content[0]

	// Mapping content alternates key and value nodes.
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == key {
			root.Content[i+1] = value
			return nil
		}
	}
	root.Content = append(root.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, value)
	return nil
}

// writeFileAtomic replaces path with data through a temp file in the same
// directory, so readers never see a half-written config.
func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing config: %w", err)
	}
	return nil
}
