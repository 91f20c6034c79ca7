package config

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/sheetsync/pkg/errors"
	"github.com/agentstation/sheetsync/pkg/source"
)

// sourcesFilePermissions is the mode for the persisted source list.
const sourcesFilePermissions = 0o644

// sourcesFile is the on-disk shape of the ordered source list.
type sourcesFile struct {
	Sources []source.Ref `yaml:"sources"`
}

// LoadSources reads the ordered source list. A missing file yields an
// empty list, not an error.
func LoadSources(path string) ([]source.Ref, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.WrapIO("read", path, err)
	}

	var file sourcesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}

	for _, ref := range file.Sources {
		if err := ref.Validate(); err != nil {
			return nil, errors.NewConfigError("sources", err.Error(), err)
		}
	}
	return file.Sources, nil
}

// SaveSources writes the ordered source list wholesale.
func SaveSources(path string, refs []source.Ref) error {
	data, err := yaml.Marshal(sourcesFile{Sources: refs})
	if err != nil {
		return errors.WrapParse("yaml", path, err)
	}

	if err := os.WriteFile(path, data, sourcesFilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// AddSource appends a ref to the list, rejecting duplicates.
func AddSource(path string, ref source.Ref) error {
	if err := ref.Validate(); err != nil {
		return errors.NewConfigError("sources", err.Error(), err)
	}

	refs, err := LoadSources(path)
	if err != nil {
		return err
	}

	for _, existing := range refs {
		if existing == ref {
			return errors.NewConfigError("sources", "source already configured: "+ref.String(), nil)
		}
	}

	return SaveSources(path, append(refs, ref))
}

// RemoveSource deletes a ref from the list, preserving order.
func RemoveSource(path string, ref source.Ref) error {
	refs, err := LoadSources(path)
	if err != nil {
		return err
	}

	kept := refs[:0]
	for _, existing := range refs {
		if existing != ref {
			kept = append(kept, existing)
		}
	}
	if len(kept) == len(refs) {
		return errors.NewNotFoundError("source", ref.String())
	}

	return SaveSources(path, kept)
}
