// Package metadata reads and writes the files kilm keeps inside a library
// directory: kilm.yaml, which describes the collection, and
// library_descriptions.yaml, which supplies the descr field of table
// entries.
package metadata

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/arthur-debert/kilm/pkg/errors"
	"github.com/arthur-debert/kilm/pkg/logging"
	"github.com/arthur-debert/kilm/pkg/types"
	"gopkg.in/yaml.v3"
)

const (
	// FileName is the collection metadata file
	FileName = "kilm.yaml"

	// DescriptionsFileName maps library names to descriptions
	DescriptionsFileName = "library_descriptions.yaml"

	// Tool is recorded in created_with and updated_with
	Tool = "kilm"

	// DefaultEnvVarPrefix prefixes generated path variable names
	DefaultEnvVarPrefix = "KICAD_LIB"
)

// Library directory layout
const (
	SymbolsDir    = "symbols"
	FootprintsDir = "footprints"
	TemplatesDir  = "templates"
)

// Capabilities records which library folders a collection has
type Capabilities struct {
	Symbols    bool `yaml:"symbols"`
	Footprints bool `yaml:"footprints"`
	Templates  bool `yaml:"templates"`
}

// Metadata is the content of kilm.yaml
type Metadata struct {
	Name         string       `yaml:"name"`
	Description  string       `yaml:"description,omitempty"`
	Type         string       `yaml:"type,omitempty"`
	Version      string       `yaml:"version,omitempty"`
	EnvVar       string       `yaml:"env_var,omitempty"`
	Capabilities Capabilities `yaml:"capabilities"`
	CreatedWith  string       `yaml:"created_with,omitempty"`
	UpdatedWith  string       `yaml:"updated_with,omitempty"`
}

// Default builds metadata for dir from its name and existing folders
func Default(fsys types.FS, dir string) *Metadata {
	name := filepath.Base(dir)
	return &Metadata{
		Name:         name,
		Description:  fmt.Sprintf("KiCad library %s", name),
		Type:         "github",
		Version:      "1.0.0",
		EnvVar:       GenerateEnvVarName(name, DefaultEnvVarPrefix),
		Capabilities: Scan(fsys, dir),
		CreatedWith:  Tool,
		UpdatedWith:  Tool,
	}
}

// Scan reports which of the library folders exist in dir
func Scan(fsys types.FS, dir string) Capabilities {
	isDir := func(name string) bool {
		info, err := fsys.Stat(filepath.Join(dir, name))
		return err == nil && info.IsDir()
	}
	return Capabilities{
		Symbols:    isDir(SymbolsDir),
		Footprints: isDir(FootprintsDir),
		Templates:  isDir(TemplatesDir),
	}
}

// GenerateEnvVarName derives a KiCad path variable name such as
// KICAD_LIB_MY_PARTS from a collection name
func GenerateEnvVarName(name, prefix string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToUpper(name) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	suffix := strings.TrimSuffix(b.String(), "_")
	switch {
	case prefix == "":
		return suffix
	case suffix == "":
		return prefix
	default:
		return prefix + "_" + suffix
	}
}

// Read loads kilm.yaml from dir. The bool is false when the file does
// not exist.
func Read(fsys types.FS, dir string) (*Metadata, bool, error) {
	path := filepath.Join(dir, FileName)
	if _, err := fsys.Stat(path); err != nil {
		return nil, false, nil
	}
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, false, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path).WithDetail("path", path)
	}

	var m Metadata
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, false, errors.Wrapf(err, errors.ErrConfigParse, "invalid %s", path).WithDetail("path", path)
	}
	return &m, true, nil
}

// Encode renders m as kilm.yaml content
func Encode(m *Metadata) ([]byte, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot encode metadata")
	}
	return data, nil
}

// Write stores m as dir/kilm.yaml
func Write(fsys types.FS, dir string, m *Metadata) error {
	path := filepath.Join(dir, FileName)
	data, err := Encode(m)
	if err != nil {
		return err
	}
	if err := fsys.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot write %s", path).WithDetail("path", path)
	}
	logger := logging.GetLogger("metadata")
	logger.Debug().Str("path", path).Msg("Wrote library metadata")
	return nil
}
