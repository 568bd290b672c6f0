package metadata

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/kilm/pkg/logging"
	"github.com/arthur-debert/kilm/pkg/types"
	"gopkg.in/yaml.v3"
)

// DescriptionsTemplate is written by kilm init
const DescriptionsTemplate = `# Library Descriptions for KiCad
# Format:
#   library_name: "Description text"
#
# Example:
#   Symbols_library: "Sample symbol library description"

# Symbol library descriptions
symbols:
  Symbols_library: "Sample symbol library description"

# Footprint library descriptions
footprints:
  Footprints_library: "Sample footprint library description"
`

// Descriptions holds library_descriptions.yaml
type Descriptions struct {
	Symbols    map[string]string `yaml:"symbols"`
	Footprints map[string]string `yaml:"footprints"`
}

// ReadDescriptions loads dir/library_descriptions.yaml. A missing or
// unreadable file yields empty descriptions; every library then gets the
// default text.
func ReadDescriptions(fsys types.FS, dir string) *Descriptions {
	logger := logging.GetLogger("metadata")
	path := filepath.Join(dir, DescriptionsFileName)

	d := &Descriptions{}
	data, err := fsys.ReadFile(path)
	if err != nil {
		return d
	}
	if err := yaml.Unmarshal(data, d); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("Ignoring unreadable library descriptions")
		return &Descriptions{}
	}
	return d
}

// Lookup returns the description for a library, or a generated default
func (d *Descriptions) Lookup(kind types.Kind, name string) string {
	if d != nil {
		m := d.Symbols
		if kind == types.KindFootprint {
			m = d.Footprints
		}
		if v, ok := m[name]; ok && v != "" {
			return v
		}
	}
	return fmt.Sprintf("%s %s", name, kind.Label())
}
