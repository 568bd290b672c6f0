package desired

import (
	"strings"

	"github.com/arthur-debert/kilm/pkg/errors"
	"github.com/arthur-debert/kilm/pkg/types"
)

// LibraryPath returns the location of a library relative to its
// collection root, e.g. symbols/Parts.kicad_sym
func LibraryPath(kind types.Kind, name string) string {
	if kind == types.KindFootprint {
		return "footprints/" + name + ".pretty"
	}
	return "symbols/" + name + ".kicad_sym"
}

// FormatURI builds the uri of a library below base. base is either a
// KiCad path variable name, which yields ${NAME}/..., or an absolute
// path, which is used as is. A ${/absolute} wrapper is unwrapped.
// Backslashes become forward slashes.
func FormatURI(base string, kind types.Kind, name string) (string, error) {
	if base == "" {
		return "", errors.New(errors.ErrInvalidInput, "library base path cannot be empty")
	}
	if name == "" {
		return "", errors.New(errors.ErrInvalidInput, "library name cannot be empty")
	}

	var prefix string
	if strings.HasPrefix(base, "${") {
		if !strings.HasSuffix(base, "}") {
			return "", errors.Newf(errors.ErrInvalidInput, "invalid path variable reference %q", base)
		}
		inner := base[2 : len(base)-1]
		if isAbsolute(inner) {
			prefix = inner
		} else {
			prefix = "${" + inner + "}"
		}
	} else if isAbsolute(base) {
		prefix = base
	} else {
		prefix = "${" + base + "}"
	}

	prefix = strings.TrimRight(prefix, `/\`)
	uri := prefix + "/" + LibraryPath(kind, name)
	return strings.ReplaceAll(uri, `\`, "/"), nil
}

// isAbsolute recognizes Unix, UNC and drive letter paths regardless of the
// host OS, since table uris are shared between machines
func isAbsolute(p string) bool {
	switch {
	case strings.HasPrefix(p, "/"):
		return true
	case strings.HasPrefix(p, `\`) && len(p) > 1:
		return true
	case len(p) > 2 && p[1] == ':':
		return true
	}
	return false
}
