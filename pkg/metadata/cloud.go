package metadata

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/kilm/pkg/errors"
	"github.com/arthur-debert/kilm/pkg/logging"
	"github.com/arthur-debert/kilm/pkg/types"
	"github.com/tidwall/jsonc"
)

// CloudFileName marks a 3D model directory. It is JSON, unlike kilm.yaml,
// because the directory usually lives in a synced cloud folder.
const CloudFileName = ".kilm_metadata"

// ModelExtensions are the 3D model formats KiCad loads
var ModelExtensions = []string{".step", ".stp", ".wrl", ".wings"}

// CloudMetadata is the content of .kilm_metadata
type CloudMetadata struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type"`
	Version     string `json:"version,omitempty"`
	ModelCount  int    `json:"model_count"`
	CreatedWith string `json:"created_with,omitempty"`
	UpdatedWith string `json:"updated_with,omitempty"`
}

// DefaultCloud builds metadata for the 3D model directory dir
func DefaultCloud(fsys types.FS, dir string) (*CloudMetadata, error) {
	count, err := CountModels(fsys, dir)
	if err != nil {
		return nil, err
	}
	name := filepath.Base(dir)
	return &CloudMetadata{
		Name:        name,
		Description: fmt.Sprintf("KiCad 3D model library %s", name),
		Type:        "cloud",
		Version:     "1.0.0",
		ModelCount:  count,
		CreatedWith: Tool,
		UpdatedWith: Tool,
	}, nil
}

// ReadCloud loads dir/.kilm_metadata. The bool is false when the file
// does not exist. Comments and trailing commas are tolerated.
func ReadCloud(fsys types.FS, dir string) (*CloudMetadata, bool, error) {
	path := filepath.Join(dir, CloudFileName)
	if _, err := fsys.Stat(path); err != nil {
		return nil, false, nil
	}
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, false, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path).WithDetail("path", path)
	}

	var m CloudMetadata
	if err := json.Unmarshal(jsonc.ToJSON(data), &m); err != nil {
		return nil, false, errors.Wrapf(err, errors.ErrConfigParse, "invalid %s", path).WithDetail("path", path)
	}
	return &m, true, nil
}

// WriteCloud stores m as dir/.kilm_metadata
func WriteCloud(fsys types.FS, dir string, m *CloudMetadata) error {
	path := filepath.Join(dir, CloudFileName)
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot encode 3D model metadata")
	}
	if err := fsys.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot write %s", path).WithDetail("path", path)
	}
	logger := logging.GetLogger("metadata")
	logger.Debug().Str("path", path).Int("models", m.ModelCount).Msg("Wrote 3D model metadata")
	return nil
}

// CountModels counts 3D model files below dir. Extensions match without
// regard to case since exporters disagree on .STEP and .step.
func CountModels(fsys types.FS, dir string) (int, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrFileAccess, "cannot list %s", dir).WithDetail("path", dir)
	}

	count := 0
	for _, e := range entries {
		if e.IsDir() {
			n, err := CountModels(fsys, filepath.Join(dir, e.Name()))
			if err != nil {
				return 0, err
			}
			count += n
			continue
		}
		if isModel(e.Name()) {
			count++
		}
	}
	return count, nil
}

func isModel(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, m := range ModelExtensions {
		if ext == m {
			return true
		}
	}
	return false
}
