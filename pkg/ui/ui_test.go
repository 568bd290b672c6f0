package ui_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/arthur-debert/kilm/pkg/errors"
	"github.com/arthur-debert/kilm/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected ui.Format
		wantErr  bool
	}{
		{"", ui.FormatAuto, false},
		{"auto", ui.FormatAuto, false},
		{"TERM", ui.FormatTerminal, false},
		{"terminal", ui.FormatTerminal, false},
		{"plain", ui.FormatText, false},
		{"json", ui.FormatJSON, false},
		{"yaml", ui.FormatAuto, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ui.ParseFormat(tt.input)
			if tt.wantErr {
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.NotEqual(t, "unknown", got.String())
		})
	}
	assert.Equal(t, "unknown", ui.Format(99).String())
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, ui.FormatText, ui.DetectFormat(&bytes.Buffer{}))

	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, ui.FormatText, ui.DetectFormat(&bytes.Buffer{}))
}

func TestNewRendererUnknown(t *testing.T) {
	_, err := ui.NewRenderer(ui.Format(42), &bytes.Buffer{})
	assert.Error(t, err)
}

func sampleReport() *ui.Report {
	return &ui.Report{
		Command: "setup",
		Target:  "/home/ada/.config/kicad/9.0",
		Changes: []string{
			"+ add symbol library Parts (${KICAD_USER_LIB}/symbols/Parts.kicad_sym) [pinned]",
			"~ set path variable KICAD_USER_LIB: (unset) -> /srv/libs",
		},
		Summary:  "1 addition, 1 path variable",
		Written:  []ui.Written{{Path: "/p/sym-lib-table", Backup: "/p/sym-lib-table.backup.1"}},
		Pruned:   []string{"/p/sym-lib-table.backup.0"},
		Warnings: []string{"cannot pin symbol:Ghost: library is not configured"},
	}
}

func TestTextRenderReport(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatText, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderReport(sampleReport()))
	assert.Equal(t, `/home/ada/.config/kicad/9.0
  + add symbol library Parts (${KICAD_USER_LIB}/symbols/Parts.kicad_sym) [pinned]
  ~ set path variable KICAD_USER_LIB: (unset) -> /srv/libs
wrote /p/sym-lib-table (backup /p/sym-lib-table.backup.1)
removed old backup /p/sym-lib-table.backup.0
warning: cannot pin symbol:Ghost: library is not configured
1 addition, 1 path variable
`, buf.String())
}

func TestTextRenderReportDryRunAndEmpty(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatText, &buf)
	require.NoError(t, err)

	rep := sampleReport()
	rep.DryRun = true
	rep.Written, rep.Pruned, rep.Warnings = nil, nil, nil
	require.NoError(t, r.RenderReport(rep))
	assert.Contains(t, buf.String(), "(dry run)")
	assert.Contains(t, buf.String(), "would apply: 1 addition")

	buf.Reset()
	require.NoError(t, r.RenderReport(&ui.Report{Target: "/hook", Summary: "no changes"}))
	assert.Equal(t, "/hook\n  Nothing to do, already up to date\n", buf.String())
}

func TestJSONRender(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatJSON, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderReport(&ui.Report{Command: "apply", Target: "/x"}))
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "apply", decoded["command"])
	assert.Equal(t, []interface{}{}, decoded["changes"])

	buf.Reset()
	require.NoError(t, r.RenderError(errors.New(errors.ErrConfigNotFound, "nope")))
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "CONFIG_NOT_FOUND", decoded["code"])
}

func TestStatusMarkdown(t *testing.T) {
	s := &ui.Status{
		Profile:  "/cfg/kicad/9.0",
		Version:  "9.0",
		Strategy: "platform",
		Libraries: []ui.LibraryStatus{
			{Kind: "symbol", Name: "Device", URI: "${KICAD9_SYMBOL_DIR}/Device.kicad_sym"},
			{Kind: "symbol", Name: "A|B", URI: "/a", Pinned: true},
			{Kind: "footprint", Name: "Conn", URI: "/c.pretty"},
		},
		Variables: []ui.PathVariable{{Name: "Z", Value: "1"}, {Name: "A", Value: "2"}},
	}

	md := s.Markdown()
	assert.Contains(t, md, "- **Location:** `/cfg/kicad/9.0`")
	assert.Contains(t, md, "## Symbol libraries (2)")
	assert.Contains(t, md, "| A\\|B | yes | `/a` |")
	assert.Contains(t, md, "## Footprint libraries (1)")
	assert.Less(t, bytes.Index([]byte(md), []byte("`A` = `2`")), bytes.Index([]byte(md), []byte("`Z` = `1`")))

	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatText, &buf)
	require.NoError(t, err)
	require.NoError(t, r.RenderStatus(s))
	assert.Equal(t, md, buf.String())

	empty := (&ui.Status{Profile: "/p"}).Markdown()
	assert.Contains(t, empty, "No libraries are configured.")
}

func TestStyleDiffLine(t *testing.T) {
	for _, line := range []string{"+ add", "- remove", "~ pin", "    @@ -1 +1 @@", "    +new", "    ---", "     context", "plain", ""} {
		assert.Contains(t, ui.StyleDiffLine(line), line)
	}
}
