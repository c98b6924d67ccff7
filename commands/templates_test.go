package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paintquote/quote"
	"paintquote/services"
	"paintquote/testhelpers"
)

const templatesYAML = `templates:
  - name: Standard
    config:
      organization: room
      show_quantities: true
  - name: By floor
    config:
      organization: floor
      item_composition: separated
      material_strategy: allowance
`

func TestTemplatesImportExport(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	org := testhelpers.CreateTestOrganization(t, app, "Acme", 0)
	testhelpers.CreateTestTemplate(t, app, org.Id, "standard", quote.DefaultConfig())
	dir := t.TempDir()

	in := filepath.Join(dir, "in.yaml")
	require.NoError(t, os.WriteFile(in, []byte(templatesYAML), 0o644))

	var out bytes.Buffer
	cmd := NewTemplatesCommand(app)
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"import", "--org", org.Id, in})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "1 created, 1 updated")

	list, err := services.NewRecordTemplateStore(app).List(org.Id)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "By floor", list[0].Name)
	assert.Equal(t, "Standard", list[1].Name)

	exported := filepath.Join(dir, "out.yaml")
	out.Reset()
	cmd = NewTemplatesCommand(app)
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"export", "--org", org.Id, exported})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Exported 2 templates")

	f, err := os.Open(exported)
	require.NoError(t, err)
	defer f.Close()
	entries, err := services.ReadTemplateFile(f)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestTemplatesCommand_Errors(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	org := testhelpers.CreateTestOrganization(t, app, "Acme", 0)
	file := filepath.Join(t.TempDir(), "in.yaml")
	require.NoError(t, os.WriteFile(file, []byte(templatesYAML), 0o644))

	tests := []struct {
		name string
		args []string
	}{
		{"missing org flag", []string{"import", file}},
		{"unknown org", []string{"import", "--org", "missing", file}},
		{"missing file", []string{"import", "--org", org.Id, filepath.Join(t.TempDir(), "nope.yaml")}},
		{"no file argument", []string{"export", "--org", org.Id}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewTemplatesCommand(app)
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(tt.args)
			assert.Error(t, cmd.Execute())
		})
	}
}
