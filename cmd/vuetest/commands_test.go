package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vuetest "github.com/Pr0ny/vue-template-tester"
	"github.com/Pr0ny/vue-template-tester/internal/settings"
)

const buttonComponent = `<template>
  <button data-test="save">Save</button>
  <button data-test="cancel">Cancel</button>
</template>
`

// resetFlags restores every flag to its default so runs of the shared rootCmd stay independent
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the CLI with args in a fresh project directory and returns stdout
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetKoanf()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	err := rootCmd.Execute()
	return out.String(), err
}

// inProject switches to a temp directory holding files
func inProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	t.Chdir(dir)
	return dir
}

func TestInitCommand_CreatesConfigFile(t *testing.T) {
	inProject(t, nil)

	out, err := execute(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Created .vuetest.yaml")

	// Verify file was created
	data, err := os.ReadFile(".vuetest.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "generate:")
	assert.Contains(t, string(data), "scan:")
	assert.Contains(t, string(data), "log:")
}

func TestInitCommand_DefaultConfigLoads(t *testing.T) {
	inProject(t, nil)
	require.NoError(t, os.WriteFile(".vuetest.yaml", []byte(defaultConfig), 0644))

	resetKoanf()
	require.NoError(t, loadConfigFromPath(".vuetest.yaml"))
	assert.Equal(t, []string{"src/**/*.vue"}, k.Strings("generate.paths"))
	assert.Equal(t, ".vuetest/settings.yaml", k.String("settings"))
	assert.False(t, k.Exists("generate.local-path"), "settings keys stay commented out")
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	inProject(t, map[string]string{".vuetest.yaml": "existing"})

	_, err := execute(t, "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	inProject(t, map[string]string{".vuetest.yaml": "existing"})

	_, err := execute(t, "init", "--force")
	require.NoError(t, err)

	data, err := os.ReadFile(".vuetest.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "generate:")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "vuetest dev\n", out)
}

func TestCompletionCommand(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "vuetest")

	_, err = execute(t, "completion", "tcsh")
	require.Error(t, err)
}

func TestGenerateCommand_WritesSpec(t *testing.T) {
	inProject(t, map[string]string{
		"src/components/Foo.vue":     buttonComponent,
		"src/components/Nothing.vue": "<template><p /></template>\n",
	})

	out, err := execute(t, "generate")
	require.NoError(t, err)
	assert.Contains(t, out, "generated "+filepath.Join("src", "components", "Foo.vue"))
	assert.Contains(t, out, "(2 cases)")
	assert.Contains(t, out, "* nothing to generate: 1")

	data, err := os.ReadFile(filepath.Join("src", "components", "Foo.spec.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "import Foo from '@/components/Foo.vue'")
	assert.Contains(t, string(data), `wrapper.find('[data-test="save"]')`)
}

func TestRootCommand_DefaultsToGenerate(t *testing.T) {
	inProject(t, map[string]string{"src/Foo.vue": buttonComponent})

	_, err := execute(t, "--scaffold", "minimal", "--ext", "js", "src/Foo.vue")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join("src", "Foo.spec.js"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "vi.mock(")
}

func TestGenerateCommand_DryRunJSON(t *testing.T) {
	inProject(t, map[string]string{"src/Foo.vue": buttonComponent})

	out, err := execute(t, "generate", "--dry-run", "--output-format", "json", "--local-path")
	require.NoError(t, err)

	var output vuetest.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &output))
	assert.True(t, output.DryRun)
	require.Len(t, output.Files, 1)
	assert.Equal(t, "generated", output.Files[0].Status)
	assert.Equal(t, []string{"save", "cancel"}, output.Files[0].Markers)
	assert.Contains(t, output.Files[0].Content, "import Foo from './Foo.vue'")

	_, err = os.Stat(filepath.Join("src", "Foo.spec.ts"))
	assert.True(t, os.IsNotExist(err), "dry run must not write")
}

func TestGenerateCommand_UsesSettingsRecord(t *testing.T) {
	inProject(t, map[string]string{"src/Foo.vue": buttonComponent})

	require.NoError(t, settings.NewStore("").Save(settings.Settings{
		Imports:  "import { createPinia } from 'pinia'",
		Selector: "byTestId($attr)",
	}))

	_, err := execute(t, "generate")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join("src", "Foo.spec.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "import { createPinia } from 'pinia'\n")
	assert.Contains(t, string(data), "wrapper.find(byTestId('save'))")
}

func TestGenerateCommand_EmptySelectorOverridesSettings(t *testing.T) {
	inProject(t, map[string]string{"src/Foo.vue": buttonComponent})

	_, err := execute(t, "settings", "set", "selector", "byTestId($attr)")
	require.NoError(t, err)
	_, err = execute(t, "settings", "set", "imports", "import { createPinia } from 'pinia'")
	require.NoError(t, err)

	_, err = execute(t, "generate", "--selector=", "--imports=", "src/Foo.vue")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join("src", "Foo.spec.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `wrapper.find('[data-test="save"]')`)
	assert.NotContains(t, string(data), "byTestId")
	assert.NotContains(t, string(data), "pinia")
}

func TestGenerateCommand_EmptyIgnoreFileDisablesRules(t *testing.T) {
	inProject(t, map[string]string{
		".gitignore":  "gen/\n",
		"gen/Foo.vue": buttonComponent,
	})
	specPath := filepath.Join("gen", "Foo.spec.ts")

	out, err := execute(t, "generate", "gen/Foo.vue")
	require.NoError(t, err)
	assert.Contains(t, out, "1 file ignored")
	assert.NotContains(t, out, "Hint:")
	_, err = os.Stat(specPath)
	assert.True(t, os.IsNotExist(err), "ignored component must not get a spec")

	_, err = execute(t, "generate", "--ignore-file=", "gen/Foo.vue")
	require.NoError(t, err)
	_, err = os.Stat(specPath)
	assert.NoError(t, err)
}

func TestGenerateCommand_StrictFailsOnWarnings(t *testing.T) {
	// No src/ segment in the path: aliased import falls back with a warning
	inProject(t, map[string]string{"lib/Foo.vue": buttonComponent})

	_, err := execute(t, "generate", "--quiet", "lib")
	require.NoError(t, err)

	_, err = execute(t, "generate", "--quiet", "--strict", "lib")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strict mode: 1 warnings")
}

func TestGenerateCommand_InvalidOutputFormat(t *testing.T) {
	inProject(t, nil)

	_, err := execute(t, "generate", "--output-format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestScanCommand(t *testing.T) {
	inProject(t, map[string]string{"src/Foo.vue": buttonComponent})

	t.Run("text", func(t *testing.T) {
		out, err := execute(t, "scan", "--print-lines=false")
		require.NoError(t, err)
		assert.Equal(t,
			filepath.Join("src", "Foo.vue")+":2:11: save\n"+
				filepath.Join("src", "Foo.vue")+":3:11: cancel\n",
			out)
	})

	t.Run("table", func(t *testing.T) {
		out, err := execute(t, "scan", "--table")
		require.NoError(t, err)
		assert.Contains(t, out, "MARKER")
		assert.Contains(t, out, "2 MARKERS")
	})

	t.Run("json", func(t *testing.T) {
		out, err := execute(t, "scan", "--output-format", "json")
		require.NoError(t, err)

		var output vuetest.JSONScanOutput
		require.NoError(t, json.Unmarshal([]byte(out), &output))
		require.Len(t, output.Markers, 2)
		assert.Equal(t, "save", output.Markers[0].Value)
		assert.Equal(t, 2, output.Markers[0].Line)
	})
}

func TestSettingsCommands(t *testing.T) {
	inProject(t, nil)

	out, err := execute(t, "settings", "set", "selector", "byTestId($attr)")
	require.NoError(t, err)
	assert.Contains(t, out, "Set selector")

	_, err = execute(t, "settings", "set", "local-path", "true")
	require.NoError(t, err)

	_, err = execute(t, "settings", "set", "colour", "red")
	require.ErrorIs(t, err, settings.ErrUnknownKey)

	out, err = execute(t, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, `selector:     "byTestId($attr)"`)
	assert.Contains(t, out, `local-path:   "true"`)

	_, err = execute(t, "settings", "reset")
	require.NoError(t, err)
	assert.Equal(t, settings.Settings{}, settings.NewStore("").Load())
}
