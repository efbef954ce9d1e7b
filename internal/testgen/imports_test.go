package testgen

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAliasedPath(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		rootMarker string
		want       string
		wantOK     bool
	}{
		{
			name:       "component under src",
			path:       "/proj/src/components/Foo.vue",
			rootMarker: "/src/",
			want:       "components/Foo",
			wantOK:     true,
		},
		{
			name:       "first occurrence wins",
			path:       "/home/me/src/app/src/views/Home.vue",
			rootMarker: "/src/",
			want:       "app/src/views/Home",
			wantOK:     true,
		},
		{
			name:       "windows separators",
			path:       `C:\proj\src\components\Foo.vue`,
			rootMarker: "/src/",
			want:       "components/Foo",
			wantOK:     true,
		},
		{
			name:       "custom root marker",
			path:       "/proj/app/widgets/Card.vue",
			rootMarker: "/app/",
			want:       "widgets/Card",
			wantOK:     true,
		},
		{
			name:       "missing segment",
			path:       "/proj/components/Foo.vue",
			rootMarker: "/src/",
			wantOK:     false,
		},
		{
			name:       "segment must be a directory",
			path:       "/proj/srcs/Foo.vue",
			rootMarker: "/src/",
			wantOK:     false,
		},
		{
			name:       "empty marker",
			path:       "/proj/src/Foo.vue",
			rootMarker: "",
			wantOK:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AliasedPath(tt.path, tt.rootMarker)
			require.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComponentImport(t *testing.T) {
	tests := []struct {
		name        string
		baseName    string
		path        string
		cfg         Config
		want        string
		wantWarning bool
	}{
		{
			name:     "aliased by default",
			baseName: "Foo",
			path:     "/proj/src/components/Foo.vue",
			want:     "import Foo from '@/components/Foo.vue'",
		},
		{
			name:     "local path",
			baseName: "Foo",
			path:     "/proj/src/components/Foo.vue",
			cfg:      Config{LocalPath: true},
			want:     "import Foo from './Foo.vue'",
		},
		{
			name:        "missing root falls back to relative",
			baseName:    "Foo",
			path:        "/proj/components/Foo.vue",
			want:        "import Foo from './Foo.vue'",
			wantWarning: true,
		},
		{
			name:     "lower-case file gets capitalised identifier",
			baseName: "userCard",
			path:     "/proj/src/userCard.vue",
			cfg:      Config{LocalPath: true},
			want:     "import UserCard from './userCard.vue'",
		},
		{
			name:     "custom alias prefix",
			baseName: "Foo",
			path:     "/proj/src/components/Foo.vue",
			cfg:      Config{AliasPrefix: "~/"},
			want:     "import Foo from '~/components/Foo.vue'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, warning := ComponentImport(tt.baseName, tt.path, tt.cfg)
			assert.Equal(t, tt.want, got)
			if tt.wantWarning {
				require.NotNil(t, warning)
				assert.Equal(t, WarnMissingRootSegment, warning.Code)
				assert.True(t, errors.Is(warning, ErrMissingRootSegment))
			} else {
				assert.Nil(t, warning)
			}
		})
	}
}

func TestBuildImports(t *testing.T) {
	engine := NewEngine()

	t.Run("snippet with component import and extra imports", func(t *testing.T) {
		cfg := Config{
			LocalPath:    true,
			ExtraImports: "import { createPinia } from 'pinia'",
		}
		got, warnings := engine.BuildImports("Foo", "/proj/Foo.vue", cfg)
		require.Empty(t, warnings)

		want := "import { shallowMount } from '@vue/test-utils'\n" +
			"import Foo from './Foo.vue'\n" +
			"import { beforeEach, describe, expect, it, vi } from 'vitest'\n" +
			"import type { VueWrapper } from '@vue/test-utils'\n" +
			"import { createPinia } from 'pinia'\n" +
			"\n"
		assert.Equal(t, want, got)
	})

	t.Run("extra imports kept verbatim", func(t *testing.T) {
		cfg := Config{
			LocalPath:    true,
			ExtraImports: "import a from 'a'\nimport b from 'b'\n",
		}
		got, _ := engine.BuildImports("Foo", "/proj/Foo.vue", cfg)
		assert.Contains(t, got, "import a from 'a'\nimport b from 'b'\n\n")
	})

	t.Run("missing root segment reported", func(t *testing.T) {
		got, warnings := engine.BuildImports("Foo", "/proj/Foo.vue", Config{})
		require.Len(t, warnings, 1)
		assert.Equal(t, WarnMissingRootSegment, warnings[0].Code)
		assert.Contains(t, got, "import Foo from './Foo.vue'")
	})

	t.Run("snippet unavailable degrades to extra imports", func(t *testing.T) {
		empty := NewEngineWithFS(fstest.MapFS{})
		cfg := Config{
			LocalPath:    true,
			ExtraImports: "import x from 'x'",
		}
		got, warnings := empty.BuildImports("Foo", "/proj/src/Foo.vue", cfg)
		require.Len(t, warnings, 1)
		assert.Equal(t, WarnBoilerplateUnavailable, warnings[0].Code)
		assert.True(t, errors.Is(warnings[0], ErrBoilerplateUnavailable))
		assert.Equal(t, "import x from 'x'\n\n", got)
	})

	t.Run("custom snippet", func(t *testing.T) {
		custom := NewEngineWithFS(fstest.MapFS{
			ImportSnippetName: {Data: []byte("import { mount } from '@vue/test-utils'\n$attr\n\n")},
		})
		got, warnings := custom.BuildImports("Foo", "/proj/src/ui/Foo.vue", Config{})
		require.Empty(t, warnings)
		assert.Equal(t, "import { mount } from '@vue/test-utils'\nimport Foo from '@/ui/Foo.vue'\n\n", got)
	})
}

func TestComponentIdentifier(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"foo", "Foo"},
		{"Foo", "Foo"},
		{"userCard", "UserCard"},
		{"élan", "Élan"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ComponentIdentifier(tt.input), "ComponentIdentifier(%q)", tt.input)
	}
}
