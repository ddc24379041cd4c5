// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

func TestDefault(t *testing.T) {
	c := Default()

	assert.Equal(t, 39, c.Len())
	assert.Equal(t, "name", c.Names()[0])
	assert.Equal(t, "database_instances", c.Names()[c.Len()-1])
	assert.True(t, c.Contains("total_users"))
	assert.True(t, c.Contains("technical_lead"))
	assert.False(t, c.Contains("foo_bar"))
	assert.False(t, c.Contains(""))
	assert.Equal(t, DefaultNumeric, c.Numeric())
}

func TestIsNumericUsesExactMatch(t *testing.T) {
	c, err := New([]string{"total_users", "users", "total", "total_users_2"}, "total_users")
	require.NoError(t, err)

	assert.True(t, c.IsNumeric("total_users"))
	for _, name := range []string{"users", "total", "total_users_2", "", "t"} {
		assert.False(t, c.IsNumeric(name), name)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		names   []string
		numeric string
		want    []string
		errMsg  string
	}{
		{
			name:  "drops duplicates keeping first position",
			names: []string{"name", "owner", "name", "urls", "owner"},
			want:  []string{"name", "owner", "urls"},
		},
		{
			name:  "drops empty names",
			names: []string{"", "name", ""},
			want:  []string{"name"},
		},
		{
			name:    "rejects numeric attribute outside the catalog",
			names:   []string{"name"},
			numeric: "total_users",
			errMsg:  "not in the catalog",
		},
		{
			name:  "no numeric attribute",
			names: []string{"name"},
			want:  []string{"name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.names, tt.numeric)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Names())
		})
	}
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantLen     int
		wantNumeric string
		contains    string
		errMsg      string
	}{
		{
			name:        "custom attribute list",
			content:     "attributes: [name, owner, seats]\nnumeric_attribute: seats\n",
			wantLen:     3,
			wantNumeric: "seats",
			contains:    "owner",
		},
		{
			name:        "numeric defaults to total_users",
			content:     "attributes: [name, total_users]\n",
			wantLen:     2,
			wantNumeric: "total_users",
			contains:    "name",
		},
		{
			name:        "empty file keeps built-in list",
			content:     "",
			wantLen:     39,
			wantNumeric: "total_users",
			contains:    "urls",
		},
		{
			name:    "numeric missing from custom list",
			content: "attributes: [name]\n",
			errMsg:  "not in the catalog",
		},
		{
			name:    "malformed yaml",
			content: "attributes: [name\n",
			errMsg:  "parsing catalog",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "catalog.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			c, err := LoadFile(path)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLen, c.Len())
			assert.Equal(t, tt.wantNumeric, c.Numeric())
			assert.True(t, c.Contains(tt.contains))
		})
	}
}

func TestLoadFileEmptyPath(t *testing.T) {
	c, err := LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, Default().Names(), c.Names())
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestExportRoundTrip(t *testing.T) {
	data, err := yaml.Marshal(Default().Export())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Names(), c.Names())
	assert.Equal(t, Default().Numeric(), c.Numeric())
}
