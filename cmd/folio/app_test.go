package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-folio/config"
	"github.com/Carmen-Shannon/oxy-folio/portfolio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequests(t *testing.T) {
	reqs := loadRequests(config.Default(), "site")
	require.Len(t, reqs, 5)

	assert.Equal(t, portfolio.BackdropKey, reqs[0].Key)
	assert.Equal(t, filepath.Join("site", "assets/garage/scene.gltf"), reqs[0].Path)
	assert.True(t, reqs[0].MeshOnly)

	keys := []string{}
	for _, r := range reqs[1:] {
		keys = append(keys, r.Key)
		assert.Equal(t, r.Key != "tech", r.MeshOnly, "only animated models keep their clips")
	}
	assert.Equal(t, []string{"about", "tech", "projects", "contact"}, keys)
}

func TestConfigCommandPrintsDefaults(t *testing.T) {
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"config"})
	require.NoError(t, cmd.Execute())

	cfg, err := config.Parse(out.Bytes())
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestConfigCommandRejectsBadFile(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"config", "--config", filepath.Join(t.TempDir(), "missing.toml")})
	assert.Error(t, cmd.Execute())
}
