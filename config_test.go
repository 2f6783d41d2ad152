/******
This file is part of Vaelen/ZorkVM.

Copyright 2017, Andrew Young <andrew@vaelen.org>

    Vaelen/ZorkVM is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

    Vaelen/ZorkVM is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
along with Vaelen/ZorkVM.  If not, see <http://www.gnu.org/licenses/>.
******/

package zorkvm

import (
	"os"
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(path.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverlaysOnDefaults(t *testing.T) {
	file := path.Join(t.TempDir(), "zorkvm.toml")
	contents := "listen_address = \":9999\"\nrand_seed = 42\n"
	require.NoError(t, os.WriteFile(file, []byte(contents), 0600))

	cfg, err := LoadConfig(file)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.ListenAddress)
	assert.Equal(t, int64(42), cfg.RandSeed)
	assert.Equal(t, DefaultConfig().SaveDirectory, cfg.SaveDirectory, "fields absent from the file keep their default")
	assert.Equal(t, DefaultConfig().SaveFrequency, cfg.SaveFrequency)
}

func TestLoadConfigMalformedFileReturnsError(t *testing.T) {
	file := path.Join(t.TempDir(), "zorkvm.toml")
	require.NoError(t, os.WriteFile(file, []byte("not = [valid toml"), 0600))

	_, err := LoadConfig(file)
	assert.Error(t, err)
}

func TestDefaultConfigValues(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ":7890", cfg.ListenAddress)
	assert.Equal(t, time.Hour, cfg.SaveFrequency)
	assert.True(t, cfg.EnableScripting)
}
