package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/tuition/core"
	"github.com/trezcool/tuition/storage"
	"github.com/trezcool/tuition/storage/filestore"
	"github.com/trezcool/tuition/storage/inmem"
	"github.com/trezcool/tuition/storage/sqlkv"
)

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		storage core.StorageConfig
		want    interface{}
		wantErr bool
	}{
		{name: "memory", storage: core.StorageConfig{Driver: core.DriverMemory}, want: &inmem.Gateway{}},
		{name: "file", storage: core.StorageConfig{Driver: core.DriverFile, Dir: filepath.Join(dir, "data")}, want: &filestore.Gateway{}},
		{name: "default is file", storage: core.StorageConfig{Dir: filepath.Join(dir, "default")}, want: &filestore.Gateway{}},
		{name: "sqlite", storage: core.StorageConfig{Driver: core.DriverSQLite, SQLitePath: filepath.Join(dir, "t.db")}, want: &sqlkv.Gateway{}},
		{name: "unknown", storage: core.StorageConfig{Driver: "floppy"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := core.NewTestConfig()
			conf.Storage = tt.storage

			gw, err := storage.Open(context.Background(), conf)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer gw.Close()
			assert.IsType(t, tt.want, gw)
		})
	}
}
