// Package filestore keeps every container as a JSON file named after its key, in a single directory.
package filestore

import (
	"context"
	"os"
	"path/filepath"
	"regexp"

	"github.com/pkg/errors"

	"github.com/trezcool/tuition/core/record"
)

var keyRegex = regexp.MustCompile(`^[\w-]+$`)

type Gateway struct {
	dir string
}

var _ record.Gateway = (*Gateway)(nil) // interface compliance check

// Open creates dir if it does not exist.
func Open(dir string) (*Gateway, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating %s", dir)
	}
	return &Gateway{dir: dir}, nil
}

func (gw *Gateway) path(key string) (string, error) {
	if !keyRegex.MatchString(key) {
		return "", errors.Errorf("invalid key %q", key)
	}
	return filepath.Join(gw.dir, key+".json"), nil
}

func (gw *Gateway) Load(_ context.Context, key string) ([]byte, error) {
	fp, err := gw.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(fp)
	if os.IsNotExist(err) {
		return nil, nil
	}
	return data, errors.Wrapf(err, "reading %s", fp)
}

// Save writes to a temporary file first, so a failed write never truncates the previous blob.
func (gw *Gateway) Save(_ context.Context, key string, data []byte) error {
	fp, err := gw.path(key)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(gw.dir, "."+key+"-*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "writing %s", tmp.Name())
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", tmp.Name())
	}
	return errors.Wrapf(os.Rename(tmp.Name(), fp), "renaming to %s", fp)
}

func (gw *Gateway) Close() error { return nil }
