package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/2beens/liftlog/pkg"

	log "github.com/sirupsen/logrus"
)

var _ Store = (*DiskStore)(nil)

type DiskStore struct {
	root string
}

func NewDiskStore(root string) (*DiskStore, error) {
	if root == "" {
		return nil, errors.New("disk store root not set")
	}

	exists, err := pkg.PathExists(root, true)
	if err != nil {
		return nil, err
	}
	if !exists {
		log.Debugf("disk store: creating root dir: %s", root)
		if err := os.MkdirAll(root, 0o755); err != nil {
			return nil, fmt.Errorf("create root dir: %w", err)
		}
	}

	return &DiskStore{
		root: root,
	}, nil
}

func (s *DiskStore) Put(_ context.Context, key, _ string, body io.Reader, _ int64) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	// write to a temp file first, readers never see a partial blob
	tmp, err := os.CreateTemp(s.root, ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, body); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write blob: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close blob: %w", err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(s.root, key)); err != nil {
		return fmt.Errorf("rename blob: %w", err)
	}
	return nil
}

func (s *DiskStore) Get(_ context.Context, key string) (*Blob, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.root, key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrBlobNotFound
		}
		return nil, fmt.Errorf("open blob: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat blob: %w", err)
	}

	return &Blob{
		Key:         key,
		ContentType: contentTypeByKey(key),
		Size:        info.Size(),
		Body:        f,
	}, nil
}

func (s *DiskStore) Delete(_ context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(s.root, key)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrBlobNotFound
		}
		return fmt.Errorf("remove blob: %w", err)
	}
	return nil
}
