package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"regexp"
	"strings"
)

var (
	ErrBlobNotFound = errors.New("blob not found")
	ErrInvalidKey   = errors.New("invalid blob key")
)

const (
	KindDisk = "disk"
	KindS3   = "s3"
)

var validKeyRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

type Blob struct {
	Key         string
	ContentType string
	Size        int64
	Body        io.ReadCloser
}

// Store keeps user uploaded files, e.g. avatars.
type Store interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	// Get returns the blob, the caller closes its body.
	Get(ctx context.Context, key string) (*Blob, error)
	Delete(ctx context.Context, key string) error
}

// ValidateKey accepts flat keys only, so a key can never point outside the store.
func ValidateKey(key string) error {
	if !validKeyRegex.MatchString(key) || strings.Contains(key, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

func contentTypeByKey(key string) string {
	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

type Params struct {
	Kind     string
	DiskRoot string
	S3Bucket string
	S3Region string
	S3Prefix string
}

// New creates the store of the configured kind.
func New(ctx context.Context, params Params) (Store, error) {
	switch params.Kind {
	case "", KindDisk:
		return NewDiskStore(params.DiskRoot)
	case KindS3:
		return NewS3StoreFromDefaultConfig(ctx, params.S3Bucket, params.S3Region, params.S3Prefix)
	default:
		return nil, fmt.Errorf("unknown blob store kind: %s", params.Kind)
	}
}
