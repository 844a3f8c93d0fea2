package files

import (
	"context"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

// FileStorage fetches stored exercise code by object name, for queued tasks
// that reference a file instead of inlining the source.
type FileStorage struct {
	cl     *minio.Client
	Bucket string
}

type Config struct {
	Url      string
	Login    string
	Password string
	Bucket   string
}

func NewFileStorage(cfg Config) (*FileStorage, error) {
	client, err := minio.New(cfg.Url, &minio.Options{
		Creds: credentials.NewStaticV4(cfg.Login, cfg.Password, ""),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create object storage client")
	}
	return &FileStorage{cl: client, Bucket: cfg.Bucket}, nil
}

func (s *FileStorage) GetFile(ctx context.Context, filename string) (io.Reader, error) {
	file, err := s.cl.GetObject(ctx, s.Bucket, filename, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	return file, nil
}

// GetText reads a whole stored object as a string.
func (s *FileStorage) GetText(ctx context.Context, filename string) (string, error) {
	file, err := s.GetFile(ctx, filename)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if _, err := io.Copy(&sb, file); err != nil {
		return "", errors.Wrapf(err, "failed to read object %s", filename)
	}
	return sb.String(), nil
}
