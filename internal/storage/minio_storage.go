package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/fhuszti/assets-ms-go/internal/logger"
	"github.com/fhuszti/assets-ms-go/internal/port"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// objectStore is the part of *minio.Client the filesystem backend relies on.
type objectStore interface {
	// bucket bootstrap
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error

	// reads
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (*minio.Object, error)
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo

	// writes; a move is a server side copy followed by a remove
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	CopyObject(ctx context.Context, dst minio.CopyDestOptions, src minio.CopySrcOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// MinioStorage keeps asset files as objects of a single bucket. Directories are
// key prefixes.
type MinioStorage struct {
	client     objectStore
	bucketName string
}

type Strg struct {
	Client objectStore
}

// compile-time check: *MinioStorage must satisfy port.Filesystem
var _ port.Filesystem = (*MinioStorage)(nil)

func NewMinioClient(endpoint, accessKey, secretKey string, useSSL bool) (*Strg, error) {
	logger.Info(context.Background(), "initialising minio client...")
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, mapMinioErr(err)
	}
	return &Strg{Client: client}, nil
}

func (c *Strg) WithBucket(ctx context.Context, bucket string) (*MinioStorage, error) {
	ok, err := c.Client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, mapMinioErr(err)
	}
	if !ok {
		logger.Infof(ctx, "bucket %q does not exist, creating it...", bucket)
		if err := c.Client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, mapMinioErr(err)
		}
	}
	return &MinioStorage{client: c.Client, bucketName: bucket}, nil
}

func objectKey(p string) string {
	return strings.TrimPrefix(path.Clean(p), "/")
}

func (s *MinioStorage) Move(ctx context.Context, src, destDir, destName string) error {
	srcKey := objectKey(src)
	destKey := objectKey(path.Join(destDir, destName))
	logger.Debugf(ctx, "moving file %q to %q inside bucket %q...", srcKey, destKey, s.bucketName)

	destOpts := minio.CopyDestOptions{
		Bucket: s.bucketName,
		Object: destKey,
	}
	srcOpts := minio.CopySrcOptions{
		Bucket: s.bucketName,
		Object: srcKey,
	}
	if _, err := s.client.CopyObject(ctx, destOpts, srcOpts); err != nil {
		return mapMinioErr(err)
	}
	return mapMinioErr(s.client.RemoveObject(ctx, s.bucketName, srcKey, minio.RemoveObjectOptions{}))
}

func (s *MinioStorage) Delete(ctx context.Context, p string) error {
	logger.Debugf(ctx, "removing file %q from bucket %q...", p, s.bucketName)
	return mapMinioErr(s.client.RemoveObject(ctx, s.bucketName, objectKey(p), minio.RemoveObjectOptions{}))
}

func (s *MinioStorage) RemoveAll(ctx context.Context, dir string) error {
	prefix := objectKey(dir) + "/"
	logger.Debugf(ctx, "removing prefix %q from bucket %q...", prefix, s.bucketName)

	for obj := range s.client.ListObjects(ctx, s.bucketName, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return mapMinioErr(obj.Err)
		}
		if err := s.client.RemoveObject(ctx, s.bucketName, obj.Key, minio.RemoveObjectOptions{}); err != nil {
			return mapMinioErr(err)
		}
	}
	return nil
}

func (s *MinioStorage) Exists(ctx context.Context, p string) (bool, error) {
	_, err := s.Stat(ctx, p)
	if errors.Is(err, port.ErrFileNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *MinioStorage) Stat(ctx context.Context, p string) (port.FileInfo, error) {
	logger.Debugf(ctx, "getting stats on file %q in bucket %q...", p, s.bucketName)

	info, err := s.client.StatObject(ctx, s.bucketName, objectKey(p), minio.StatObjectOptions{})
	if err != nil {
		return port.FileInfo{}, mapMinioErr(err)
	}
	return port.FileInfo{
		SizeBytes:   info.Size,
		ContentType: info.ContentType,
	}, nil
}

func (s *MinioStorage) Load(ctx context.Context, p string) (*port.File, error) {
	info, err := s.Stat(ctx, p)
	if err != nil {
		return nil, err
	}

	obj, err := s.client.GetObject(ctx, s.bucketName, objectKey(p), minio.GetObjectOptions{})
	if err != nil {
		return nil, mapMinioErr(err)
	}
	defer func() { _ = obj.Close() }()

	ext, mimeType, err := detect(obj)
	if err != nil {
		return nil, mapMinioErr(err)
	}
	if ext == "" && info.ContentType != "" {
		mimeType = info.ContentType
	}
	return &port.File{
		Path:         p,
		Extension:    ext,
		MimeType:     mimeType,
		SizeBytes:    info.SizeBytes,
		OriginalName: path.Base(p),
	}, nil
}

func (s *MinioStorage) Save(ctx context.Context, p string, r io.Reader, size int64) error {
	logger.Debugf(ctx, "saving file %q into bucket %q...", p, s.bucketName)

	_, err := s.client.PutObject(ctx, s.bucketName, objectKey(p), r, size, minio.PutObjectOptions{})
	return mapMinioErr(err)
}

func (s *MinioStorage) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	logger.Debugf(ctx, "getting file %q from bucket %q...", p, s.bucketName)

	if _, err := s.Stat(ctx, p); err != nil {
		return nil, err
	}
	obj, err := s.client.GetObject(ctx, s.bucketName, objectKey(p), minio.GetObjectOptions{})
	if err != nil {
		return nil, mapMinioErr(err)
	}
	return obj, nil
}
