package minio

import (
	"bytes"
	"context"
	"io"
	"maps"
	"net/http"
	"path"
	"slices"
	"strings"

	"github.com/hupe1980/cosmeans/blobstore"
	"github.com/minio/minio-go/v7"
)

// DefaultContentType is the content type written on Put.
const DefaultContentType = "application/x-cosmeans-snapshot"

// Client is the subset of the MinIO API used by Store.
// *minio.Client satisfies it.
type Client interface {
	StatObject(ctx context.Context, bucket, object string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	GetObject(ctx context.Context, bucket, object string, opts minio.GetObjectOptions) (*minio.Object, error)
	PutObject(ctx context.Context, bucket, object string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucket, object string, opts minio.RemoveObjectOptions) error
	ListObjects(ctx context.Context, bucket string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
}

// Store implements blobstore.Store for MinIO and S3-compatible storage.
type Store struct {
	client Client
	bucket string
	opts   options
}

type options struct {
	prefix       string
	contentType  string
	storageClass string
	metadata     map[string]string
}

// Option configures a Store.
type Option func(*options)

// WithPrefix sets the key prefix (e.g. "models/").
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithContentType overrides DefaultContentType.
func WithContentType(ct string) Option {
	return func(o *options) {
		o.contentType = ct
	}
}

// WithStorageClass sets the storage class of written objects.
func WithStorageClass(class string) Option {
	return func(o *options) {
		o.storageClass = class
	}
}

// WithUserMetadata adds user metadata to every written object.
func WithUserMetadata(md map[string]string) Option {
	return func(o *options) {
		maps.Copy(o.metadata, md)
	}
}

// NewStore creates a MinIO blob store for bucket.
func NewStore(client Client, bucket string, optFns ...Option) *Store {
	o := options{
		contentType: DefaultContentType,
		metadata:    map[string]string{},
	}
	for _, fn := range optFns {
		fn(&o)
	}
	return &Store{client: client, bucket: bucket, opts: o}
}

func (s *Store) key(name string) string {
	return path.Join(s.opts.prefix, name)
}

func isNotFound(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.Code == "NotFound" || resp.StatusCode == http.StatusNotFound
}

// Open stats the object and returns a blob that reads it by range.
func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	key := s.key(name)
	info, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return nil, blobstore.ErrNotFound
		}
		return nil, err
	}
	return &object{store: s, key: key, size: info.Size, etag: info.ETag}, nil
}

// Put uploads data in a single request. The object carries the blob name
// and the configured metadata.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	md := maps.Clone(s.opts.metadata)
	md["blob-name"] = name

	_, err := s.client.PutObject(ctx, s.bucket, s.key(name), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:  s.opts.contentType,
		StorageClass: s.opts.storageClass,
		UserMetadata: md,
	})
	return err
}

// Delete removes a blob. A missing object is not an error.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, s.key(name), minio.RemoveObjectOptions{}); err != nil && !isNotFound(err) {
		return err
	}
	return nil
}

// List returns the sorted names below the prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	var names []string
	ch := s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    s.key(prefix),
		Recursive: true,
	})
	for obj := range ch {
		if obj.Err != nil {
			return nil, obj.Err
		}
		if name := trimRoot(obj.Key, s.opts.prefix); name != "" {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}

func trimRoot(key, root string) string {
	return strings.TrimPrefix(strings.TrimPrefix(key, root), "/")
}

// object reads ranges of one stored snapshot. Reads are pinned to the ETag
// seen by Open so a concurrent overwrite surfaces as an error.
type object struct {
	store *Store
	key   string
	size  int64
	etag  string
}

func (o *object) Size() int64 { return o.size }

func (o *object) Close() error { return nil }

func (o *object) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if off < 0 || off >= o.size {
		return 0, io.EOF
	}
	if len(p) == 0 {
		return 0, nil
	}

	last := min(off+int64(len(p)), o.size) - 1
	var opts minio.GetObjectOptions
	if err := opts.SetRange(off, last); err != nil {
		return 0, err
	}
	if o.etag != "" {
		if err := opts.SetMatchETag(o.etag); err != nil {
			return 0, err
		}
	}

	r, err := o.store.client.GetObject(ctx, o.store.bucket, o.key, opts)
	if err != nil {
		if isNotFound(err) {
			return 0, blobstore.ErrNotFound
		}
		return 0, err
	}
	defer func() { _ = r.Close() }()

	n, err := io.ReadFull(r, p[:last-off+1])
	if err != nil {
		return n, err
	}
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
