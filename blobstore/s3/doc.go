// Package s3 provides an Amazon S3 implementation of the blobstore.Store interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket", s3.WithPrefix("models/"))
//	if err != nil { ... }
//	err = cosmeans.SaveModel(ctx, store, "news.cms", model)
//
// # Features
//
//   - Range reads
//   - Multipart uploads for large models via the S3 upload manager
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
