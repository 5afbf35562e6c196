// Package blobstore abstracts where dataset blobs live.
//
// The dataset package reads and writes clustering input through a Store, so
// the same code paths work against the local file system, an in-memory map
// (tests), S3 (blobstore/s3) or MinIO and other S3-compatible object stores
// (blobstore/minio).
package blobstore
