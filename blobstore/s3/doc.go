// Package s3 provides an S3-backed blobstore.Store for datasets.
//
// # Usage
//
//	store, _ := s3.New(ctx, "my-bucket", "datasets/")
//	ds, _ := dataset.Open(ctx, store, "points.csv.zst")
package s3
