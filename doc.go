// Package clustergo provides accelerated k-means clustering for Go.
//
// The core is the bound-pruned k-means family: Lloyd's algorithm plus the
// Hamerly and Annulus accelerations, which maintain per-point distance
// bounds so most points are reassigned without computing a single distance.
// All variants produce identical clusterings for the same initial centers.
//
// # Quick Start
//
//	store, _ := vectorstore.FromSlices(points)
//	result, _ := clustergo.Cluster(ctx, store, kmeans.Config{
//	    K:             8,
//	    MaxIterations: 100,
//	    Variant:       kmeans.VariantAnnulus,
//	    Initializer:   kmeans.NewPlusPlusInit(42),
//	})
//	for c, cluster := range result.Clusters {
//	    fmt.Println(c, cluster.Size, cluster.Center)
//	}
//
// # Datasets
//
// Input can be loaded from text or binary blobs, optionally compressed,
// stored locally or in object storage:
//
//	blobs, _ := s3.New(ctx, "my-bucket", "datasets/")
//	result, _ := clustergo.ClusterDataset(ctx, blobs, "points.csv.zst", cfg)
//
// # Key Features
//
//   - Lloyd / Hamerly / Annulus assignment engines
//   - Exact equivalence across engines, bound-pruned speed
//   - Random and k-means++ seeding
//   - Optional sharded assignment passes for multi-core machines
//   - Dataset IO: CSV/text/binary with gzip, zstd, lz4 compression
//   - Blob storage: local FS, memory, S3, MinIO
package clustergo
