package clustergo

import (
	"context"

	"github.com/hupe1980/clustergo/blobstore"
	"github.com/hupe1980/clustergo/dataset"
	"github.com/hupe1980/clustergo/kmeans"
	"github.com/hupe1980/clustergo/vectorstore"
)

// Cluster runs k-means over the store with the given configuration.
//
// It is a thin convenience over kmeans.New + Run; options apply ambient
// concerns (logging) without widening the Config surface.
func Cluster(ctx context.Context, store vectorstore.Store, cfg kmeans.Config, optFns ...Option) (*kmeans.Result, error) {
	opts := applyOptions(optFns)
	if opts.logger != nil {
		cfg.Logger = opts.logger.Logger
	}

	km, err := kmeans.New(cfg)
	if err != nil {
		return nil, err
	}
	return km.Run(ctx, store)
}

// ClusterDataset loads a dataset blob and clusters it in one call.
//
// The blob name selects the encoding and compression, e.g. "points.csv.zst".
func ClusterDataset(ctx context.Context, bs blobstore.Store, name string, cfg kmeans.Config, optFns ...Option) (*kmeans.Result, error) {
	store, err := dataset.Open(ctx, bs, name)
	if err != nil {
		return nil, err
	}
	return Cluster(ctx, store, cfg, optFns...)
}
