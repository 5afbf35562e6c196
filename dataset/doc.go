// Package dataset loads and saves clustering input.
//
// Two encodings are supported: line-oriented text (.csv, .tsv, .txt) and a
// little-endian binary frame (.vec). A trailing compression suffix selects
// transparent (de)compression: .gz, .zst, or .lz4.
//
//	store, _ := dataset.Open(ctx, blobs, "points.csv.zst")
//	result, _ := clustergo.Cluster(ctx, store, cfg)
package dataset
