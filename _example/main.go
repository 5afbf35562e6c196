package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/hupe1980/clustergo"
	"github.com/hupe1980/clustergo/kmeans"
	"github.com/hupe1980/clustergo/testutil"
)

func main() {
	seed := int64(4711)
	n := 50000
	k := 10

	centers := make([][]float64, k)
	rng := testutil.NewRNG(seed)
	for i := range centers {
		centers[i] = []float64{rng.Float64() * 1000, rng.Float64() * 1000, rng.Float64() * 1000}
	}

	store := testutil.Mixture(rng, n, centers, 5.0)

	fmt.Println("--- Clustering ---")
	fmt.Println("Points:", n)
	fmt.Println("Dimension:", store.Dimension())
	fmt.Println("K:", k)

	for _, variant := range []kmeans.Variant{kmeans.VariantLloyd, kmeans.VariantHamerly, kmeans.VariantAnnulus} {
		start := time.Now()

		result, err := clustergo.Cluster(context.Background(), store, kmeans.Config{
			K:           k,
			Variant:     variant,
			Initializer: kmeans.NewPlusPlusInit(seed),
			Variance:    true,
		}, clustergo.WithLogger(clustergo.NewTextLogger(slog.LevelInfo)))
		if err != nil {
			log.Fatal(err)
		}

		fmt.Printf("\n%s: %s after %d iterations in %.2fs (variance %.1f)\n",
			variant, result.State, result.Iterations, time.Since(start).Seconds(), result.Variance)
		for c, cluster := range result.Clusters {
			fmt.Printf("  cluster %d: %d members\n", c, cluster.Size)
		}
	}
}
