// Package cosmeans partitions points into k clusters by cosine similarity.
//
// It is a Lloyd-style k-means where the similarity between a point and a
// centroid is their cosine. Centroids are the component-wise mean of their
// members, recomputed every round until they stop moving or an iteration
// cap is reached.
//
// # Quick Start
//
//	ctx := context.Background()
//	res, err := cosmeans.Cluster(ctx, points, 8,
//	    cosmeans.WithSeed(42),
//	    cosmeans.WithMaxIterations(100),
//	)
//	if err != nil {
//	    // errors.Is(err, cosmeans.ErrInvalidInput) for bad input
//	}
//	fmt.Println(res.Status, res.Iterations, res.Assignments)
//
// Runs with the same seed and the same points are bit-identical, including
// runs with WithParallelism.
//
// # Termination
//
// A run ends as StatusConverged once every centroid component moved by no
// more than the tolerance (WithTolerance, default 1e-9; 0 demands exact
// equality), or as StatusExhausted after WithMaxIterations rounds.
// Exhaustion is not an error.
//
// # Degenerate Cases
//
// A zero vector has similarity 0 to every centroid, so it joins cluster 0
// unless another centroid scores higher. A cluster that loses all members
// keeps its previous centroid.
//
// # Models
//
// Result.Model returns an immutable Model that classifies new points and
// can be stored in any blobstore.Store:
//
//	store := blobstore.NewLocalStore("./models")
//	_ = cosmeans.SaveModel(ctx, store, "news.cms", res.Model())
//	m, _ := cosmeans.LoadModel(ctx, store, "news.cms")
//	cluster, _ := m.Predict(query)
//
// # Observability
//
// WithLogger and WithMetricsCollector attach a slog-backed Logger and a
// MetricsCollector. See metrics/prometheus for a Prometheus collector.
package cosmeans
