// Package kmeans implements Lloyd's k-means clustering with cosine similarity.
//
// Points are assigned to the centroid they are most similar to (largest
// cosine), centroids are recomputed as component-wise means, and the loop
// stops once successive centroids agree within a tolerance or the iteration
// cap is reached.
//
// The public cosmeans package wraps this with options, logging and metrics.
package kmeans
