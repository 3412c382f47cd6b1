// Package distance provides the vector similarity primitives used by
// dense retrieval.
//
// # Supported Metrics
//
//   - MetricL2: squared Euclidean distance
//   - MetricCosine: cosine similarity, computed as the dot product of
//     L2-normalized vectors
//   - MetricDot: raw inner product
//
// # Usage
//
//	sim := distance.Dot(a, b)
//	normalized, ok := distance.NormalizeL2Copy(vec)
package distance
