package ds

// ShallowCopy never returns nil, so a copied empty slice still marshals as [].
func ShallowCopy[T any](ts []T) []T {
	return append(make([]T, 0, len(ts)), ts...)
}
