package nav

// Normalize folds any cluster id into [0, count). A non-positive count
// yields 0.
func Normalize(count, id int) int {
	if count <= 0 {
		return 0
	}
	return ((id % count) + count) % count
}

// WrapCluster returns the cluster delta steps away from id, wrapping at both
// ends: (count + id + delta) % count for in-range ids.
func WrapCluster(count, id, delta int) int {
	return Normalize(count, id+delta)
}
