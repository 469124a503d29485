package ecs

// intersect returns the entities present in every set, iterating the
// smallest one. A nil set yields nil.
func intersect(sets ...*SparseSet) []Entity {
	if len(sets) == 0 {
		return nil
	}
	smallest := sets[0]
	for _, s := range sets {
		if s == nil {
			return nil
		}
		if s.Len() < smallest.Len() {
			smallest = s
		}
	}

	out := make([]Entity, 0, smallest.Len())
	for _, e := range smallest.denseEntities {
		in := true
		for _, s := range sets {
			if !s.Has(e) {
				in = false
				break
			}
		}
		if in {
			out = append(out, e)
		}
	}
	return out
}
