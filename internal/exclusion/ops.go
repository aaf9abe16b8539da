package exclusion

// Union returns a new Set holding the members of either set, per field.
func (s *Set) Union(other *Set) *Set {
	return s.Clone().Update(other)
}

// Intersection returns a new Set holding the members of both sets, per field.
func (s *Set) Intersection(other *Set) *Set {
	return s.Clone().IntersectionUpdate(other)
}

// Difference returns a new Set holding the members of s not in other.
func (s *Set) Difference(other *Set) *Set {
	return s.Clone().DifferenceUpdate(other)
}

// Update adds the members of other to s and returns s.
func (s *Set) Update(other *Set) *Set {
	if other == nil {
		return s
	}
	unionInto(&s.attrs, other.attrs)
	unionInto(&s.items, other.items)
	unionInto(&s.bases, other.bases)
	unionInto(&s.types, other.types)
	unionInto(&s.objects, other.objects)
	return s
}

// IntersectionUpdate keeps only members also in other and returns s.
func (s *Set) IntersectionUpdate(other *Set) *Set {
	o := other.Clone()
	intersectInto(s.attrs, o.attrs)
	intersectInto(s.items, o.items)
	intersectInto(s.bases, o.bases)
	intersectInto(s.types, o.types)
	intersectInto(s.objects, o.objects)
	return s
}

// DifferenceUpdate removes the members of other from s and returns s.
func (s *Set) DifferenceUpdate(other *Set) *Set {
	if other == nil {
		return s
	}
	subtractFrom(s.attrs, other.attrs)
	subtractFrom(s.items, other.items)
	subtractFrom(s.bases, other.bases)
	subtractFrom(s.types, other.types)
	subtractFrom(s.objects, other.objects)
	return s
}

func unionInto[K comparable](dst *map[K]struct{}, src map[K]struct{}) {
	for k := range src {
		add(dst, k)
	}
}

func intersectInto[K comparable](dst, keep map[K]struct{}) {
	for k := range dst {
		if _, ok := keep[k]; !ok {
			delete(dst, k)
		}
	}
}

func subtractFrom[K comparable](dst, drop map[K]struct{}) {
	for k := range drop {
		delete(dst, k)
	}
}
