// Package similarity implements the Jaccard-over-unigrams-and-bigrams
// string similarity scorer used to tolerate user typing error during
// hierarchical address lookup.
package similarity

// Profile is the precomputed shingle set of a string, cached once and
// reused across an entire lookup so the (typically short-lived) query
// string's G(s) and weight(G(s)) are never recomputed per candidate.
type Profile struct {
	set    map[string]struct{}
	weight int
}

// New builds the Profile for s: the set of its unigrams and bigrams,
// plus the weight of that set (sum of the length of each member).
func New(s string) Profile {
	runes := []rune(s)
	set := make(map[string]struct{}, 2*len(runes))
	for _, r := range runes {
		set[string(r)] = struct{}{}
	}
	for i := 0; i+1 < len(runes); i++ {
		set[string(runes[i:i+2])] = struct{}{}
	}
	weight := 0
	for member := range set {
		weight += len([]rune(member))
	}
	return Profile{set: set, weight: weight}
}

// Score returns the similarity between the receiver's string and t, in
// [0, 1]. Score is 0 when both strings are empty.
func (p Profile) Score(t string) float64 {
	return p.ScoreProfile(New(t))
}

// ScoreProfile is Score against an already-built Profile, avoiding
// rebuilding the shingle set when the same candidate is scored more than
// once.
func (p Profile) ScoreProfile(q Profile) float64 {
	if p.weight == 0 && q.weight == 0 {
		return 0
	}
	intersectionWeight := 0
	small, big := p.set, q.set
	if len(q.set) < len(p.set) {
		small, big = q.set, p.set
	}
	for member := range small {
		if _, ok := big[member]; ok {
			intersectionWeight += len([]rune(member))
		}
	}
	unionWeight := p.weight + q.weight - intersectionWeight
	if unionWeight == 0 {
		return 0
	}
	return float64(intersectionWeight) / float64(unionWeight)
}

// Score is a convenience for a one-off comparison where neither string's
// Profile needs to be reused.
func Score(s, t string) float64 {
	return New(s).Score(t)
}
