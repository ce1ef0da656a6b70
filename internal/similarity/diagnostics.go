package similarity

import (
	"github.com/agnivade/levenshtein"
	"github.com/xrash/smetrics"
)

// Diagnostics reports secondary distance metrics between two normalized
// strings. It is never consulted by the query engine's scoring path —
// the Jaccard Profile above is the only metric that decides a match —
// it exists purely so the indexing pipeline can flag likely duplicate
// commune entries in its build log.
type Diagnostics struct {
	Levenshtein  int
	JaroWinkler  float64
	NearDuplicate bool
}

// Diagnose compares two already-normalized strings and flags pairs close
// enough in edit distance, yet imperfect under the Jaccard scorer, to be
// worth a human glance during a database build.
func Diagnose(s, t string) Diagnostics {
	dist := levenshtein.ComputeDistance(s, t)
	jw := smetrics.JaroWinkler(s, t, 0.7, 4)
	jaccard := Score(s, t)
	return Diagnostics{
		Levenshtein:   dist,
		JaroWinkler:   jw,
		NearDuplicate: dist > 0 && dist <= 2 && jaccard < 1.0,
	}
}
