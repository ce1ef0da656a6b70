package normalize

// abbreviations is the fixed token-wise expansion table applied during
// normalization, e.g. "BD" -> "BOULEVARD". Keys and values are already
// upper-case since expansion runs after ASCII-folding/upper-casing.
var abbreviations = map[string]string{
	"ALL":  "ALLEE",
	"AV":   "AVENUE",
	"BD":   "BOULEVARD",
	"CH":   "CHEMIN",
	"CHE":  "CHEMIN",
	"CRS":  "COURS",
	"CTRE": "CENTRE",
	"DOM":  "DOMAINE",
	"HAM":  "HAMEAU",
	"IMP":  "IMPASSE",
	"LD":   "LIEUDIT",
	"LOT":  "LOTISSEMENT",
	"LT":   "LIEUTENANT",
	"PAS":  "PASSAGE",
	"PDT":  "PRESIDENT",
	"PL":   "PLACE",
	"QU":   "QUAI",
	"QUA":  "QUARTIER",
	"RLE":  "RUELLE",
	"RES":  "RESIDENCE",
	"RPT":  "RONDPOINT",
	"RTE":  "ROUTE",
	"SQ":   "SQUARE",
	"ST":   "SAINT",
	"STE":  "SAINTE",
	"TRA":  "TRAVERSE",
	"VLGE": "VILLAGE",
}

// stopWords are dropped after abbreviation expansion.
var stopWords = map[string]struct{}{
	"DE": {}, "DES": {}, "DU": {}, "D": {}, "LE": {}, "LES": {},
	"LA": {}, "L": {}, "A": {}, "AU": {}, "AUX": {}, "ET": {},
	"EN": {}, "SUR": {}, "SOUS": {}, "CEDEX": {},
}

// voieType1 is the set of single-token street types.
var voieType1 = map[string]struct{}{
	"ALLEE": {}, "AVENUE": {}, "BOULEVARD": {}, "CITE": {}, "CHEMIN": {},
	"CENTRE": {}, "CLOS": {}, "COURS": {}, "DOMAINE": {}, "GALERIE": {},
	"HAMEAU": {}, "HLM": {}, "IMPASSE": {}, "LIEUDIT": {}, "LOTISSEMENT": {},
	"MAIL": {}, "QUAI": {}, "QUARTIER": {}, "PASSAGE": {}, "PLACE": {},
	"RONDPOINT": {}, "ROUTE": {}, "RUE": {}, "RUELLE": {}, "SQUARE": {},
	"TRAVERSE": {}, "VOIE": {}, "VILLAGE": {}, "ZONE": {},
}

type wordPair [2]string

// voieType2 is the set of two-token street types.
var voieType2 = map[wordPair]struct{}{
	{"CHEF", "LIEU"}:    {},
	{"LIEU", "DIT"}:     {},
	{"GRANDE", "RUE"}:   {},
	{"GRAND", "RUE"}:    {},
	{"GRANDE", "PLACE"}: {},
	{"ROND", "POINT"}:   {},
}
