package kdtree

import "github.com/banfr/geofr/internal/coord"

// France is the root region used to seed a fresh tree build: longitude
// [-62, 55] by latitude [-22, 52], covering metropolitan France and most
// overseas departments. Points east of longitude 55 (most of Réunion)
// fall outside it.
var France = Bounds{
	LimitLeft:   coord.ToInt(-62),
	LimitRight:  coord.ToInt(55),
	LimitBottom: coord.ToInt(-22),
	LimitTop:    coord.ToInt(52),
}
