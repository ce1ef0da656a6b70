package ingest

import "github.com/banfr/geofr/internal/dbformat"

// tables collects the writers for every content table, shared across
// all departments so row ranges stay globally consistent.
type tables struct {
	departement  *dbformat.Writer[dbformat.Departement]
	postal       *dbformat.Writer[dbformat.Postal]
	commune      *dbformat.Writer[dbformat.Commune]
	voie         *dbformat.Writer[dbformat.Voie]
	localisation *dbformat.Writer[dbformat.Localisation]
}

func newTables() *tables {
	return &tables{
		departement:  dbformat.NewDepartementWriter(),
		postal:       dbformat.NewPostalWriter(),
		commune:      dbformat.NewCommuneWriter(),
		voie:         dbformat.NewVoieWriter(),
		localisation: dbformat.NewLocalisationWriter(),
	}
}

// emitDepartment walks one department's accumulated hierarchy in
// ascending key order and appends rows to the shared tables, computing
// each parent's (start, end) range and its aggregate coordinate as it
// closes out that parent's children — following spec.md §4.4 exactly:
// a commune's coordinate is the integer mean of its child voies'
// coordinates, each voie's coordinate is the integer mean of its own
// localisations.
func emitDepartment(code string, acc *accumulator, t *tables) {
	deptRowIndex := int32(t.departement.Len())
	deptStart := int32(t.postal.Len())

	for _, postalCode := range sortedPostalCodes(acc.byPostal) {
		communes := acc.byPostal[postalCode]
		postalRowIndex := int32(t.postal.Len())
		commStart := int32(t.commune.Len())

		for _, ck := range sortedCommuneKeys(communes) {
			voies := communes[ck]
			communeRowIndex := int32(t.commune.Len())
			voieStart := int32(t.voie.Len())

			var communeLons, communeLats []int32
			for _, vk := range sortedVoieKeys(voies) {
				locs := sortedLocTuples(voies[vk])
				voieRowIndex := int32(t.voie.Len())
				locStart := int32(t.localisation.Len())

				lons := make([]int32, 0, len(locs))
				lats := make([]int32, 0, len(locs))
				for _, lt := range locs {
					t.localisation.Append(dbformat.Localisation{
						Numero: int16(lt.numero), Repetition: lt.repetition,
						Lon: lt.lon, Lat: lt.lat, RefID: voieRowIndex,
					})
					lons = append(lons, lt.lon)
					lats = append(lats, lt.lat)
				}
				locEnd := int32(t.localisation.Len())

				voieLon, voieLat := tupleMean(lons), tupleMean(lats)
				t.voie.Append(dbformat.Voie{
					Normalise: vk.normalise, Nom: vk.nom,
					Lon: voieLon, Lat: voieLat,
					Start: locStart, End: locEnd, RefID: communeRowIndex,
				})
				communeLons = append(communeLons, voieLon)
				communeLats = append(communeLats, voieLat)
			}
			voieEnd := int32(t.voie.Len())

			t.commune.Append(dbformat.Commune{
				Normalise: ck.normalise, Nom: ck.nom, CodeInsee: ck.codeInsee,
				Lon: tupleMean(communeLons), Lat: tupleMean(communeLats),
				Start: voieStart, End: voieEnd, RefID: postalRowIndex,
			})
		}
		commEnd := int32(t.commune.Len())

		t.postal.Append(dbformat.Postal{
			Code: int32(postalCode), Start: commStart, End: commEnd, RefID: deptRowIndex,
		})
	}
	deptEnd := int32(t.postal.Len())

	t.departement.Append(dbformat.Departement{Code: code, Start: deptStart, End: deptEnd})
}
