// Package dbformat defines the on-disk fixed-record layout of every
// database table and provides a memory-mapped reader plus a sequential
// writer for it. Field widths are part of the database's ABI: a table
// written by one version of the indexing pipeline must stay readable by
// any version of the query engine that agrees on these constants.
package dbformat

import "encoding/binary"

// Field widths, in bytes, for fixed-width string fields.
const (
	DepartementCodeWidth     = 3
	CommuneNormaliseWidth    = 32
	CommuneNomWidth          = 32
	CommuneCodeInseeWidth    = 5
	VoieNormaliseWidth       = 47
	VoieNomWidth             = 65
	LocalisationRepetWidth   = 3
)

// Departement is one row of the departement table.
type Departement struct {
	Code       string
	Start, End int32
}

const departementSize = DepartementCodeWidth + 4 + 4

func encodeDepartement(d Departement) []byte {
	b := make([]byte, departementSize)
	copy(b, packString(d.Code, DepartementCodeWidth))
	o := DepartementCodeWidth
	binary.LittleEndian.PutUint32(b[o:], uint32(d.Start))
	binary.LittleEndian.PutUint32(b[o+4:], uint32(d.End))
	return b
}

func decodeDepartement(b []byte) Departement {
	o := DepartementCodeWidth
	return Departement{
		Code:  unpackString(b[:o]),
		Start: int32(binary.LittleEndian.Uint32(b[o:])),
		End:   int32(binary.LittleEndian.Uint32(b[o+4:])),
	}
}

// Postal is one row of the postal table.
type Postal struct {
	Code, Start, End, RefID int32
}

const postalSize = 4 * 4

func encodePostal(p Postal) []byte {
	b := make([]byte, postalSize)
	binary.LittleEndian.PutUint32(b[0:], uint32(p.Code))
	binary.LittleEndian.PutUint32(b[4:], uint32(p.Start))
	binary.LittleEndian.PutUint32(b[8:], uint32(p.End))
	binary.LittleEndian.PutUint32(b[12:], uint32(p.RefID))
	return b
}

func decodePostal(b []byte) Postal {
	return Postal{
		Code:  int32(binary.LittleEndian.Uint32(b[0:])),
		Start: int32(binary.LittleEndian.Uint32(b[4:])),
		End:   int32(binary.LittleEndian.Uint32(b[8:])),
		RefID: int32(binary.LittleEndian.Uint32(b[12:])),
	}
}

// Commune is one row of the commune table.
type Commune struct {
	Normalise         string
	Nom               string
	CodeInsee         string
	Lon, Lat          int32
	Start, End, RefID int32
}

const communeSize = CommuneNormaliseWidth + CommuneNomWidth + CommuneCodeInseeWidth + 4*5

func encodeCommune(c Commune) []byte {
	b := make([]byte, communeSize)
	o := 0
	copy(b[o:], packString(c.Normalise, CommuneNormaliseWidth))
	o += CommuneNormaliseWidth
	copy(b[o:], packString(c.Nom, CommuneNomWidth))
	o += CommuneNomWidth
	copy(b[o:], packString(c.CodeInsee, CommuneCodeInseeWidth))
	o += CommuneCodeInseeWidth
	for _, v := range []int32{c.Lon, c.Lat, c.Start, c.End, c.RefID} {
		binary.LittleEndian.PutUint32(b[o:], uint32(v))
		o += 4
	}
	return b
}

func decodeCommune(b []byte) Commune {
	o := 0
	normalise := unpackString(b[o : o+CommuneNormaliseWidth])
	o += CommuneNormaliseWidth
	nom := unpackString(b[o : o+CommuneNomWidth])
	o += CommuneNomWidth
	codeInsee := unpackString(b[o : o+CommuneCodeInseeWidth])
	o += CommuneCodeInseeWidth
	vals := make([]int32, 5)
	for i := range vals {
		vals[i] = int32(binary.LittleEndian.Uint32(b[o:]))
		o += 4
	}
	return Commune{
		Normalise: normalise, Nom: nom, CodeInsee: codeInsee,
		Lon: vals[0], Lat: vals[1], Start: vals[2], End: vals[3], RefID: vals[4],
	}
}

// Voie is one row of the voie table.
type Voie struct {
	Normalise         string
	Nom               string
	Lon, Lat          int32
	Start, End, RefID int32
}

const voieSize = VoieNormaliseWidth + VoieNomWidth + 4*5

func encodeVoie(v Voie) []byte {
	b := make([]byte, voieSize)
	o := 0
	copy(b[o:], packString(v.Normalise, VoieNormaliseWidth))
	o += VoieNormaliseWidth
	copy(b[o:], packString(v.Nom, VoieNomWidth))
	o += VoieNomWidth
	for _, x := range []int32{v.Lon, v.Lat, v.Start, v.End, v.RefID} {
		binary.LittleEndian.PutUint32(b[o:], uint32(x))
		o += 4
	}
	return b
}

func decodeVoie(b []byte) Voie {
	o := 0
	normalise := unpackString(b[o : o+VoieNormaliseWidth])
	o += VoieNormaliseWidth
	nom := unpackString(b[o : o+VoieNomWidth])
	o += VoieNomWidth
	vals := make([]int32, 5)
	for i := range vals {
		vals[i] = int32(binary.LittleEndian.Uint32(b[o:]))
		o += 4
	}
	return Voie{Normalise: normalise, Nom: nom, Lon: vals[0], Lat: vals[1], Start: vals[2], End: vals[3], RefID: vals[4]}
}

// Localisation is one row of the localisation table.
type Localisation struct {
	Numero      int16
	Repetition  string
	Lon, Lat    int32
	RefID       int32
}

const localisationSize = 2 + LocalisationRepetWidth + 4 + 4 + 4

func encodeLocalisation(l Localisation) []byte {
	b := make([]byte, localisationSize)
	binary.LittleEndian.PutUint16(b[0:], uint16(l.Numero))
	o := 2
	copy(b[o:], packString(l.Repetition, LocalisationRepetWidth))
	o += LocalisationRepetWidth
	binary.LittleEndian.PutUint32(b[o:], uint32(l.Lon))
	binary.LittleEndian.PutUint32(b[o+4:], uint32(l.Lat))
	binary.LittleEndian.PutUint32(b[o+8:], uint32(l.RefID))
	return b
}

func decodeLocalisation(b []byte) Localisation {
	numero := int16(binary.LittleEndian.Uint16(b[0:]))
	o := 2
	repetition := unpackString(b[o : o+LocalisationRepetWidth])
	o += LocalisationRepetWidth
	return Localisation{
		Numero:     numero,
		Repetition: repetition,
		Lon:        int32(binary.LittleEndian.Uint32(b[o:])),
		Lat:        int32(binary.LittleEndian.Uint32(b[o+4:])),
		RefID:      int32(binary.LittleEndian.Uint32(b[o+8:])),
	}
}

// KDNode is one row of the kdtree table.
type KDNode struct {
	Lon, Lat                                   int32
	LimitLeft, LimitRight, LimitBottom, LimitTop int32
	Dimension                                  int8
	Left, Right, RefID                         int32
}

const kdNodeSize = 4*6 + 1 + 4*3

func encodeKDNode(n KDNode) []byte {
	b := make([]byte, kdNodeSize)
	o := 0
	for _, v := range []int32{n.Lon, n.Lat, n.LimitLeft, n.LimitRight, n.LimitBottom, n.LimitTop} {
		binary.LittleEndian.PutUint32(b[o:], uint32(v))
		o += 4
	}
	b[o] = byte(n.Dimension)
	o++
	for _, v := range []int32{n.Left, n.Right, n.RefID} {
		binary.LittleEndian.PutUint32(b[o:], uint32(v))
		o += 4
	}
	return b
}

func decodeKDNode(b []byte) KDNode {
	o := 0
	vals := make([]int32, 6)
	for i := range vals {
		vals[i] = int32(binary.LittleEndian.Uint32(b[o:]))
		o += 4
	}
	dim := int8(b[o])
	o++
	tail := make([]int32, 3)
	for i := range tail {
		tail[i] = int32(binary.LittleEndian.Uint32(b[o:]))
		o += 4
	}
	return KDNode{
		Lon: vals[0], Lat: vals[1], LimitLeft: vals[2], LimitRight: vals[3],
		LimitBottom: vals[4], LimitTop: vals[5], Dimension: dim,
		Left: tail[0], Right: tail[1], RefID: tail[2],
	}
}

// IndexEntry is one row of a sort-index table: a row index into the
// content table the index was built over.
type IndexEntry int32

const indexEntrySize = 4

func encodeIndexEntry(e IndexEntry) []byte {
	b := make([]byte, indexEntrySize)
	binary.LittleEndian.PutUint32(b, uint32(e))
	return b
}

func decodeIndexEntry(b []byte) IndexEntry {
	return IndexEntry(int32(binary.LittleEndian.Uint32(b)))
}
