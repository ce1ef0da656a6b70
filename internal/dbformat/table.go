package dbformat

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// codec binds a record type to its fixed size and its encode/decode
// functions, so Table[T] and Writer[T] stay generic over every table
// shape in the database.
type codec[T any] struct {
	size   int
	encode func(T) []byte
	decode func([]byte) T
}

var (
	departementCodec  = codec[Departement]{departementSize, encodeDepartement, decodeDepartement}
	postalCodec       = codec[Postal]{postalSize, encodePostal, decodePostal}
	communeCodec      = codec[Commune]{communeSize, encodeCommune, decodeCommune}
	voieCodec         = codec[Voie]{voieSize, encodeVoie, decodeVoie}
	localisationCodec = codec[Localisation]{localisationSize, encodeLocalisation, decodeLocalisation}
	kdNodeCodec       = codec[KDNode]{kdNodeSize, encodeKDNode, decodeKDNode}
	indexEntryCodec   = codec[IndexEntry]{indexEntrySize, encodeIndexEntry, decodeIndexEntry}
)

// Table is a read-only, memory-mapped, fixed-record array. Reads never
// allocate beyond decoding the single requested record.
type Table[T any] struct {
	codec codec[T]
	mm    mmap.MMap
	file  *os.File
}

// openTable memory-maps path read-only and validates that its size is an
// exact multiple of the record size.
func openTable[T any](path string, c codec[T]) (*Table[T], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat table %s: %w", path, err)
	}
	if info.Size() == 0 {
		return &Table[T]{codec: c, file: f}, nil
	}
	if info.Size()%int64(c.size) != 0 {
		f.Close()
		return nil, fmt.Errorf("table %s: size %d is not a multiple of record size %d", path, info.Size(), c.size)
	}
	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmap table %s: %w", path, err)
	}
	return &Table[T]{codec: c, mm: mm, file: f}, nil
}

// Len returns the number of records in the table.
func (t *Table[T]) Len() int {
	if t.mm == nil {
		return 0
	}
	return len(t.mm) / t.codec.size
}

// At decodes and returns the i-th record.
func (t *Table[T]) At(i int) T {
	o := i * t.codec.size
	return t.codec.decode(t.mm[o : o+t.codec.size])
}

// Close unmaps the table and closes the backing file.
func (t *Table[T]) Close() error {
	var err error
	if t.mm != nil {
		err = t.mm.Unmap()
	}
	if cerr := t.file.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// OpenDepartement, OpenPostal, ... open each table by its on-disk path.
func OpenDepartement(path string) (*Table[Departement], error) { return openTable(path, departementCodec) }
func OpenPostal(path string) (*Table[Postal], error)           { return openTable(path, postalCodec) }
func OpenCommune(path string) (*Table[Commune], error)         { return openTable(path, communeCodec) }
func OpenVoie(path string) (*Table[Voie], error)               { return openTable(path, voieCodec) }
func OpenLocalisation(path string) (*Table[Localisation], error) {
	return openTable(path, localisationCodec)
}
func OpenKDTree(path string) (*Table[KDNode], error)         { return openTable(path, kdNodeCodec) }
func OpenIndex(path string) (*Table[IndexEntry], error)      { return openTable(path, indexEntryCodec) }

// Writer accumulates records in memory and flushes them to a single
// fixed-record file in one sequential write. The indexing pipeline is
// single-threaded by contract (spec.md §5), so there is no concurrent
// writer case to support.
type Writer[T any] struct {
	codec   codec[T]
	records []T
}

func newWriter[T any](c codec[T]) *Writer[T] { return &Writer[T]{codec: c} }

// NewDepartementWriter, ... construct a Writer for each table shape.
func NewDepartementWriter() *Writer[Departement]     { return newWriter(departementCodec) }
func NewPostalWriter() *Writer[Postal]               { return newWriter(postalCodec) }
func NewCommuneWriter() *Writer[Commune]             { return newWriter(communeCodec) }
func NewVoieWriter() *Writer[Voie]                   { return newWriter(voieCodec) }
func NewLocalisationWriter() *Writer[Localisation]   { return newWriter(localisationCodec) }
func NewKDTreeWriter() *Writer[KDNode]               { return newWriter(kdNodeCodec) }
func NewIndexWriter() *Writer[IndexEntry]            { return newWriter(indexEntryCodec) }

// Append adds one record to the end of the table being built.
func (w *Writer[T]) Append(r T) { w.records = append(w.records, r) }

// Len returns the number of records appended so far.
func (w *Writer[T]) Len() int { return len(w.records) }

// At returns the i-th record appended so far.
func (w *Writer[T]) At(i int) T { return w.records[i] }

// WriteFile serializes every appended record, in append order, to path.
func (w *Writer[T]) WriteFile(path string) error {
	buf := make([]byte, 0, len(w.records)*w.codec.size)
	for _, r := range w.records {
		buf = append(buf, w.codec.encode(r)...)
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("write table %s: %w", path, err)
	}
	return nil
}
