// internal/matfile/matfile.go
package matfile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// MAT-file level 5 data type and array class codes.
const (
	miINT8   = 1
	miINT32  = 5
	miUINT32 = 6
	miDOUBLE = 9
	miMATRIX = 14

	mxDOUBLE = 6
	mxINT32  = 12
)

// headerText opens the 116-byte description field. Readers detect a
// level 5 file by this prefix, so it must come first.
const headerText = "MATLAB 5.0 MAT-file, written by ldmat"

// Var is one named array queued for writing. All arrays are column
// vectors; a single-element column doubles as a scalar.
type Var struct {
	name  string
	class uint32
	i32   []int32
	f64   []float64
}

// IntColumn queues v as an int32 column vector named name.
func IntColumn(name string, v []int32) Var {
	return Var{name: name, class: mxINT32, i32: v}
}

// Column queues v as a double column vector named name.
func Column(name string, v []float64) Var {
	return Var{name: name, class: mxDOUBLE, f64: v}
}

func (v Var) rows() int {
	if v.class == mxINT32 {
		return len(v.i32)
	}
	return len(v.f64)
}

// Write emits a little-endian, uncompressed level 5 file: the 128-byte
// header followed by one miMATRIX element per variable, in order.
func Write(w io.Writer, vars ...Var) error {
	if err := writeHeader(w); err != nil {
		return fmt.Errorf("matfile: %w", err)
	}
	for _, v := range vars {
		elem, err := v.encode()
		if err != nil {
			return fmt.Errorf("matfile: %w", err)
		}
		if _, err := w.Write(elem); err != nil {
			return fmt.Errorf("matfile: write %q: %w", v.name, err)
		}
	}
	return nil
}

// WriteFile creates path and writes the variables into it.
func WriteFile(path string, vars ...Var) error {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(fh, vars...); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}

func writeHeader(w io.Writer) error {
	var hdr [128]byte
	copy(hdr[:116], headerText)
	binary.LittleEndian.PutUint16(hdr[124:126], 0x0100)
	hdr[126], hdr[127] = 'I', 'M'
	_, err := w.Write(hdr[:])
	return err
}

// encode renders one miMATRIX element: array flags, dimensions, name,
// then the real part. Every subelement is padded to an 8-byte boundary.
func (v Var) encode() ([]byte, error) {
	if v.name == "" {
		return nil, errors.New("variable has no name")
	}
	var body bytes.Buffer

	writeTag(&body, miUINT32, 8)
	putUint32(&body, v.class)
	putUint32(&body, 0)

	writeTag(&body, miINT32, 8)
	putUint32(&body, uint32(v.rows()))
	putUint32(&body, 1)

	writeTag(&body, miINT8, uint32(len(v.name)))
	body.WriteString(v.name)
	pad(&body)

	switch v.class {
	case mxINT32:
		writeTag(&body, miINT32, uint32(4*len(v.i32)))
		for _, x := range v.i32 {
			putUint32(&body, uint32(x))
		}
	case mxDOUBLE:
		writeTag(&body, miDOUBLE, uint32(8*len(v.f64)))
		for _, x := range v.f64 {
			putUint64(&body, math.Float64bits(x))
		}
	default:
		return nil, fmt.Errorf("variable %q has unsupported class %d", v.name, v.class)
	}
	pad(&body)

	out := make([]byte, 8+body.Len())
	binary.LittleEndian.PutUint32(out[0:4], miMATRIX)
	binary.LittleEndian.PutUint32(out[4:8], uint32(body.Len()))
	copy(out[8:], body.Bytes())
	return out, nil
}

func writeTag(b *bytes.Buffer, typ, n uint32) {
	putUint32(b, typ)
	putUint32(b, n)
}

func putUint32(b *bytes.Buffer, x uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], x)
	b.Write(tmp[:])
}

func putUint64(b *bytes.Buffer, x uint64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], x)
	b.Write(tmp[:])
}

func pad(b *bytes.Buffer) {
	for b.Len()%8 != 0 {
		b.WriteByte(0)
	}
}
