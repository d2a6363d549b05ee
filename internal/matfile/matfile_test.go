// internal/matfile/matfile_test.go
package matfile

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"reflect"
	"testing"
)

type parsedVar struct {
	name  string
	class uint32
	rows  int
	cols  int
	i32   []int32
	f64   []float64
}

// parse walks the written bytes back: header checks, then one parsedVar
// per miMATRIX element.
func parse(t *testing.T, data []byte) []parsedVar {
	t.Helper()
	if len(data) < 128 {
		t.Fatalf("file too short: %d bytes", len(data))
	}
	if !bytes.HasPrefix(data, []byte("MATLAB 5.0 MAT-file")) {
		t.Fatalf("header text starts %q", data[:20])
	}
	if v := binary.LittleEndian.Uint16(data[124:126]); v != 0x0100 {
		t.Fatalf("version=%#x want 0x0100", v)
	}
	if data[126] != 'I' || data[127] != 'M' {
		t.Fatalf("endian indicator %q want \"IM\"", data[126:128])
	}
	var vars []parsedVar
	off := 128
	for off < len(data) {
		typ := binary.LittleEndian.Uint32(data[off : off+4])
		n := int(binary.LittleEndian.Uint32(data[off+4 : off+8]))
		if typ != miMATRIX {
			t.Fatalf("element at %d: type=%d want %d", off, typ, miMATRIX)
		}
		vars = append(vars, parseMatrix(t, data[off+8:off+8+n]))
		off += 8 + n
	}
	return vars
}

func parseMatrix(t *testing.T, el []byte) parsedVar {
	t.Helper()
	var pv parsedVar
	off := 0
	sub := func() (uint32, []byte) {
		typ := binary.LittleEndian.Uint32(el[off : off+4])
		n := int(binary.LittleEndian.Uint32(el[off+4 : off+8]))
		payload := el[off+8 : off+8+n]
		off += 8 + n
		for off%8 != 0 {
			off++
		}
		return typ, payload
	}

	typ, flags := sub()
	if typ != miUINT32 || len(flags) != 8 {
		t.Fatalf("array flags: type=%d len=%d", typ, len(flags))
	}
	pv.class = binary.LittleEndian.Uint32(flags[:4]) & 0xff

	typ, dims := sub()
	if typ != miINT32 || len(dims) != 8 {
		t.Fatalf("dimensions: type=%d len=%d", typ, len(dims))
	}
	pv.rows = int(int32(binary.LittleEndian.Uint32(dims[:4])))
	pv.cols = int(int32(binary.LittleEndian.Uint32(dims[4:])))

	typ, name := sub()
	if typ != miINT8 {
		t.Fatalf("name: type=%d want %d", typ, miINT8)
	}
	pv.name = string(name)

	typ, payload := sub()
	switch typ {
	case miINT32:
		for i := 0; i+4 <= len(payload); i += 4 {
			pv.i32 = append(pv.i32, int32(binary.LittleEndian.Uint32(payload[i:i+4])))
		}
	case miDOUBLE:
		for i := 0; i+8 <= len(payload); i += 8 {
			pv.f64 = append(pv.f64, math.Float64frombits(binary.LittleEndian.Uint64(payload[i:i+8])))
		}
	default:
		t.Fatalf("data: type=%d", typ)
	}
	return pv
}

func TestWriteSparseVariables(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf,
		IntColumn("id1", []int32{1, 1, 2}),
		IntColumn("id2", []int32{2, 3, 3}),
		Column("val", []float64{0.5, 0.9, 0.2}),
		IntColumn("nsnp", []int32{4}),
	)
	if err != nil {
		t.Fatal(err)
	}
	if buf.Len()%8 != 0 {
		t.Errorf("file length %d not 8-aligned", buf.Len())
	}

	vars := parse(t, buf.Bytes())
	if len(vars) != 4 {
		t.Fatalf("got %d variables, want 4", len(vars))
	}

	checkInt := func(pv parsedVar, name string, want []int32) {
		t.Helper()
		if pv.name != name {
			t.Errorf("name=%q want %q", pv.name, name)
		}
		if pv.class != mxINT32 {
			t.Errorf("%s: class=%d want %d", name, pv.class, mxINT32)
		}
		if pv.rows != len(want) || pv.cols != 1 {
			t.Errorf("%s: dims=[%d %d] want [%d 1]", name, pv.rows, pv.cols, len(want))
		}
		if !reflect.DeepEqual(pv.i32, want) {
			t.Errorf("%s: values=%v want %v", name, pv.i32, want)
		}
	}
	checkInt(vars[0], "id1", []int32{1, 1, 2})
	checkInt(vars[1], "id2", []int32{2, 3, 3})
	checkInt(vars[3], "nsnp", []int32{4})

	val := vars[2]
	if val.name != "val" || val.class != mxDOUBLE {
		t.Errorf("val: name=%q class=%d", val.name, val.class)
	}
	if val.rows != 3 || val.cols != 1 {
		t.Errorf("val: dims=[%d %d] want [3 1]", val.rows, val.cols)
	}
	if !reflect.DeepEqual(val.f64, []float64{0.5, 0.9, 0.2}) {
		t.Errorf("val: values=%v", val.f64)
	}
}

func TestWriteEmptyColumn(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Column("val", nil)); err != nil {
		t.Fatal(err)
	}
	vars := parse(t, buf.Bytes())
	if len(vars) != 1 {
		t.Fatalf("got %d variables, want 1", len(vars))
	}
	if vars[0].rows != 0 || vars[0].cols != 1 {
		t.Errorf("dims=[%d %d] want [0 1]", vars[0].rows, vars[0].cols)
	}
	if len(vars[0].f64) != 0 {
		t.Errorf("values=%v want none", vars[0].f64)
	}
}

func TestWriteRejectsUnnamed(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Column("", []float64{1})); err == nil {
		t.Fatal("expected error for unnamed variable")
	}
}

func TestWriteFile(t *testing.T) {
	fn := "test_out.mat"
	defer os.Remove(fn)
	if err := WriteFile(fn, IntColumn("nsnp", []int32{7})); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(fn)
	if err != nil {
		t.Fatal(err)
	}
	vars := parse(t, data)
	if len(vars) != 1 || vars[0].name != "nsnp" || !reflect.DeepEqual(vars[0].i32, []int32{7}) {
		t.Errorf("round trip mismatch: %+v", vars)
	}
}
