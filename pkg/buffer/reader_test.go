package buffer

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"
	"testing/iotest"

	"github.com/neilotoole/slogt"

	"github.com/columnarwire/pgproxy/pkg/types"
)

func TestNewReaderNil(t *testing.T) {
	reader := NewReader(slogt.New(t), nil, 0)
	if reader != nil {
		t.Fatalf("unexpected result, expected reader to be nil %+v", reader)
	}
}

func TestReadTypedMsg(t *testing.T) {
	expected := types.ClientSimpleQuery
	text := append([]byte("select 1"), 0)

	buf := bytes.NewBuffer(nil)
	buf.WriteByte(byte(expected))

	size := make([]byte, 4)
	binary.BigEndian.PutUint32(size, uint32(len(text)+4))
	buf.Write(size)
	buf.Write(text)

	reader := NewReader(slogt.New(t), buf, DefaultBufferSize)

	ty, n, err := reader.ReadTypedMsg()
	if err != nil {
		t.Fatal(err)
	}
	if ty != expected {
		t.Errorf("unexpected message type %s, expected %s", string(ty), string(expected))
	}
	if n != 4+len(text) {
		t.Errorf("unexpected message length %d, expected %d", n, 4+len(text))
	}
}

// TestReadTypedMsg_ShortReads verifies that a frame delivered across many
// small Read calls is parsed identically to one delivered whole (spec 8:
// "A Startup packet split across two TCP reads is parsed identically to one
// delivered whole" generalized to every message-phase frame).
func TestReadTypedMsg_ShortReads(t *testing.T) {
	text := append([]byte("select * from test1"), 0)

	buf := bytes.NewBuffer(nil)
	buf.WriteByte(byte(types.ClientSimpleQuery))
	size := make([]byte, 4)
	binary.BigEndian.PutUint32(size, uint32(len(text)+4))
	buf.Write(size)
	buf.Write(text)

	reader := NewReader(slogt.New(t), iotest.OneByteReader(buf), DefaultBufferSize)

	ty, n, err := reader.ReadTypedMsg()
	if err != nil {
		t.Fatal(err)
	}
	if ty != types.ClientSimpleQuery {
		t.Fatalf("unexpected type %s", ty)
	}
	if n != 4+len(text) {
		t.Fatalf("unexpected length %d, expected %d", n, 4+len(text))
	}

	got, err := reader.GetString()
	if err != nil {
		t.Fatal(err)
	}
	if got != string(text[:len(text)-1]) {
		t.Fatalf("unexpected string %q", got)
	}
}

// TestReadTypedMsg_Coalesced verifies that two frames arriving in a single
// underlying Read are tokenised into two independent messages.
func TestReadTypedMsg_Coalesced(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	for _, sql := range []string{"select 1", "select 2"} {
		text := append([]byte(sql), 0)
		buf.WriteByte(byte(types.ClientSimpleQuery))
		size := make([]byte, 4)
		binary.BigEndian.PutUint32(size, uint32(len(text)+4))
		buf.Write(size)
		buf.Write(text)
	}

	reader := NewReader(slogt.New(t), buf, DefaultBufferSize)

	for _, want := range []string{"select 1", "select 2"} {
		ty, _, err := reader.ReadTypedMsg()
		if err != nil {
			t.Fatal(err)
		}
		if ty != types.ClientSimpleQuery {
			t.Fatalf("unexpected type %s", ty)
		}

		got, err := reader.GetString()
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Fatalf("unexpected sql %q, expected %q", got, want)
		}
	}
}

func TestReadUntypedMsg(t *testing.T) {
	text := append([]byte("John Doe"), 0)
	buf := bytes.NewBuffer(nil)

	size := make([]byte, 4)
	binary.BigEndian.PutUint32(size, uint32(len(text)+4))

	buf.Write(size)
	buf.Write(text)

	reader := NewReader(slogt.New(t), buf, DefaultBufferSize)

	n, err := reader.ReadUntypedMsg()
	if err != nil {
		t.Fatal(err)
	}
	if n != 4+len(text) {
		t.Errorf("unexpected message length %d, expected %d", n, 4+len(text))
	}
}

func TestReadUntypedMsgParameters(t *testing.T) {
	text := append([]byte("John Doe"), 0)
	prepare := PrepareStatement
	raw := []byte{0, 1, 0}
	u16 := make([]byte, 2)
	u32 := make([]byte, 4)

	binary.BigEndian.PutUint16(u16, uint16(math.MaxUint16))
	binary.BigEndian.PutUint32(u32, uint32(math.MaxUint32))

	msg := bytes.NewBuffer(nil)
	msg.Write(text)
	msg.WriteByte(byte(prepare))
	msg.Write(raw)
	msg.Write(u16)
	msg.Write(u32)

	framed := bytes.NewBuffer(nil)
	size := make([]byte, 4)
	binary.BigEndian.PutUint32(size, uint32(msg.Len()+4))
	framed.Write(size)
	framed.Write(msg.Bytes())

	reader := NewReader(slogt.New(t), framed, DefaultBufferSize)

	n, err := reader.ReadUntypedMsg()
	if err != nil {
		t.Fatal(err)
	}
	if n != 4+msg.Len() {
		t.Errorf("unexpected message length %d, expected %d", n, 4+msg.Len())
	}

	expected := string(text[:len(text)-1])
	rstring, err := reader.GetString()
	if err != nil {
		t.Fatal(err)
	}
	if rstring != expected {
		t.Fatalf("unexpected string %q, expected %q", rstring, expected)
	}

	rprepare, err := reader.GetPrepareType()
	if err != nil {
		t.Fatal(err)
	}
	if rprepare != prepare {
		t.Fatalf("unexpected prepare type %+v, expected %+v", rprepare, prepare)
	}

	rbytes, err := reader.GetBytes(len(raw))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(rbytes, raw) {
		t.Fatalf("unexpected bytes %+v, expected %+v", rbytes, raw)
	}

	ru16, err := reader.GetUint16()
	if err != nil {
		t.Fatal(err)
	}
	if ru16 != math.MaxUint16 {
		t.Fatalf("unexpected uint16 %+v, expected %+v", ru16, math.MaxUint16)
	}

	ru32, err := reader.GetUint32()
	if err != nil {
		t.Fatal(err)
	}
	if ru32 != math.MaxUint32 {
		t.Fatalf("unexpected uint32 %+v, expected %+v", ru32, math.MaxUint32)
	}
}

func TestGetStringNulTerminatorNotfound(t *testing.T) {
	reader := &Reader{Msg: []byte("John Doe")}

	_, err := reader.GetString()
	if !errors.Is(err, ErrMissingNulTerminator) {
		t.Fatalf("unexpected err %s, expected %s", err, ErrMissingNulTerminator)
	}
}

func TestGetInsufficientData(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	reader := &Reader{
		Msg:    []byte{},
		Buffer: bufio.NewReader(buf),
	}

	t.Run("typed header msg", func(t *testing.T) {
		_, _, err := reader.ReadTypedMsg()
		if err == nil {
			t.Fatal("unexpected pass")
		}
	})

	t.Run("untyped msg", func(t *testing.T) {
		_, err := reader.ReadUntypedMsg()
		if err == nil {
			t.Fatal("unexpected pass")
		}
	})

	t.Run("string", func(t *testing.T) {
		_, err := reader.GetString()
		if !errors.Is(err, ErrMissingNulTerminator) {
			t.Fatalf("unexpected err %s, expected %s", err, ErrMissingNulTerminator)
		}
	})

	t.Run("bytes", func(t *testing.T) {
		_, err := reader.GetBytes(5)
		if !errors.Is(err, ErrInsufficientData) {
			t.Fatalf("unexpected err %s, expected %s", err, ErrInsufficientData)
		}
	})

	t.Run("uint16", func(t *testing.T) {
		_, err := reader.GetUint16()
		if !errors.Is(err, ErrInsufficientData) {
			t.Fatalf("unexpected err %s, expected %s", err, ErrInsufficientData)
		}
	})

	t.Run("uint32", func(t *testing.T) {
		_, err := reader.GetUint32()
		if !errors.Is(err, ErrInsufficientData) {
			t.Fatalf("unexpected err %s, expected %s", err, ErrInsufficientData)
		}
	})

	t.Run("int32", func(t *testing.T) {
		_, err := reader.GetInt32()
		if !errors.Is(err, ErrInsufficientData) {
			t.Fatalf("unexpected err %s, expected %s", err, ErrInsufficientData)
		}
	})
}

// TestGetBytesNull verifies the NULL-cell boundary behaviour (spec 8): a
// length of -1 deserializes as a nil value with no bytes consumed.
func TestGetBytesNull(t *testing.T) {
	reader := &Reader{Msg: []byte("unused")}

	v, err := reader.GetBytes(-1)
	if err != nil {
		t.Fatal(err)
	}
	if v != nil {
		t.Fatalf("unexpected bytes %+v, expected nil", v)
	}
	if len(reader.Msg) != len("unused") {
		t.Fatalf("GetBytes(-1) must not consume from Msg")
	}
}

func TestMsgReset(t *testing.T) {
	expected := 4096

	t.Run("undefined", func(t *testing.T) {
		reader := &Reader{}
		reader.reset(expected)

		if len(reader.Msg) != expected {
			t.Errorf("unexpected reader message size %d, expected %d", len(reader.Msg), expected)
		}
	})

	t.Run("greater", func(t *testing.T) {
		reader := &Reader{Msg: make([]byte, 0, expected*2)}
		reader.reset(expected)

		if len(reader.Msg) != expected {
			t.Errorf("unexpected reader message size %d, expected %d", len(reader.Msg), expected)
		}
	})

	t.Run("smaller", func(t *testing.T) {
		reader := &Reader{Msg: make([]byte, 0, expected/2)}
		reader.reset(expected)

		if len(reader.Msg) != expected {
			t.Errorf("unexpected reader message size %d, expected %d", len(reader.Msg), expected)
		}
	})
}
