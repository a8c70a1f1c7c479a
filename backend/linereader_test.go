package backend

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func expectToRead(t *testing.T, reader io.Reader, expected []byte) {
	t.Helper()
	var scratch [1024]byte
	n, err := reader.Read(scratch[:])
	if err != nil {
		t.Errorf("expected read to succeed, got: %v", err)
	} else if !bytes.Equal(scratch[:n], expected) {
		t.Errorf("expected read to yield %q, got: %q", expected, scratch[:n])
	}
}

func expectReadEOF(t *testing.T, reader io.Reader) {
	t.Helper()
	var scratch [1024]byte
	n, err := reader.Read(scratch[:])
	if !errors.Is(err, io.EOF) {
		t.Errorf("expected read to give EOF, got: %v", err)
	} else if n != 0 {
		t.Errorf("expected read to read nothing, read %q", scratch[:n])
	}
}

func TestLineReader(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	buf.WriteString("year, China\n")
	buf.WriteString("1960, 667070000\n")
	l := NewLineReader(buf)
	expectToRead(t, l, []byte("year, China\n"))
	expectToRead(t, l, []byte("1960, 667070000\n"))
	// A row still being appended must not surface until its newline
	// arrives.
	buf.WriteString("1961, 6603")
	expectReadEOF(t, l)
	buf.WriteString("30000\n")
	expectToRead(t, l, []byte("1961, 660330000\n"))
	buf.WriteString("19")
	expectReadEOF(t, l)
	buf.WriteString("62")
	expectReadEOF(t, l)
	buf.WriteString(", 1\n1963")
	expectToRead(t, l, []byte("1962, 1\n"))
}
