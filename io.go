package packedbits

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
)

const (
	// entryType is the type tag written in front of a list entry
	entryType = "List<bool>"

	// entryShortListLen is the line-break threshold used by WriteEntry
	entryShortListLen = 10

	// MaxUniformListSize bounds N in a parsed N{v} list, which allocates
	// N bits without reading them from the input.
	MaxUniformListSize = 1 << 32
)

// appendList appends the textual list form of b to dst.
//
//	uniform:   N{v}
//	compact:   N(v v v)
//	multiline: \nN\n(\nv\nv\n)\n
//
// Line breaks are used only when shortListLen > 0 and the size exceeds it.
func (b *BitSet) appendList(dst []byte, shortListLen int) []byte {
	if b.Uniform() {
		dst = strconv.AppendInt(dst, int64(b.size), 10)
		dst = append(dst, '{', digit(b.get(0)), '}')
		return dst
	}
	if shortListLen <= 0 || b.size <= shortListLen {
		dst = strconv.AppendInt(dst, int64(b.size), 10)
		dst = append(dst, '(')
		for i := 0; i < b.size; i++ {
			if i > 0 {
				dst = append(dst, ' ')
			}
			dst = append(dst, digit(b.get(i)))
		}
		return append(dst, ')')
	}
	dst = append(dst, '\n')
	dst = strconv.AppendInt(dst, int64(b.size), 10)
	dst = append(dst, '\n', '(', '\n')
	for i := 0; i < b.size; i++ {
		dst = append(dst, digit(b.get(i)), '\n')
	}
	return append(dst, ')', '\n')
}

func digit(on bool) byte {
	if on {
		return '1'
	}
	return '0'
}

// WriteList writes the set as a textual list, breaking lines when the
// size exceeds _shortListLen_. Zero disables line breaks.
func (b *BitSet) WriteList(w io.Writer, shortListLen int) error {
	_, err := w.Write(b.appendList(nil, shortListLen))
	return err
}

// WriteEntry writes the set as a keyword entry terminated by ';'
//
//	selected List<bool> 4(1 0 0 1);
func (b *BitSet) WriteEntry(w io.Writer, keyword string) error {
	if keyword == "" {
		return errors.New("packedbits: empty keyword")
	}
	buf := make([]byte, 0, len(keyword)+len(entryType)+2*b.size+16)
	buf = append(buf, keyword...)
	buf = append(buf, ' ')
	buf = append(buf, entryType...)
	list := b.appendList(nil, entryShortListLen)
	if list[0] != '\n' {
		buf = append(buf, ' ')
	}
	buf = append(buf, list...)
	buf = append(buf, ';', '\n')
	_, err := w.Write(buf)
	return err
}

// String returns the compact list form
func (b *BitSet) String() string {
	return string(b.appendList(nil, 0))
}

// MarshalText implements encoding.TextMarshaler using the compact list form
func (b *BitSet) MarshalText() ([]byte, error) {
	return b.appendList(nil, 0), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (b *BitSet) UnmarshalText(text []byte) error {
	lx := newLexer(bytes.NewReader(text))
	parsed, err := lx.list()
	if err != nil {
		return err
	}
	if err := lx.expectEOF(); err != nil {
		return err
	}
	b.Transfer(parsed)
	return nil
}

// ReadList parses one textual list from _r_
func ReadList(r io.Reader) (*BitSet, error) {
	return newLexer(r).list()
}

// ReadEntry parses one keyword entry from _r_ and returns the keyword
// together with the set.
func ReadEntry(r io.Reader) (string, *BitSet, error) {
	lx := newLexer(r)
	keyword, err := lx.word()
	if err != nil {
		return "", nil, err
	}
	c, err := lx.peekNonSpace()
	if err != nil {
		return "", nil, lx.fail("expected list", err)
	}
	if !isDigit(c) {
		typ, err := lx.word()
		if err != nil {
			return "", nil, err
		}
		if typ != entryType {
			return "", nil, lx.fail(fmt.Sprintf("unexpected type %q", typ), nil)
		}
	}
	set, err := lx.list()
	if err != nil {
		return "", nil, err
	}
	if err := lx.expect(';'); err != nil {
		return "", nil, err
	}
	return keyword, set, nil
}

type lexer struct {
	r   io.ByteScanner
	off int
}

func newLexer(r io.Reader) *lexer {
	if bs, ok := r.(io.ByteScanner); ok {
		return &lexer{r: bs}
	}
	return &lexer{r: bufio.NewReader(r)}
}

func (lx *lexer) fail(msg string, cause error) error {
	if errors.Is(cause, io.EOF) {
		cause = io.ErrUnexpectedEOF
	}
	return &ParseError{Offset: lx.off, Msg: msg, cause: cause}
}

func (lx *lexer) read() (byte, error) {
	c, err := lx.r.ReadByte()
	if err == nil {
		lx.off++
	}
	return c, err
}

func (lx *lexer) unread() {
	if lx.r.UnreadByte() == nil {
		lx.off--
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isDelim(c byte) bool {
	return isSpace(c) || c == '(' || c == ')' || c == '{' || c == '}' || c == ';'
}

func (lx *lexer) peekNonSpace() (byte, error) {
	for {
		c, err := lx.read()
		if err != nil {
			return 0, err
		}
		if !isSpace(c) {
			lx.unread()
			return c, nil
		}
	}
}

// word reads a run of non-delimiter bytes after skipping whitespace
func (lx *lexer) word() (string, error) {
	if _, err := lx.peekNonSpace(); err != nil {
		return "", lx.fail("expected word", err)
	}
	var buf []byte
	for {
		c, err := lx.read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", lx.fail("read", err)
		}
		if isDelim(c) {
			lx.unread()
			break
		}
		buf = append(buf, c)
	}
	if len(buf) == 0 {
		return "", lx.fail("expected word", nil)
	}
	return string(buf), nil
}

func (lx *lexer) expect(want byte) error {
	c, err := lx.peekNonSpace()
	if err != nil {
		return lx.fail(fmt.Sprintf("expected %q", want), err)
	}
	if c != want {
		return lx.fail(fmt.Sprintf("expected %q, found %q", want, c), nil)
	}
	_, _ = lx.read()
	return nil
}

func (lx *lexer) expectEOF() error {
	c, err := lx.peekNonSpace()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return lx.fail("read", err)
	}
	return lx.fail(fmt.Sprintf("unexpected trailing %q", c), nil)
}

func (lx *lexer) value() (bool, error) {
	w, err := lx.word()
	if err != nil {
		return false, err
	}
	switch w {
	case "1", "true", "on", "yes":
		return true, nil
	case "0", "false", "off", "no":
		return false, nil
	}
	return false, lx.fail(fmt.Sprintf("invalid bool %q", w), nil)
}

func (lx *lexer) list() (*BitSet, error) {
	w, err := lx.word()
	if err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(w)
	if err != nil {
		return nil, lx.fail("invalid size", err)
	}
	if n < 0 {
		return nil, lx.fail("negative size", nil)
	}
	if n > maxSize {
		return nil, lx.fail("size out of range", nil)
	}
	c, err := lx.peekNonSpace()
	if err != nil {
		return nil, lx.fail("expected '(' or '{'", err)
	}
	_, _ = lx.read()

	switch c {
	case '{':
		val, err := lx.value()
		if err != nil {
			return nil, err
		}
		if err := lx.expect('}'); err != nil {
			return nil, err
		}
		if int64(n) > MaxUniformListSize {
			return nil, lx.fail("size out of range", nil)
		}
		return NewFilled(n, val), nil
	case '(':
		// storage grows with the values actually read
		set := New()
		for i := 0; i < n; i++ {
			val, err := lx.value()
			if err != nil {
				return nil, err
			}
			if val {
				set.set(i)
			}
		}
		if err := lx.expect(')'); err != nil {
			return nil, err
		}
		set.resize(n)
		return set, nil
	default:
		return nil, lx.fail(fmt.Sprintf("expected '(' or '{', found %q", c), nil)
	}
}
