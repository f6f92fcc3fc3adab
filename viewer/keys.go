package viewer

import (
	"bufio"
	"io"
)

// KeyKind identifies the category of a decoded keypress. No terminal-event
// library appears anywhere in the retrieved reference material for this
// program's ecosystem, so raw bytes read under x/term's raw mode are
// decoded by hand against the small set of sequences this viewer needs.
type KeyKind int

const (
	KeyRune KeyKind = iota
	KeyEnter
	KeyEsc
	KeyBackspace
	KeyTab
	KeyCtrlC
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

// Key is one decoded keypress. Rune is only meaningful when Kind is
// KeyRune.
type Key struct {
	Kind KeyKind
	Rune rune
}

// KeyReader decodes a raw byte stream into Keys, recognizing the ANSI
// escape sequences for arrow keys and Esc.
type KeyReader struct {
	r *bufio.Reader
}

// NewKeyReader wraps r for key-by-key decoding.
func NewKeyReader(r io.Reader) *KeyReader {
	return &KeyReader{r: bufio.NewReader(r)}
}

// ReadKey blocks until one key is decoded or the stream errors.
func (kr *KeyReader) ReadKey() (Key, error) {
	b, err := kr.r.ReadByte()
	if err != nil {
		return Key{}, err
	}

	switch b {
	case 0x03:
		return Key{Kind: KeyCtrlC}, nil
	case '\r', '\n':
		return Key{Kind: KeyEnter}, nil
	case 0x7f, 0x08:
		return Key{Kind: KeyBackspace}, nil
	case '\t':
		return Key{Kind: KeyTab}, nil
	case 0x1b:
		return kr.readEscape()
	}

	if b < 0x80 {
		return Key{Kind: KeyRune, Rune: rune(b)}, nil
	}

	// Multi-byte UTF-8 rune: unread the lead byte and decode it whole.
	if err := kr.r.UnreadByte(); err != nil {
		return Key{}, err
	}
	r, _, err := kr.r.ReadRune()
	if err != nil {
		return Key{}, err
	}
	return Key{Kind: KeyRune, Rune: r}, nil
}

// readEscape decodes the CSI/SS3 sequences for arrow keys, falling back to
// a bare Esc when nothing follows or what follows isn't recognized. A byte
// after Esc other than '[' or 'O' is unread and starts the next key; an
// unrecognized byte after '[' or 'O' is consumed along with it.
func (kr *KeyReader) readEscape() (Key, error) {
	if kr.r.Buffered() == 0 {
		return Key{Kind: KeyEsc}, nil
	}
	b1, err := kr.r.ReadByte()
	if err != nil {
		return Key{Kind: KeyEsc}, nil
	}
	if b1 != '[' && b1 != 'O' {
		kr.r.UnreadByte()
		return Key{Kind: KeyEsc}, nil
	}
	b2, err := kr.r.ReadByte()
	if err != nil {
		return Key{Kind: KeyEsc}, nil
	}
	switch b2 {
	case 'A':
		return Key{Kind: KeyUp}, nil
	case 'B':
		return Key{Kind: KeyDown}, nil
	case 'C':
		return Key{Kind: KeyRight}, nil
	case 'D':
		return Key{Kind: KeyLeft}, nil
	default:
		return Key{Kind: KeyEsc}, nil
	}
}
