package viewer

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// chunkSize is the Kitty graphics protocol's maximum base64 payload per
// APC, matching the terminal-side buffer every known implementation
// enforces.
const chunkSize = 4096

// ErrTerminalUnsupported marks a failure to acquire the terminal for
// viewer mode (not a tty, or raw mode unavailable), the only load failure
// that exits the process rather than flashing and continuing. Callers use
// errors.Is against this sentinel to pick exit code 3.
var ErrTerminalUnsupported = errors.New("viewer: terminal not supported")

// CheckTTY errors with a message naming terminals that support the Kitty
// graphics protocol if stdout is not a terminal. stdin being a pipe (piped Markdown
// input) is fine -- keystrokes are read from /dev/tty directly.
func CheckTTY() error {
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return nil
	}
	return fmt.Errorf("%w: stdout is not a terminal; run inside a terminal that supports the Kitty graphics protocol (kitty, wezterm, ghostty)", ErrTerminalUnsupported)
}

// RawGuard puts the controlling terminal into raw mode and the alternate
// screen for the life of a viewer session, restoring everything -- raw
// mode, the primary screen, the cursor, and every placed image -- on
// Cleanup. x/term has no alternate-screen or cursor concept, so those are
// plain ANSI escapes written directly, the same way the Kitty placement
// commands below are.
type RawGuard struct {
	tty   *os.File
	state *term.State
}

// Enter switches /dev/tty into raw mode and the alternate screen.
func Enter() (*RawGuard, error) {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: opening /dev/tty: %v", ErrTerminalUnsupported, err)
	}
	state, err := term.MakeRaw(int(tty.Fd()))
	if err != nil {
		tty.Close()
		return nil, fmt.Errorf("%w: entering raw mode: %v", ErrTerminalUnsupported, err)
	}
	fmt.Fprint(os.Stdout, "\x1b[?1049h\x1b[?25l")
	return &RawGuard{tty: tty, state: state}, nil
}

// Cleanup restores the primary screen, cursor, and terminal mode, and
// deletes every image this session placed.
func (g *RawGuard) Cleanup() {
	DeleteAllImages(os.Stdout)
	fmt.Fprint(os.Stdout, "\x1b[?25h\x1b[?1049l")
	if g.state != nil {
		term.Restore(int(g.tty.Fd()), g.state)
	}
	g.tty.Close()
}

// TTY returns the raw keyboard input stream opened by Enter.
func (g *RawGuard) TTY() *os.File { return g.tty }

// SendImage uploads img's PNG bytes under id via the Kitty graphics
// protocol, base64-encoded and split into chunkSize-byte continuation
// APCs. q=2 suppresses the terminal's success/failure response, which
// some terminal input parsers otherwise misparse as a stray key event.
func SendImage(w io.Writer, id uint32, pngData []byte) {
	enc := base64.StdEncoding.EncodeToString(pngData)
	for len(enc) > 0 {
		n := chunkSize
		more := 1
		if n >= len(enc) {
			n = len(enc)
			more = 0
		}
		chunk := enc[:n]
		enc = enc[n:]
		fmt.Fprintf(w, "\x1b_Ga=t,f=100,t=d,i=%d,q=2,m=%d;%s\x1b\\", id, more, chunk)
	}
}

// DeleteImage removes one placed image by ID.
func DeleteImage(w io.Writer, id uint32) {
	fmt.Fprintf(w, "\x1b_Ga=d,d=I,i=%d,q=2\x1b\\", id)
}

// DeleteAllImages removes every image the terminal is currently tracking,
// used on exit (Cleanup) and when the loop applies EffectDeletePlacements.
func DeleteAllImages(w io.Writer) {
	fmt.Fprint(w, "\x1b_Ga=d,d=A,q=2\x1b\\")
}

// PlaceTile places a previously-uploaded image at terminal cell (col, row),
// cropped to the source rectangle (srcX, srcY, srcW, srcH) -- pixel
// coordinates into the uploaded image -- and scaled to fill cols x rows
// cells. The crop rectangle is what lets a tile larger than one viewport
// actually scroll: without it, the terminal always shows the whole
// uploaded image rescaled to the placement box, and the placed image never
// moves as YOffsetPt changes within a tile.
func PlaceTile(w io.Writer, id uint32, col, row, cols, rows, srcX, srcY, srcW, srcH int) {
	fmt.Fprintf(w, "\x1b[%d;%dH", row+1, col+1)
	fmt.Fprintf(w, "\x1b_Ga=p,i=%d,x=%d,y=%d,w=%d,h=%d,c=%d,r=%d,q=2\x1b\\", id, srcX, srcY, srcW, srcH, cols, rows)
}

// DrawStatusBar writes the bottom status row: the filename, a pending
// numeric accumulator, a transient flash message, or the default key-hint
// line, plus a right-aligned scroll percentage.
func DrawStatusBar(w io.Writer, lay Layout, filename, flash string, pending int, scrollPct int) {
	fmt.Fprintf(w, "\x1b[%d;1H\x1b[2K", lay.StatusRow+1)
	left := defaultStatusHint
	switch {
	case flash != "":
		left = flash
	case pending > 0:
		left = fmt.Sprintf("%s (%d)", filename, pending)
	default:
		left = filename + "  " + defaultStatusHint
	}
	right := fmt.Sprintf("%d%%", scrollPct)
	fmt.Fprint(w, padStatus(left, right, lay.TermCols))
}

const defaultStatusHint = "j/k scroll  g/G top/bottom  / search  : command  o url  y yank  q quit"

func padStatus(left, right string, cols int) string {
	pad := cols - len(left) - len(right)
	if pad < 1 {
		if len(left) >= cols {
			return left[:cols]
		}
		return left
	}
	out := left
	for i := 0; i < pad; i++ {
		out += " "
	}
	return out + right
}

// DrawCommandBar writes the bottom row in Command mode: "/query_" or
// ":cmd_" with the cursor positioned just past the typed text.
func DrawCommandBar(w io.Writer, lay Layout, prefix, input string) {
	fmt.Fprintf(w, "\x1b[%d;1H\x1b[2K", lay.StatusRow+1)
	fmt.Fprintf(w, "%s%s_", prefix, input)
}

// Yank copies text to the system clipboard, falling back to an OSC 52
// escape sequence (base64-encoded, terminal-native clipboard set) when no
// system clipboard is reachable -- an SSH session over a terminal with
// OSC 52 support being the common case that needs the fallback.
func Yank(w io.Writer, text string) error {
	if err := clipboard.WriteAll(text); err == nil {
		return nil
	}
	sendOSC52(w, text)
	return nil
}

func sendOSC52(w io.Writer, text string) {
	enc := base64.StdEncoding.EncodeToString([]byte(text))
	fmt.Fprintf(w, "\x1b]52;c;%s\x07", enc)
}
