package viewer

import "golang.org/x/sys/unix"

// termSize reports the controlling terminal's cell grid and, when the
// terminal supports it, its pixel dimensions -- the same TIOCGWINSZ ioctl
// x/term itself uses internally for cell size, extended here to also read
// the pixel fields every modern terminal (including every Kitty-protocol
// implementation) fills in.
func termSize(fd int) (cols, rows, pixelW, pixelH int, err error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	cols, rows = int(ws.Col), int(ws.Row)
	pixelW, pixelH = int(ws.Xpixel), int(ws.Ypixel)
	if pixelW == 0 || pixelH == 0 {
		// Some terminals leave the pixel fields zero; fall back to a
		// conventional 8x16 cell in pixels rather than dividing by zero
		// downstream.
		pixelW, pixelH = cols*8, rows*16
	}
	return cols, rows, pixelW, pixelH, nil
}
