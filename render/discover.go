package render

import "fmt"

// Font discovery beyond checking a short list of conventional install
// paths is explicitly out of scope: configure an explicit path (via
// config.Config) for anything not found this way.
var (
	defaultBodyCandidates = []string{
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
		"/usr/share/fonts/TTF/DejaVuSans.ttf",
	}
	defaultBoldCandidates = []string{
		"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
		"/usr/share/fonts/truetype/liberation/LiberationSans-Bold.ttf",
	}
	defaultItalicCandidates = []string{
		"/usr/share/fonts/truetype/dejavu/DejaVuSans-Oblique.ttf",
		"/usr/share/fonts/truetype/liberation/LiberationSans-Italic.ttf",
	}
	defaultBoldItalicCandidates = []string{
		"/usr/share/fonts/truetype/dejavu/DejaVuSans-BoldOblique.ttf",
		"/usr/share/fonts/truetype/liberation/LiberationSans-BoldItalic.ttf",
	}
	defaultMonoCandidates = []string{
		"/usr/share/fonts/truetype/dejavu/DejaVuSansMono.ttf",
		"/usr/share/fonts/truetype/liberation/LiberationMono-Regular.ttf",
	}
)

// DiscoverFonts loads a FontSet from explicit overrides where given, and
// the first existing conventional install path otherwise. Body is
// required; a missing variant silently falls back to Body/Mono at draw
// time (FontSet.pick).
func DiscoverFonts(bodyPath, boldPath, italicPath, boldItalicPath, monoPath string) (*FontSet, error) {
	body, err := loadPreferred(bodyPath, defaultBodyCandidates)
	if err != nil {
		return nil, fmt.Errorf("render: no body font found (set fonts.body in config): %w", err)
	}

	fs := &FontSet{Body: body}
	fs.Bold, _ = loadPreferred(boldPath, defaultBoldCandidates)
	fs.Italic, _ = loadPreferred(italicPath, defaultItalicCandidates)
	fs.BoldItalic, _ = loadPreferred(boldItalicPath, defaultBoldItalicCandidates)
	fs.Mono, _ = loadPreferred(monoPath, defaultMonoCandidates)
	if fs.Mono == nil {
		fs.Mono = body
	}
	return fs, nil
}

func loadPreferred(explicit string, candidates []string) (*Face, error) {
	if explicit != "" {
		return LoadFace(explicit)
	}
	var lastErr error
	for _, c := range candidates {
		f, err := LoadFace(c)
		if err == nil {
			return f, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no candidate paths configured")
	}
	return nil, lastErr
}
