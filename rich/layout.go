package rich

import "unicode/utf8"

// ContentToBoxes converts Content (styled spans) into a sequence of Boxes.
// Each Box represents either a run of text, a newline, a tab, or an image.
// Text is split on newlines and tabs, which become their own boxes.
func ContentToBoxes(c Content) []Box {
	var boxes []Box
	offset := 0
	for _, span := range c {
		if span.Style.Image {
			boxes = append(boxes, Box{
				Nrune:     -1,
				Style:     span.Style,
				Offset:    offset,
				ImageData: span.Image,
			})
			offset += len(span.Text)
			continue
		}
		if span.Text == "" {
			continue
		}
		boxes = appendSpanBoxes(boxes, span, offset)
		offset += len(span.Text)
	}
	return boxes
}

// appendSpanBoxes appends boxes from a single span to the slice.
// It splits the span text on newlines and tabs. spanOffset is the byte
// offset of the span's first byte within the rendered plain-text stream.
func appendSpanBoxes(boxes []Box, span Span, spanOffset int) []Box {
	text := span.Text
	style := span.Style
	pos := 0

	for len(text) > 0 {
		idx := -1
		var special rune
		for i, r := range text {
			if r == '\n' || r == '\t' {
				idx = i
				special = r
				break
			}
		}

		if idx == -1 {
			boxes = append(boxes, Box{
				Text:   []byte(text),
				Nrune:  utf8.RuneCountInString(text),
				Bc:     0,
				Style:  style,
				Offset: spanOffset + pos,
			})
			break
		}

		if idx > 0 {
			prefix := text[:idx]
			boxes = append(boxes, Box{
				Text:   []byte(prefix),
				Nrune:  utf8.RuneCountInString(prefix),
				Bc:     0,
				Style:  style,
				Offset: spanOffset + pos,
			})
		}

		boxes = append(boxes, Box{
			Text:   nil,
			Nrune:  -1,
			Bc:     special,
			Style:  style,
			Offset: spanOffset + pos + idx,
		})

		pos += idx + 1
		text = text[idx+1:]
	}

	return boxes
}
