package markdown

import "testing"

func TestExtractBareURLs(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []string
	}{
		{"basic", "Visit https://example.invalid for details", []string{"https://example.invalid"}},
		{"trailing period", "See https://example.invalid/page.", []string{"https://example.invalid/page"}},
		{"trailing comma", "https://example.invalid/page, more", []string{"https://example.invalid/page"}},
		{"multiple", "https://a.invalid and https://b.invalid", []string{"https://a.invalid", "https://b.invalid"}},
		{"path query fragment", "https://example.invalid/path?q=1&r=2#frag", []string{"https://example.invalid/path?q=1&r=2#frag"}},
		{"parenthesized", "(https://example.invalid/wiki/Rust_(lang))", []string{"https://example.invalid/wiki/Rust_(lang"}},
		{"http", "http://example.invalid", []string{"http://example.invalid"}},
		{"none", "plain text", nil},
		{"non-latin surrounding text", "参考: https://example.invalid を見て", []string{"https://example.invalid"}},
		{"trailing colon", "URL: https://example.invalid:", []string{"https://example.invalid"}},
		{"trailing exclamation", "https://example.invalid!", []string{"https://example.invalid"}},
		{"trailing question", "https://example.invalid?", []string{"https://example.invalid"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ExtractBareURLs(c.text)
			if len(got) != len(c.want) {
				t.Fatalf("ExtractBareURLs(%q) = %v, want %v", c.text, got, c.want)
			}
			for i := range got {
				if got[i] != c.want[i] {
					t.Errorf("ExtractBareURLs(%q)[%d] = %q, want %q", c.text, i, got[i], c.want[i])
				}
			}
		})
	}
}

func TestExtractURLsFromLinesSingleLink(t *testing.T) {
	md := "Check [Rust](https://rust.invalid/) for details.\n"
	got := ExtractURLsFromLines(md, 1, 1)
	if len(got) != 1 || got[0].URL != "https://rust.invalid/" || got[0].Text != "Rust" {
		t.Fatalf("got %+v", got)
	}
}

func TestExtractURLsFromLinesMultipleLinks(t *testing.T) {
	md := "See [A](https://a.invalid/) and [B](https://b.invalid/).\n"
	got := ExtractURLsFromLines(md, 1, 1)
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2: %+v", len(got), got)
	}
	if got[0].URL != "https://a.invalid/" || got[0].Text != "A" {
		t.Errorf("entry 0 = %+v", got[0])
	}
	if got[1].URL != "https://b.invalid/" || got[1].Text != "B" {
		t.Errorf("entry 1 = %+v", got[1])
	}
}

func TestExtractURLsFromLinesNoLinks(t *testing.T) {
	md := "Just plain text, no links here.\n"
	if got := ExtractURLsFromLines(md, 1, 1); len(got) != 0 {
		t.Fatalf("got %+v, want none", got)
	}
}

func TestExtractURLsFromLinesOutOfBounds(t *testing.T) {
	md := "Some text\n"
	if got := ExtractURLsFromLines(md, 5, 5); len(got) != 0 {
		t.Fatalf("got %+v, want none", got)
	}
}

func TestExtractURLsFromLinesMultilineBlock(t *testing.T) {
	md := "Line 1\n[link1](https://one.invalid/)\n[link2](https://two.invalid/)\nLine 4\n"
	got := ExtractURLsFromLines(md, 2, 3)
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2: %+v", len(got), got)
	}
	if got[0].URL != "https://one.invalid/" || got[1].URL != "https://two.invalid/" {
		t.Errorf("got %+v", got)
	}
}

func TestExtractURLsFromLinesBareURL(t *testing.T) {
	md := "Check https://rust-lang.invalid/ for more\n"
	got := ExtractURLsFromLines(md, 1, 1)
	if len(got) != 1 || got[0].URL != "https://rust-lang.invalid/" || got[0].Text != "https://rust-lang.invalid/" {
		t.Fatalf("got %+v", got)
	}
}

func TestExtractURLsFromLinesMixedLinkAndBare(t *testing.T) {
	md := "[Rust](https://rust-lang.invalid) and https://crates.invalid\n"
	got := ExtractURLsFromLines(md, 1, 1)
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2: %+v", len(got), got)
	}
	if got[0].URL != "https://rust-lang.invalid" || got[0].Text != "Rust" {
		t.Errorf("entry 0 = %+v", got[0])
	}
	if got[1].URL != "https://crates.invalid" || got[1].Text != "https://crates.invalid" {
		t.Errorf("entry 1 = %+v", got[1])
	}
}

func TestExtractURLsFromLinesBareDuplicateWithLink(t *testing.T) {
	md := "[Rust](https://rust-lang.invalid) and https://rust-lang.invalid\n"
	got := ExtractURLsFromLines(md, 1, 1)
	if len(got) != 1 {
		t.Fatalf("duplicate bare URL should be deduplicated, got %+v", got)
	}
	if got[0].URL != "https://rust-lang.invalid" || got[0].Text != "Rust" {
		t.Errorf("got %+v", got[0])
	}
}

func TestExtractURLsFromLinesBareURLsInList(t *testing.T) {
	md := "- https://help.x.invalid/ja/using-x/create-a-thread\n- https://help.x.invalid/en/using-x/types-of-posts\n"
	got := ExtractURLsFromLines(md, 1, 2)
	if len(got) != 2 {
		t.Fatalf("each list item should produce one URL, got %+v", got)
	}
	if got[0].URL != "https://help.x.invalid/ja/using-x/create-a-thread" {
		t.Errorf("entry 0 = %+v", got[0])
	}
	if got[1].URL != "https://help.x.invalid/en/using-x/types-of-posts" {
		t.Errorf("entry 1 = %+v", got[1])
	}
}
