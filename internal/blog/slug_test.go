package blog

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello World Example", "hello-world-example"},
		{"Hello, World!", "hello-world"},
		{"  leading and trailing  ", "leading-and-trailing"},
		{"MiXeD CaSe 123", "mixed-case-123"},
		{"tabs\tand\nnewlines", "tabs-and-newlines"},
		{"déjà vu", "d-j-vu"},
		{"---", ""},
		{"", ""},
		{"a--b", "a-b"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSlugifyCapsLength(t *testing.T) {
	long := strings.Repeat("word ", 40)
	slug := Slugify(long)
	if len(slug) > maxSlugLen {
		t.Fatalf("slug length %d exceeds cap %d", len(slug), maxSlugLen)
	}
	if strings.HasSuffix(slug, "-") {
		t.Fatalf("capped slug must not end with a hyphen: %q", slug)
	}
}

func TestNumberedSlug(t *testing.T) {
	if got := NumberedSlug("hello", 1); got != "hello" {
		t.Errorf("attempt 1 = %q, want base slug", got)
	}
	if got := NumberedSlug("hello", 2); got != "hello-2" {
		t.Errorf("attempt 2 = %q, want hello-2", got)
	}
	if got := NumberedSlug("hello", 13); got != "hello-13" {
		t.Errorf("attempt 13 = %q, want hello-13", got)
	}
}

func TestRenderMarkdown(t *testing.T) {
	html, err := RenderMarkdown("# Title\n\nSome **bold** text.")
	if err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}
	if !strings.Contains(html, "<h1") || !strings.Contains(html, "<strong>bold</strong>") {
		t.Fatalf("unexpected rendering: %q", html)
	}
}
