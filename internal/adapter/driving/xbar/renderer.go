// Package xbar renders reduced pull requests in the xbar/SwiftBar plugin
// output format: a title line, a "---" separator, then menu items where a
// leading "--" nests an item under the previous top-level item.
package xbar

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ericfisherdev/xbar-pr-status/internal/domain/model"
)

// Separator delimits an item's text from its attributes.
const Separator = "|"

// escapedSeparator replaces Separator inside titles and check names.
const escapedSeparator = "｜"

// GlyphSet resolves the glyph shown for a display kind.
type GlyphSet interface {
	For(kind model.DisplayKind) string
}

// Renderer turns pull requests into menu text.
type Renderer struct {
	Glyphs GlyphSet
	// CopyCommand is the executable invoked as "CopyCommand copy VALUE" by the
	// copy actions, normally this binary.
	CopyCommand string
}

// NewRenderer creates a Renderer.
func NewRenderer(glyphs GlyphSet, copyCommand string) *Renderer {
	return &Renderer{Glyphs: glyphs, CopyCommand: copyCommand}
}

// Document renders the whole plugin output for prs, in order.
func (r *Renderer) Document(prs []model.PullRequest) string {
	menus := make([]string, 0, len(prs))
	for _, pr := range prs {
		menus = append(menus, r.Render(pr))
	}
	return fmt.Sprintf("%s\n---\n%s\n", r.Title(prs), strings.Join(menus, "\n"))
}

// Title is the menu bar line: one glyph per pull request.
func (r *Renderer) Title(prs []model.PullRequest) string {
	var b strings.Builder
	for _, pr := range prs {
		b.WriteString(r.Glyphs.For(pr.Status().Kind))
	}
	return b.String()
}

// Render produces the menu block for a single pull request. Checks are
// emitted in the order given.
func (r *Renderer) Render(pr model.PullRequest) string {
	status := pr.Status()

	lines := []string{
		Header(r.Glyphs.For(status.Kind), pr.Title, pr.URL),
		r.copyLine("Copy URL", pr.URL),
		r.copyLine("Copy #"+strconv.FormatUint(pr.Number, 10), strconv.FormatUint(pr.Number, 10)),
		r.copyLine("Copy branch "+escape(pr.HeadRef), pr.HeadRef),
	}

	if pr.Reviewer != nil {
		lines = append(lines, "--Awaiting review from "+escape(*pr.Reviewer))
	}

	for _, check := range pr.Checks {
		glyph := r.Glyphs.For(model.DisplayKindFor(check.Status))
		lines = append(lines, fmt.Sprintf("--%s %s %s href=%s", glyph, escape(check.Name), Separator, check.URL))
	}

	return strings.Join(lines, "\n")
}

func (r *Renderer) copyLine(label, value string) string {
	return fmt.Sprintf("--%s %s shell=%s param1=copy param2=%s terminal=false",
		label, Separator, quote(r.CopyCommand), quote(value))
}

// Header formats a top-level item linking title to url.
func Header(glyph, title, url string) string {
	return fmt.Sprintf("%s %s %s href=%s", glyph, escape(title), Separator, url)
}

// ParseHeader splits a line produced by Header back into its parts. The glyph
// is everything before the first space.
func ParseHeader(line string) (glyph, title, url string, err error) {
	text, attrs, ok := strings.Cut(line, " "+Separator+" ")
	if !ok {
		return "", "", "", fmt.Errorf("header %q has no %q separator", line, Separator)
	}

	glyph, title, ok = strings.Cut(text, " ")
	if !ok {
		return "", "", "", fmt.Errorf("header %q has no glyph", line)
	}

	url, ok = strings.CutPrefix(attrs, "href=")
	if !ok {
		return "", "", "", fmt.Errorf("header %q has no href", line)
	}

	return glyph, strings.ReplaceAll(title, escapedSeparator, Separator), url, nil
}

func escape(s string) string {
	return strings.ReplaceAll(s, Separator, escapedSeparator)
}

// quote wraps attribute values containing spaces, quotes or the separator.
func quote(s string) string {
	if !strings.ContainsAny(s, " \""+Separator) {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
