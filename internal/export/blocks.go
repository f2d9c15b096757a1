package export

import (
	"regexp"
	"strings"
)

type blockKind int

const (
	blockParagraph blockKind = iota
	blockHeading
	blockBullet
	blockNumbered
	blockQuote
	blockCode
)

// block is one rendered paragraph of a Markdown document.
type block struct {
	kind  blockKind
	level int
	text  string
}

var (
	reHeading  = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold     = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet   = regexp.MustCompile(`^[\-\*+]\s+(.+)$`)
	reNumbered = regexp.MustCompile(`^\d+[.)]\s+(.+)$`)
	reQuote    = regexp.MustCompile(`^>\s?(.*)$`)
)

// parseBlocks splits Markdown into line-level blocks. Fenced code keeps its
// indentation; everything else is trimmed.
func parseBlocks(markdown string) []block {
	var (
		out    []block
		inCode bool
	)

	for _, line := range strings.Split(strings.ReplaceAll(markdown, "\r\n", "\n"), "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inCode = !inCode
			continue
		}
		if inCode {
			out = append(out, block{kind: blockCode, text: strings.TrimRight(line, " \t")})
			continue
		}

		if trimmed == "" || trimmed == "---" || trimmed == "***" {
			continue
		}

		switch {
		case reHeading.MatchString(trimmed):
			m := reHeading.FindStringSubmatch(trimmed)
			out = append(out, block{kind: blockHeading, level: len(m[1]), text: m[2]})
		case reBullet.MatchString(trimmed):
			out = append(out, block{kind: blockBullet, text: reBullet.FindStringSubmatch(trimmed)[1]})
		case reNumbered.MatchString(trimmed):
			out = append(out, block{kind: blockNumbered, text: trimmed})
		case reQuote.MatchString(trimmed):
			out = append(out, block{kind: blockQuote, text: reQuote.FindStringSubmatch(trimmed)[1]})
		default:
			out = append(out, block{kind: blockParagraph, text: trimmed})
		}
	}
	return out
}

// Title returns the first heading of the document, or fallback.
func Title(markdown, fallback string) string {
	for _, b := range parseBlocks(markdown) {
		if b.kind == blockHeading {
			return cleanInline(b.text)
		}
	}
	return fallback
}

// span is a run of inline text with optional bold.
type span struct {
	text string
	bold bool
}

func inlineSpans(text string) []span {
	var out []span
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			out = append(out, span{text: cleanInline(part)})
		}
		if i < len(matches) {
			out = append(out, span{text: cleanInline(matches[i][1]), bold: true})
		}
	}
	return out
}

func cleanInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
