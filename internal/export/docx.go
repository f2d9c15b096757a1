package export

import (
	"fmt"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	fontName = "Times New Roman"
	codeFont = "Courier New"
	fontSize = 13
	codeSize = 11
)

// Docx writes the Markdown document as a styled .docx file at outputPath.
func Docx(title, markdown, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("new document: %w", err)
	}

	if title != "" {
		addStyledRun(doc.AddParagraph(""), title, true, 16)
	}

	for _, b := range parseBlocks(markdown) {
		p := doc.AddParagraph("")
		switch b.kind {
		case blockHeading:
			addStyledRun(p, b.text, true, headingSize(b.level))
		case blockBullet:
			addRichText(p, "• "+b.text)
		case blockQuote:
			p.AddText(cleanInline(b.text)).Font(fontName).Size(fontSize).Color("7F6000")
		case blockCode:
			p.AddText(b.text).Font(codeFont).Size(codeSize).Color("1F1F1F")
		default:
			addRichText(p, b.text)
		}
	}

	if err := doc.SaveTo(outputPath); err != nil {
		return fmt.Errorf("save docx: %w", err)
	}
	return nil
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 15
	case 3:
		return 14
	default:
		return fontSize
	}
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(cleanInline(text)).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func addRichText(p *docx.Paragraph, text string) {
	for _, s := range inlineSpans(text) {
		run := p.AddText(s.text).Font(fontName).Size(fontSize).Color("000000")
		if s.bold {
			run.Bold(true)
		}
	}
}
