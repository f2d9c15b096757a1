package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sample = "# Install nginx\n\n" +
	"Summary of the **install** session.\n\n" +
	"## Steps\n\n" +
	"1. Update packages\n" +
	"- run `apt update`\n" +
	"> WARNING: restarts the service\n\n" +
	"```bash\n" +
	"sudo apt install nginx\n" +
	"  # indented comment\n" +
	"```\n" +
	"---\n"

func TestParseBlocks(t *testing.T) {
	got := parseBlocks(sample)
	want := []block{
		{kind: blockHeading, level: 1, text: "Install nginx"},
		{kind: blockParagraph, text: "Summary of the **install** session."},
		{kind: blockHeading, level: 2, text: "Steps"},
		{kind: blockNumbered, text: "1. Update packages"},
		{kind: blockBullet, text: "run `apt update`"},
		{kind: blockQuote, text: "WARNING: restarts the service"},
		{kind: blockCode, text: "sudo apt install nginx"},
		{kind: blockCode, text: "  # indented comment"},
	}

	if len(got) != len(want) {
		t.Fatalf("parseBlocks() = %d blocks, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("block %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestParseBlocksCodeKeepsMarkdownMarkers(t *testing.T) {
	got := parseBlocks("```\n# not a heading\n- not a bullet\n```")
	for _, b := range got {
		if b.kind != blockCode {
			t.Errorf("block %+v should be code", b)
		}
	}
}

func TestInlineSpans(t *testing.T) {
	got := inlineSpans("run **sudo** with `care`")
	want := []span{{text: "run "}, {text: "sudo", bold: true}, {text: " with care"}}

	if len(got) != len(want) {
		t.Fatalf("inlineSpans() = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("span %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestTitle(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     string
	}{
		{"first heading", sample, "Install nginx"},
		{"inline markup removed", "## **Setup** `ssh`", "Setup ssh"},
		{"fallback", "no headings here", "demo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Title(tt.markdown, "demo"); got != tt.want {
				t.Errorf("Title() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDocx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.docx")

	if err := Docx("Install nginx", sample, path); err != nil {
		t.Fatalf("Docx() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	// docx files are zip archives
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Errorf("output does not look like a docx archive")
	}
}

func TestHTML(t *testing.T) {
	got, err := HTML(sample + "\n<script>alert(1)</script>\n")
	if err != nil {
		t.Fatalf("HTML() error = %v", err)
	}

	for _, want := range []string{"<h1>Install nginx</h1>", "<strong>install</strong>", "<code>apt update</code>", "sudo apt install nginx"} {
		if !strings.Contains(got, want) {
			t.Errorf("HTML() missing %q in %s", want, got)
		}
	}
	if strings.Contains(got, "<script>") || !strings.Contains(got, "<!-- raw HTML omitted -->") {
		t.Error("HTML() should drop raw HTML")
	}
}
