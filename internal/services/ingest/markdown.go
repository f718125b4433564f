package ingest

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ExtractMarkdownText parses markdown and returns its plain text content.
// Block boundaries become newlines so the chunker sees natural breaks;
// formatting, links and code fences are flattened to their text.
func ExtractMarkdownText(source []byte) string {
	parser := goldmark.DefaultParser()
	root := parser.Parse(text.NewReader(source))

	var sb strings.Builder
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Text:
			sb.Write(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			block := n.Lines()
			for i := 0; i < block.Len(); i++ {
				seg := block.At(i)
				sb.Write(seg.Value(source))
			}
		case *ast.AutoLink:
			sb.Write(node.URL(source))
		default:
			if n.Type() == ast.TypeBlock && sb.Len() > 0 {
				sb.WriteByte('\n')
			}
		}

		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(sb.String())
}
