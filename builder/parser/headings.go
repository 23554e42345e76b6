package parser

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

var headingsKey = parser.NewContextKey()

// Heading is one Markdown heading in document order.
type Heading struct {
	Level int
	Text  string
}

func GetHeadings(pc parser.Context) []Heading {
	if v := pc.Get(headingsKey); v != nil {
		return v.([]Heading)
	}
	return nil
}

// HeadingCollector records every heading so the parser can fall back to the
// first one for a title.
type HeadingCollector struct{}

func (t *HeadingCollector) Transform(node *ast.Document, reader text.Reader, pc parser.Context) {
	var headings []Heading

	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n.Kind() != ast.KindHeading {
			return ast.WalkContinue, nil
		}
		heading := n.(*ast.Heading)

		var sb strings.Builder
		_ = ast.Walk(heading, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
			if entering && child.Kind() == ast.KindText {
				sb.Write(child.(*ast.Text).Segment.Value(reader.Source()))
			}
			return ast.WalkContinue, nil
		})

		headings = append(headings, Heading{Level: heading.Level, Text: sb.String()})
		return ast.WalkSkipChildren, nil
	})

	pc.Set(headingsKey, headings)
}
