// Turns corpus files into plain-text documents for indexing
package parser

import (
	"bytes"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/Kush-Singh-26/stemr/builder/models"
	"github.com/Kush-Singh-26/stemr/builder/utils"
)

// maxTitleLength bounds titles taken from the first line of a text file.
const maxTitleLength = 120

// New creates a Goldmark parser with front matter and heading collection.
// The returned value is safe for concurrent Parse calls.
func New() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			meta.Meta,
		),
		goldmark.WithParserOptions(
			parser.WithASTTransformers(
				util.Prioritized(&HeadingCollector{}, 200),
			),
		),
	)
}

// Parser converts Markdown and plain-text sources into documents.
type Parser struct {
	md goldmark.Markdown
}

func NewParser() *Parser {
	return &Parser{md: New()}
}

// Parse dispatches on the file extension. Anything that is not Markdown is
// read as plain text.
func (p *Parser) Parse(path string, source []byte, modTime time.Time) (models.Document, error) {
	var doc models.Document
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		doc, err = p.parseMarkdown(path, source)
	default:
		doc = parseText(path, source)
	}
	if err != nil {
		return models.Document{}, err
	}

	doc.Path = utils.NormalizePath(path)
	doc.ModTime = modTime
	return doc, nil
}

func (p *Parser) parseMarkdown(path string, source []byte) (models.Document, error) {
	ctx := parser.NewContext()
	docNode := p.md.Parser().Parse(text.NewReader(source), parser.WithContext(ctx))

	metaData, err := meta.TryGet(ctx)
	if err != nil {
		return models.Document{}, errors.Wrapf(err, "front matter in %s", path)
	}

	doc := models.Document{
		Title:       utils.GetString(metaData, "title"),
		Description: utils.GetString(metaData, "description"),
		Tags:        utils.GetSlice(metaData, "tags"),
		Content:     strings.TrimSpace(ExtractPlainText(docNode, source)),
	}

	if doc.Title == "" {
		doc.Title = headingTitle(GetHeadings(ctx))
	}
	if doc.Title == "" {
		doc.Title = fileTitle(path)
	}
	return doc, nil
}

// headingTitle picks the first heading of the highest level present.
func headingTitle(headings []Heading) string {
	best := -1
	for i, h := range headings {
		if h.Text == "" {
			continue
		}
		if best < 0 || h.Level < headings[best].Level {
			best = i
		}
	}
	if best < 0 {
		return ""
	}
	return headings[best].Text
}

func parseText(path string, source []byte) models.Document {
	content := strings.TrimSpace(string(bytes.ReplaceAll(source, []byte("\r\n"), []byte("\n"))))

	title := fileTitle(path)
	if first, _, _ := strings.Cut(content, "\n"); first != "" {
		if first = strings.TrimSpace(first); len(first) <= maxTitleLength {
			title = first
		}
	}
	return models.Document{Title: title, Content: content}
}

func fileTitle(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ExtractPlainText walks the AST and returns a clean string of all text content
func ExtractPlainText(node ast.Node, source []byte) string {
	out := utils.SharedStringBuilderPool.Get()
	defer utils.SharedStringBuilderPool.Put(out)

	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n.Kind() {
		case ast.KindText:
			t := n.(*ast.Text)
			out.Write(t.Segment.Value(source))
			out.WriteString(" ")
		case ast.KindString:
			out.Write(n.(*ast.String).Value)
		case ast.KindCodeBlock, ast.KindFencedCodeBlock:
			// Include code blocks in search
			l := n.Lines().Len()
			for i := 0; i < l; i++ {
				line := n.Lines().At(i)
				out.Write(line.Value(source))
			}
			out.WriteString(" ")
		case ast.KindHeading:
			out.WriteString("\n")
		}
		return ast.WalkContinue, nil
	})
	return out.String()
}
