package rendering

import (
	"archive/zip"
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/jonathan/advert-generator/internal/document"
)

//go:embed templates/docx/*.tmpl
var docxFS embed.FS

// DOCXContentType is the MIME type of a Word document.
const DOCXContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

const (
	listStyleID   = "ListBullet"
	fallbackGlyph = "• "
)

// docxParts lists the package parts in write order with their templates.
var docxParts = []struct {
	name     string
	template string
	listOnly bool
}{
	{name: "[Content_Types].xml", template: "content_types.xml.tmpl"},
	{name: "_rels/.rels", template: "rels.xml.tmpl"},
	{name: "docProps/core.xml", template: "core.xml.tmpl"},
	{name: "word/_rels/document.xml.rels", template: "document_rels.xml.tmpl"},
	{name: "word/styles.xml", template: "styles.xml.tmpl"},
	{name: "word/numbering.xml", template: "numbering.xml.tmpl", listOnly: true},
	{name: "word/document.xml", template: "document.xml.tmpl"},
}

var docxTemplates = template.Must(
	template.New("docx").Funcs(template.FuncMap{
		"escape": EscapeXML,
	}).ParseFS(docxFS, "templates/docx/*.tmpl"),
)

// DOCX writes Office Open XML word processing documents.
type DOCX struct {
	listStyle bool
	title     string
	creator   string
	font      string
	fontSize  int
}

// DOCXOption configures a DOCX serializer.
type DOCXOption func(*DOCX)

// WithListStyle toggles the named "List Bullet" paragraph style. When off,
// bullets are written as normal paragraphs prefixed with a bullet glyph.
func WithListStyle(enabled bool) DOCXOption {
	return func(d *DOCX) { d.listStyle = enabled }
}

// WithTitle sets the document title property.
func WithTitle(title string) DOCXOption {
	return func(d *DOCX) { d.title = title }
}

// WithCreator sets the document author property.
func WithCreator(creator string) DOCXOption {
	return func(d *DOCX) { d.creator = creator }
}

// WithFont sets the default font family and size in points.
func WithFont(family string, sizePt int) DOCXOption {
	return func(d *DOCX) {
		if family != "" {
			d.font = family
		}
		if sizePt > 0 {
			d.fontSize = sizePt
		}
	}
}

// NewDOCX returns a DOCX serializer. The list style is enabled by default.
func NewDOCX(opts ...DOCXOption) *DOCX {
	d := &DOCX{
		listStyle: true,
		title:     "Job Advert",
		font:      "Calibri",
		fontSize:  11,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SupportsListStyle reports whether bullets use the named list style.
func (d *DOCX) SupportsListStyle() bool { return d.listStyle }

// Extension returns "docx".
func (d *DOCX) Extension() string { return FormatDOCX }

// ContentType returns the Word document MIME type.
func (d *DOCX) ContentType() string { return DOCXContentType }

type docxRun struct {
	Text string
	Bold bool
}

type docxParagraph struct {
	StyleID string
	Runs    []docxRun
}

type docxData struct {
	ListStyle      bool
	ListStyleID    string
	ListStyleName  string
	BulletGlyph    string
	Title          string
	Creator        string
	Font           string
	FontHalfPoints int
	Paragraphs     []docxParagraph
}

// Serialize writes the document as a zipped OOXML package.
func (d *DOCX) Serialize(doc *document.Document) ([]byte, error) {
	if doc == nil {
		return nil, &RenderError{Message: "document is nil"}
	}

	data := d.templateData(doc)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, part := range docxParts {
		if part.listOnly && !d.listStyle {
			continue
		}
		w, err := zw.CreateHeader(&zip.FileHeader{Name: part.name, Method: zip.Deflate})
		if err != nil {
			return nil, &RenderError{Message: fmt.Sprintf("failed to create part %s", part.name), Cause: err}
		}
		if err := docxTemplates.ExecuteTemplate(w, part.template, data); err != nil {
			return nil, &TemplateError{Message: fmt.Sprintf("failed to execute %s", part.template), Cause: err}
		}
	}
	if err := zw.Close(); err != nil {
		return nil, &RenderError{Message: "failed to finalize docx package", Cause: err}
	}

	return buf.Bytes(), nil
}

func (d *DOCX) templateData(doc *document.Document) docxData {
	data := docxData{
		ListStyle:      d.listStyle,
		ListStyleID:    listStyleID,
		ListStyleName:  document.ListBullet,
		BulletGlyph:    strings.TrimSpace(fallbackGlyph),
		Title:          d.title,
		Creator:        d.creator,
		Font:           d.font,
		FontHalfPoints: d.fontSize * 2,
		Paragraphs:     make([]docxParagraph, 0, len(doc.Paragraphs)),
	}

	for _, p := range doc.Paragraphs {
		out := docxParagraph{Runs: make([]docxRun, 0, len(p.Runs)+1)}
		if p.IsList() {
			if d.listStyle {
				out.StyleID = listStyleID
			} else {
				out.Runs = append(out.Runs, docxRun{Text: fallbackGlyph})
			}
		}
		for _, r := range p.Runs {
			out.Runs = append(out.Runs, docxRun{Text: r.Text, Bold: r.Bold})
		}
		data.Paragraphs = append(data.Paragraphs, out)
	}

	return data
}
