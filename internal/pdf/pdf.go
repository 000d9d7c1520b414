// Package pdf lays out display lines on a single PDF page.
package pdf

import (
	"bytes"
	"fmt"
	"io"
	"iter"

	"questionai/internal/models"

	"github.com/go-pdf/fpdf"
)

// FileName is the download name of the exported document.
const FileName = "generated_questions.pdf"

// State is the render state reported to the UI.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return "idle"
	}
}

// MarshalText lets State appear by name in JSON.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a name produced by MarshalText.
func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "idle":
		*s = StateIdle
	case "loading":
		*s = StateLoading
	case "ready":
		*s = StateReady
	case "error":
		*s = StateError
	default:
		return fmt.Errorf("unknown PDF state %q", text)
	}
	return nil
}

// Layout, in points: 20pt page padding, each line a block with 8pt padding,
// a light bottom rule and 10pt spacing after it.
const (
	pagePadding   = 20.0
	blockPadding  = 8.0
	blockSpacing  = 10.0
	lineHeightMul = 1.2
)

type options struct {
	pageSize string
	fontSize float64
	title    string
	onState  func(State)
}

// Option configures Render.
type Option func(*options)

// WithPageSize sets the page format understood by fpdf ("A4", "Letter", ...).
func WithPageSize(size string) Option {
	return func(o *options) {
		if size != "" {
			o.pageSize = size
		}
	}
}

// WithFontSize sets the body font size in points.
func WithFontSize(size float64) Option {
	return func(o *options) {
		if size > 0 {
			o.fontSize = size
		}
	}
}

// WithTitle sets the document title metadata.
func WithTitle(title string) Option {
	return func(o *options) {
		o.title = title
	}
}

// WithStateFunc registers a callback receiving StateLoading when rendering
// starts and StateReady or StateError when it ends.
func WithStateFunc(fn func(State)) Option {
	return func(o *options) {
		o.onState = fn
	}
}

// Render writes lines onto one fixed-size page. There is no pagination or
// wrapping: lines past the bottom of the page are drawn off-page and lost.
func Render(w io.Writer, lines iter.Seq[models.DisplayLine], opts ...Option) error {
	o := options{pageSize: "A4", fontSize: 12, title: "Generated Questions"}
	for _, opt := range opts {
		opt(&o)
	}
	notify := func(s State) {
		if o.onState != nil {
			o.onState(s)
		}
	}

	notify(StateLoading)
	if err := render(w, lines, o); err != nil {
		notify(StateError)
		return err
	}
	notify(StateReady)
	return nil
}

// RenderBytes renders into memory.
func RenderBytes(lines iter.Seq[models.DisplayLine], opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, lines, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func render(w io.Writer, lines iter.Seq[models.DisplayLine], o options) error {
	doc := fpdf.New("P", "pt", o.pageSize, "")
	doc.SetAutoPageBreak(false, 0)
	doc.SetMargins(pagePadding, pagePadding, pagePadding)
	doc.SetTitle(o.title, true)
	doc.SetCreator("questionai", true)
	doc.AddPage()

	tr := doc.UnicodeTranslatorFromDescriptor("")
	pageWidth, _ := doc.GetPageSize()
	contentWidth := pageWidth - 2*pagePadding
	lineHeight := o.fontSize * lineHeightMul

	doc.SetDrawColor(0xcc, 0xcc, 0xcc)
	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Helvetica", "", o.fontSize)

	y := pagePadding
	for line := range lines {
		style := ""
		if line.Header {
			style = "B"
		}
		doc.SetFont("Helvetica", style, o.fontSize)

		y += blockPadding
		doc.SetXY(pagePadding, y)
		doc.CellFormat(contentWidth, lineHeight, tr(line.Text), "", 0, "L", false, 0, "")
		y += lineHeight + blockPadding
		doc.Line(pagePadding, y, pagePadding+contentWidth, y)
		y += blockSpacing
	}

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	return nil
}
