package views

import (
	_ "embed"
	"html/template"

	"github.com/gin-contrib/multitemplate"

	"quizdeck/models"
)

// Template names registered by NewRenderer.
const (
	QuizTemplate     = "quiz"
	FragmentTemplate = "fragment"
)

var (
	//go:embed templates/layout.html
	layoutHTML string
	//go:embed templates/body.html
	bodyHTML string
	//go:embed templates/overlay.html
	overlayHTML string
)

const fragmentHTML = `{{template "body" .}}`

// Funcs are the template helpers shared by every page.
var Funcs = template.FuncMap{
	// Deck fields carry the flashcard's own markup.
	"markup": func(s string) template.HTML { return template.HTML(s) },
	"fill":   fill,
	"stroke": stroke,
	"mark":   mark,
	"inc":    func(i int) int { return i + 1 },
}

// NewRenderer returns the gin HTML renderer for the quiz page and the
// fragment the page script swaps in after every action.
func NewRenderer() multitemplate.Renderer {
	r := multitemplate.NewRenderer()
	r.AddFromStringsFuncs(QuizTemplate, Funcs, layoutHTML, bodyHTML, overlayHTML)
	r.AddFromStringsFuncs(FragmentTemplate, Funcs, fragmentHTML, bodyHTML, overlayHTML)
	return r
}

func fill(s models.OptionState) string {
	switch s {
	case models.OptionCorrect:
		return CorrectColor
	case models.OptionIncorrect:
		return IncorrectColor
	default:
		return DefaultFill
	}
}

func stroke(s models.OptionState) string {
	switch s {
	case models.OptionCorrect:
		return CorrectColor
	case models.OptionIncorrect:
		return IncorrectColor
	default:
		return DefaultStroke
	}
}

// mark is the tick or cross drawn over a marked option.
func mark(s models.OptionState) template.HTML {
	switch s {
	case models.OptionCorrect:
		return `<path d="M6 12l4 4 8-8" stroke="white" stroke-width="3" fill="none"/>`
	case models.OptionIncorrect:
		return `<path d="M6 6l12 12M18 6L6 18" stroke="white" stroke-width="3" fill="none"/>`
	default:
		return ""
	}
}
