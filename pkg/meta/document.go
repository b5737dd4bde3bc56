package meta

import (
	"embed"
	"fmt"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-metagen/pkg/model"
)

//go:embed templates/document.html.tpl
var templateFS embed.FS

var (
	documentOnce sync.Once
	documentTpl  *pongo2.Template
	documentErr  error
)

func documentTemplate() (*pongo2.Template, error) {
	documentOnce.Do(func() {
		set := pongo2.NewSet("metagen", pongo2.NewFSLoader(templateFS))
		documentTpl, documentErr = set.FromFile("templates/document.html.tpl")
	})
	return documentTpl, documentErr
}

// GenerateDocument renders the terminal artifact: a complete HTML document
// with the fixed charset/viewport preamble, the generated tag block, and a
// placeholder body. A fallback title element is added only when the tag
// block itself carries none, so the document never emits two titles.
func GenerateDocument(values model.Values) (string, error) {
	tpl, err := documentTemplate()
	if err != nil {
		return "", fmt.Errorf("meta: load document template: %w", err)
	}

	fallbackTitle := ""
	if !values.Has("title") {
		fallbackTitle = "Untitled"
	}

	lang := values.String("language")
	if lang == "" {
		lang = "en"
	}

	out, err := tpl.Execute(pongo2.Context{
		"lang":           lang,
		"tags":           Generate(values),
		"fallback_title": fallbackTitle,
	})
	if err != nil {
		return "", fmt.Errorf("meta: render document: %w", err)
	}
	return out, nil
}
