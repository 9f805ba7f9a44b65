package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/mcoot/matrixgame/internal/model"
)

// errorExplanation lists every validation failure above a form
func errorExplanation(entity string, ve *model.ValidationError) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if ve == nil || ve.Empty() {
			return nil
		}

		noun := "errors"
		if len(ve.Fields) == 1 {
			noun = "error"
		}
		if _, err := fmt.Fprintf(w, "<div id=\"error_explanation\">\n<h2>%d %s prohibited this %s from being saved:</h2>\n<ul>\n",
			len(ve.Fields), noun, templ.EscapeString(entity)); err != nil {
			return err
		}
		for _, msg := range ve.FullMessages() {
			if _, err := fmt.Fprintf(w, "<li>%s</li>\n", templ.EscapeString(msg)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</ul>\n</div>\n")
		return err
	})
}

// field renders a labelled input. Fields with errors are wrapped the way
// form builders mark them so they can be styled.
type field struct {
	ID       string
	Name     string
	Label    string
	Type     string
	Value    string
	HasError bool
}

func (f field) Render(ctx context.Context, w io.Writer) error {
	open, close := "<div class=\"field\">\n", "</div>\n"
	if f.HasError {
		open = "<div class=\"field field_with_errors\">\n"
	}

	value := ""
	if f.Type != "password" && f.Value != "" {
		value = fmt.Sprintf(` value="%s"`, templ.EscapeString(f.Value))
	}

	_, err := fmt.Fprintf(w, "%s<label for=\"%s\">%s</label>\n<input type=\"%s\" name=\"%s\" id=\"%s\"%s>\n%s",
		open,
		templ.EscapeString(f.ID), templ.EscapeString(f.Label),
		templ.EscapeString(f.Type), templ.EscapeString(f.Name), templ.EscapeString(f.ID), value,
		close,
	)
	return err
}

func renderAll(ctx context.Context, w io.Writer, components ...templ.Component) error {
	for _, c := range components {
		if err := c.Render(ctx, w); err != nil {
			return err
		}
	}
	return nil
}

func raw(s string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}
