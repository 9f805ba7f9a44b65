package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/mcoot/matrixgame/internal/web/templates/layout"
)

// LoginData holds data for the login page
type LoginData struct {
	layout.PageData
	Email string
}

// Login renders the login form
func Login(data LoginData) templ.Component {
	return layout.Base(data.PageData, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return renderAll(ctx, w,
			raw("<h1>Login to Matrix Game Platform</h1>\n"),
			raw("<form action=\"/login\" method=\"post\" id=\"login\">\n"),
			field{ID: "email", Name: "email", Label: "Email", Type: "email", Value: data.Email},
			field{ID: "password", Name: "password", Label: "Password", Type: "password"},
			raw("<button type=\"submit\">Log In</button>\n</form>\n"),
			raw("<p>Don't have an account? <a href=\"/signup\">Sign up</a></p>\n"),
		)
	}))
}
