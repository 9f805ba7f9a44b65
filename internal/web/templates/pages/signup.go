package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/mcoot/matrixgame/internal/model"
	"github.com/mcoot/matrixgame/internal/web/templates/layout"
)

// SignupData holds data for the registration page
type SignupData struct {
	layout.PageData
	Username string
	Email    string
	Errors   *model.ValidationError
}

// Signup renders the registration form
func Signup(data SignupData) templ.Component {
	return layout.Base(data.PageData, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		has := func(name string) bool { return data.Errors != nil && data.Errors.Has(name) }

		return renderAll(ctx, w,
			raw("<h1>Sign Up for Matrix Game Platform</h1>\n"),
			errorExplanation("user", data.Errors),
			raw("<form action=\"/signup\" method=\"post\" id=\"signup\">\n"),
			field{ID: "user_username", Name: "user[username]", Label: "Username", Type: "text", Value: data.Username, HasError: has("username")},
			field{ID: "user_email", Name: "user[email]", Label: "Email", Type: "email", Value: data.Email, HasError: has("email")},
			field{ID: "user_password", Name: "user[password]", Label: "Password", Type: "password", HasError: has("password")},
			field{ID: "user_password_confirmation", Name: "user[password_confirmation]", Label: "Password confirmation", Type: "password", HasError: has("password_confirmation")},
			raw("<button type=\"submit\">Sign Up</button>\n</form>\n"),
			raw("<p>Already have an account? <a href=\"/login\">Log in</a></p>\n"),
		)
	}))
}
