package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/mcoot/matrixgame/internal/model"
	"github.com/mcoot/matrixgame/internal/web/templates/layout"
)

// UserData holds data for a user profile page
type UserData struct {
	layout.PageData
	Profile *model.User
}

// UserShow renders a user's profile. The email is only shown to its owner.
func UserShow(data UserData) templ.Component {
	return layout.Base(data.PageData, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := data.Profile
		if _, err := fmt.Fprintf(w, "<h1 class=\"username\">%s</h1>\n<dl>\n", templ.EscapeString(p.Username)); err != nil {
			return err
		}
		if data.User != nil && data.User.ID == p.ID {
			if _, err := fmt.Fprintf(w, "<dt>Email</dt><dd class=\"email\">%s</dd>\n", templ.EscapeString(p.Email)); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, "<dt>Member since</dt><dd class=\"member-since\">%s</dd>\n</dl>\n",
			p.CreatedAt.Format("January 2, 2006"))
		return err
	}))
}
