// Package layout holds the page shell shared by every HTML page.
package layout

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/mcoot/matrixgame/internal/model"
)

// Flash types
const (
	FlashNotice = "notice"
	FlashAlert  = "alert"
)

// FlashMessage is a one-shot message shown at the top of a page
type FlashMessage struct {
	Type    string
	Message string
}

// PageData is the data every page needs to render the shell
type PageData struct {
	Title string
	User  *model.User
	// Flash comes from the previous request, via cookie
	Flash *FlashMessage
	// Alert is rendered for this response only
	Alert string
}

// Base wraps body in the HTML document, navigation and flash area
func Base(data PageData, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := "Matrix Game Platform"
		if data.Title != "" {
			title = data.Title + " | " + title
		}

		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
</head>
<body>
`, templ.EscapeString(title)); err != nil {
			return err
		}

		if err := nav(data.User).Render(ctx, w); err != nil {
			return err
		}

		if data.Flash != nil && data.Flash.Message != "" {
			if err := flash(data.Flash.Type, data.Flash.Message).Render(ctx, w); err != nil {
				return err
			}
		}
		if data.Alert != "" {
			if err := flash(FlashAlert, data.Alert).Render(ctx, w); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, "<main>\n"); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</main>\n</body>\n</html>\n")
		return err
	})
}

func nav(user *model.User) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if user == nil {
			_, err := io.WriteString(w, `<nav>
<a href="/">Matrix Game Platform</a>
<a href="/signup">Sign up</a>
<a href="/login">Log in</a>
</nav>
`)
			return err
		}

		_, err := fmt.Fprintf(w, `<nav>
<a href="/">Matrix Game Platform</a>
<span class="current-user">Logged in as <a href="/users/%d">%s</a></span>
<form action="/logout" method="post" class="logout">
<input type="hidden" name="_method" value="delete">
<button type="submit">Log Out</button>
</form>
</nav>
`, user.ID, templ.EscapeString(user.Username))
		return err
	})
}

func flash(kind, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, "<div class=\"flash flash-%[1]s\" id=\"%[1]s\" role=\"status\">%[2]s</div>\n",
			templ.EscapeString(kind), templ.EscapeString(message))
		return err
	})
}
