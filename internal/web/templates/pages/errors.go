package pages

import (
	"github.com/a-h/templ"

	"github.com/mcoot/matrixgame/internal/web/templates/layout"
)

// NotFound renders the 404 page
func NotFound(data layout.PageData) templ.Component {
	return layout.Base(data, raw("<h1>Not Found</h1>\n<p>The page you were looking for doesn't exist.</p>\n<p><a href=\"/\">Return to home</a></p>\n"))
}

// ServerError renders the 500 page
func ServerError(data layout.PageData) templ.Component {
	return layout.Base(data, raw("<h1>Internal Server Error</h1>\n<p>Something went wrong. Please try again later.</p>\n<p><a href=\"/\">Return to home</a></p>\n"))
}
