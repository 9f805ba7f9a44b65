package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/mcoot/matrixgame/internal/model"
	"github.com/mcoot/matrixgame/internal/web/templates/layout"
)

// HomeData holds data for the home page
type HomeData struct {
	layout.PageData
	Upcoming   []*model.Game
	InProgress []*model.Game
	Completed  []*model.Game
}

// Home renders the landing page with games grouped by status
func Home(data HomeData) templ.Component {
	return layout.Base(data.PageData, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		greeting := "<p>Sign up or log in to take part.</p>\n"
		if data.User != nil {
			greeting = fmt.Sprintf("<p>Welcome back, %s!</p>\n", templ.EscapeString(data.User.Username))
		}

		return renderAll(ctx, w,
			raw("<h1>Matrix Game Platform</h1>\n"),
			raw(greeting),
			gameList("upcoming", "Upcoming Games", data.Upcoming),
			gameList("in_progress", "In Progress", data.InProgress),
			gameList("completed", "Completed Games", data.Completed),
		)
	}))
}

func gameList(id, heading string, games []*model.Game) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, "<section id=\"%s\" class=\"games\">\n<h2>%s</h2>\n", id, templ.EscapeString(heading)); err != nil {
			return err
		}

		if len(games) == 0 {
			if _, err := io.WriteString(w, "<p class=\"empty\">No games.</p>\n</section>\n"); err != nil {
				return err
			}
			return nil
		}

		if _, err := io.WriteString(w, "<ul>\n"); err != nil {
			return err
		}
		for _, g := range games {
			if _, err := fmt.Fprintf(w,
				"<li class=\"game\" data-game-id=\"%d\" data-status=\"%s\"><span class=\"name\">%s</span> <span class=\"participants\">%d&ndash;%d players</span></li>\n",
				g.ID, g.Status(), templ.EscapeString(g.Name), g.MinParticipants, g.MaxParticipants,
			); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</ul>\n</section>\n")
		return err
	})
}
