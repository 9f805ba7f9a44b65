package handler

import (
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/mcoot/matrixgame/internal/web/middleware"
	"github.com/mcoot/matrixgame/internal/web/templates/layout"
	"github.com/mcoot/matrixgame/internal/web/templates/pages"
)

// render writes an HTML component with the given status
func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		// Headers are gone; all that's left is to stop writing
		slog.Default().Error("render failed", slog.String("path", r.URL.Path), slog.String("error", err.Error()))
	}
}

// pageData builds the shell data shared by every page
func pageData(r *http.Request, title string) layout.PageData {
	return layout.PageData{
		Title: title,
		User:  middleware.GetUser(r.Context()),
		Flash: middleware.GetFlash(r.Context()),
	}
}

// NotFound renders the 404 page
func NotFound(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusNotFound, pages.NotFound(pageData(r, "Not Found")))
}

func serverError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, msg string, err error) {
	logger.Error(msg,
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
	render(w, r, http.StatusInternalServerError, pages.ServerError(pageData(r, "Error")))
}

// redirectWithNotice sets a notice for the next page and redirects to it
func redirectWithNotice(w http.ResponseWriter, r *http.Request, path, message string) {
	middleware.SetFlash(w, layout.FlashNotice, message)
	http.Redirect(w, r, path, http.StatusFound)
}
