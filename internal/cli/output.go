package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/mcoot/matrixgame/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	w      io.Writer
	format string
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(w io.Writer, format string) *Output {
	return &Output{w: w, format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		o.printJSON(map[string]string{"message": msg})
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.User:
		o.printUser(v)
	case response.AuthResponse:
		o.printAuthResult(v)
	case response.Game:
		o.printGame(v)
	case response.GameList:
		o.printGameList(v)
	case response.Transition:
		o.printTransition(v)
	case response.Health:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printUser(u response.User) {
	fmt.Fprintf(o.w, "User: %s (%d)\n", u.Username, u.ID)
	if u.Email != "" {
		fmt.Fprintf(o.w, "Email: %s\n", u.Email)
	}
	fmt.Fprintf(o.w, "Member since: %s\n", u.CreatedAt.Format("January 2, 2006"))
}

func (o *Output) printAuthResult(a response.AuthResponse) {
	o.printUser(a.User)
	fmt.Fprintf(o.w, "Token: %s\n", a.SessionToken)
	fmt.Fprintf(o.w, "Expires: %s\n", a.ExpiresAt.Format(time.RFC3339))
}

func (o *Output) printGame(g response.Game) {
	fmt.Fprintf(o.w, "Game: %s (%d)\n", g.Name, g.ID)
	fmt.Fprintf(o.w, "Status: %s\n", g.Status)
	fmt.Fprintf(o.w, "Participants: %d-%d\n", g.MinParticipants, g.MaxParticipants)
	fmt.Fprintf(o.w, "Description: %s\n", g.Description)
	if g.StartedAt != nil {
		fmt.Fprintf(o.w, "Started: %s\n", g.StartedAt.Format(time.RFC3339))
	}
	if g.CompletedAt != nil {
		fmt.Fprintf(o.w, "Completed: %s\n", g.CompletedAt.Format(time.RFC3339))
	}
}

func (o *Output) printGameList(l response.GameList) {
	if len(l.Games) == 0 {
		fmt.Fprintln(o.w, "No games")
		return
	}
	for _, g := range l.Games {
		fmt.Fprintf(o.w, "%4d  %-12s %s (%d-%d players)\n", g.ID, g.Status, g.Name, g.MinParticipants, g.MaxParticipants)
	}
}

func (o *Output) printTransition(t response.Transition) {
	if !t.Changed {
		fmt.Fprintf(o.w, "No change: game is %s\n", t.Game.Status)
	}
	o.printGame(t.Game)
}
