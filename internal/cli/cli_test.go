package cli

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/matrixgame/internal/api"
	"github.com/mcoot/matrixgame/internal/api/response"
	"github.com/mcoot/matrixgame/internal/factory"
	"github.com/mcoot/matrixgame/internal/testutil"
)

type CLISuite struct {
	suite.Suite
	server    *httptest.Server
	tokenFile string
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLISuite))
}

func (s *CLISuite) SetupTest() {
	app := factory.NewTestApp()
	s.server = httptest.NewServer(api.NewRouter(api.RouterConfig{
		Logger:         testutil.NopLogger(),
		AuthService:    app.AuthService,
		UserService:    app.UserService,
		GameController: app.GameController,
	}))
	s.tokenFile = filepath.Join(s.T().TempDir(), "token")

	s.T().Setenv("MATRIXCTL_TOKEN", "")
	s.T().Setenv("MATRIXCTL_SERVER", "")
	s.T().Setenv("MATRIXCTL_TOKEN_FILE", "")
}

func (s *CLISuite) TearDownTest() {
	s.server.Close()
}

// run executes the CLI in-process with JSON output
func (s *CLISuite) run(args ...string) (string, error) {
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{
		"--server", s.server.URL,
		"--token-file", s.tokenFile,
		"--output", "json",
	}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (s *CLISuite) runJSON(v any, args ...string) {
	out, err := s.run(args...)
	s.Require().NoError(err, out)
	s.Require().NoError(json.Unmarshal([]byte(out), v), out)
}

func (s *CLISuite) register() response.AuthResponse {
	var auth response.AuthResponse
	s.runJSON(&auth, "user", "register",
		"--username", "alice",
		"--email", "alice@example.com",
		"--password", "secret123",
	)
	return auth
}

func (s *CLISuite) TestHealth() {
	var health response.Health
	s.runJSON(&health, "health")
	s.Equal("ok", health.Status)
}

func (s *CLISuite) TestRegisterSavesToken() {
	auth := s.register()
	s.Equal("alice", auth.User.Username)

	saved, err := os.ReadFile(s.tokenFile)
	s.Require().NoError(err)
	s.Equal(auth.SessionToken, string(saved))

	var me response.User
	s.runJSON(&me, "user", "me")
	s.Equal(auth.User.ID, me.ID)
	s.Equal("alice@example.com", me.Email)
}

func (s *CLISuite) TestRegisterValidationError() {
	out, err := s.run("user", "register",
		"--username", "al",
		"--email", "alice@example.com",
		"--password", "secret123",
		"--password-confirmation", "nope",
	)
	s.Require().Error(err)

	var reqErr *RequestError
	s.Require().ErrorAs(err, &reqErr)
	s.Equal(422, reqErr.Status)
	s.Contains(err.Error(), "Username is too short (minimum is 3 characters)")
	s.Contains(err.Error(), "Password confirmation doesn't match Password")
	s.NotContains(out, "session_token")
}

func (s *CLISuite) TestLoginAndLogout() {
	s.register()
	s.Require().NoError(os.Remove(s.tokenFile))

	_, err := s.run("user", "me")
	s.Require().Error(err)

	var auth response.AuthResponse
	s.runJSON(&auth, "user", "login", "--email", "ALICE@example.com", "--password", "secret123")
	s.NotEmpty(auth.SessionToken)

	out, err := s.run("user", "logout")
	s.Require().NoError(err, out)
	s.Contains(out, "Logged out successfully!")
	s.NoFileExists(s.tokenFile)

	// The old token no longer works even when passed explicitly
	_, err = s.run("--token", auth.SessionToken, "user", "me")
	s.Require().Error(err)
}

func (s *CLISuite) TestLoginRejectsBadPassword() {
	s.register()

	_, err := s.run("user", "login", "--email", "alice@example.com", "--password", "wrong")
	s.Require().Error(err)
	s.Contains(err.Error(), "Invalid email or password")
}

func (s *CLISuite) TestShowUser() {
	auth := s.register()
	s.Require().NoError(os.Remove(s.tokenFile))

	var u response.User
	s.runJSON(&u, "user", "show", "1")
	s.Equal(auth.User.ID, u.ID)
	s.Empty(u.Email)

	_, err := s.run("user", "show", "abc")
	s.Error(err)
}

func (s *CLISuite) TestGameLifecycle() {
	s.register()

	var g response.Game
	s.runJSON(&g, "game", "create",
		"--name", "Chess Night",
		"--description", "Weekly chess",
		"--min", "2",
		"--max", "8",
	)
	s.Equal("upcoming", g.Status)

	var t response.Transition
	s.runJSON(&t, "game", "start", "1")
	s.True(t.Changed)
	s.Equal("in_progress", t.Game.Status)

	s.runJSON(&t, "game", "start", "1")
	s.False(t.Changed)

	var list response.GameList
	s.runJSON(&list, "game", "list", "--status", "in_progress")
	s.Require().Len(list.Games, 1)
	s.Equal("Chess Night", list.Games[0].Name)

	s.runJSON(&t, "game", "complete", "1")
	s.True(t.Changed)
	s.Equal("completed", t.Game.Status)

	s.runJSON(&g, "game", "get", "1")
	s.Equal("completed", g.Status)
}

func (s *CLISuite) TestGameCreateRequiresLogin() {
	_, err := s.run("game", "create",
		"--name", "Chess Night",
		"--description", "Weekly chess",
		"--min", "2",
		"--max", "8",
	)
	s.Require().Error(err)
	s.Contains(err.Error(), "UNAUTHORIZED")
}

func (s *CLISuite) TestGameListRejectsUnknownStatus() {
	_, err := s.run("game", "list", "--status", "cancelled")
	s.Error(err)
}

func (s *CLISuite) TestTextOutput() {
	s.register()

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--server", s.server.URL, "--token-file", s.tokenFile, "game", "list"})
	s.Require().NoError(cmd.Execute())
	s.Equal("No games\n", out.String())
}
