package e2e_test

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/matrixgame/internal/api"
	"github.com/mcoot/matrixgame/internal/factory"
	redisstorage "github.com/mcoot/matrixgame/internal/storage/redis"
	"github.com/mcoot/matrixgame/internal/testutil"
	"github.com/mcoot/matrixgame/internal/web"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(t.TempDir(), "matrixctl-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/matrixctl")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  filepath.Join(t.TempDir(), "token"),
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	cmd.Env = append(os.Environ(), "MATRIXCTL_TOKEN=")
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// startTestServer runs the production wiring (sqlite storage, redis
// sessions) behind a real listener
func startTestServer(t *testing.T) string {
	t.Helper()

	mr := miniredis.RunT(t)
	redisCfg := redisstorage.DefaultConfig()
	redisCfg.URL = "redis://" + mr.Addr()

	logger := testutil.NopLogger()
	app, err := factory.New(context.Background(), factory.Config{
		Logger:         logger,
		StorageType:    factory.StorageTypeSQLite,
		DatabasePath:   filepath.Join(t.TempDir(), "e2e.sqlite3"),
		SessionBackend: factory.SessionBackendRedis,
		RedisConfig:    &redisCfg,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	mux := http.NewServeMux()
	mux.Handle(api.PathPrefix+"/", api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		UserService:    app.UserService,
		GameController: app.GameController,
	}))
	mux.Handle("/", web.NewRouter(web.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		UserService:    app.UserService,
		GameController: app.GameController,
	}))

	serverCfg := api.DefaultServerConfig()
	serverCfg.Host = "127.0.0.1"
	serverCfg.Port = 0
	server := api.NewServer(mux, serverCfg, logger)
	require.NoError(t, server.Listen())
	go func() {
		if err := server.Start(); err != nil {
			t.Logf("server error: %v", err)
		}
	}()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	})

	serverURL := "http://" + server.Addr()
	waitForServer(t, serverURL+"/up")
	return serverURL
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type authResponse struct {
	User struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	} `json:"user"`
	SessionToken string `json:"session_token"`
}

type gameResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

type transitionResponse struct {
	Changed bool         `json:"changed"`
	Game    gameResponse `json:"game"`
}

type healthResponse struct {
	Status string `json:"status"`
}

func TestCLI_HealthCheck(t *testing.T) {
	cli := newCLIRunner(t, startTestServer(t))

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_AccountAndGameFlow(t *testing.T) {
	cli := newCLIRunner(t, startTestServer(t))

	output, err := cli.run("user", "register",
		"--username", "Alice",
		"--email", "alice@example.com",
		"--password", "secret123",
		"--password-confirmation", "secret123",
	)
	require.NoError(t, err, "output: %s", output)

	var auth authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &auth))
	assert.Equal(t, "alice", auth.User.Username)
	assert.NotEmpty(t, auth.SessionToken)

	// Token was saved to the token file
	output, err = cli.run("user", "me")
	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, output, `"email": "alice@example.com"`)

	output, err = cli.run("game", "create",
		"--name", "Chess Night",
		"--description", "Weekly chess",
		"--min", "2",
		"--max", "8",
	)
	require.NoError(t, err, "output: %s", output)
	var game gameResponse
	require.NoError(t, json.Unmarshal([]byte(output), &game))
	assert.Equal(t, "upcoming", game.Status)

	id := strconv.FormatInt(game.ID, 10)

	var tr transitionResponse
	output, err = cli.run("game", "start", id)
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &tr))
	assert.True(t, tr.Changed)
	assert.Equal(t, "in_progress", tr.Game.Status)

	output, err = cli.run("game", "complete", id)
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &tr))
	assert.True(t, tr.Changed)
	assert.Equal(t, "completed", tr.Game.Status)

	output, err = cli.run("game", "complete", id)
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &tr))
	assert.False(t, tr.Changed)

	output, err = cli.run("user", "logout")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("user", "me")
	require.Error(t, err, "output: %s", output)
	assert.Contains(t, output, "UNAUTHORIZED")
}

func TestCLI_DuplicateRegistration(t *testing.T) {
	cli := newCLIRunner(t, startTestServer(t))

	args := []string{"user", "register", "--username", "alice", "--email", "alice@example.com", "--password", "secret123"}
	output, err := cli.run(args...)
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run(args...)
	require.Error(t, err)
	assert.Contains(t, output, "Username has already been taken")
	assert.Contains(t, output, "Email has already been taken")
}
