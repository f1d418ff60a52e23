// Package testsupport provides helpers for testscript-driven CLI tests.
package testsupport

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/rogpeppe/go-internal/testscript"

	"github.com/bossyapp/bossy/goal"
	"github.com/bossyapp/bossy/server"
)

var (
	buildOnce sync.Once
	bossyPath string
	buildErr  error
)

// BuildBossy builds the bossy binary once and returns its path.
func BuildBossy(t testing.TB) string {
	t.Helper()

	buildOnce.Do(func() {
		moduleRoot, err := findModuleRoot()
		if err != nil {
			buildErr = err
			return
		}

		binDir, err := os.MkdirTemp("", "bossy-bin-")
		if err != nil {
			buildErr = err
			return
		}

		bossyPath = filepath.Join(binDir, "bossy")
		cmd := exec.Command("go", "build", "-o", bossyPath, "./cmd/bossy")
		cmd.Dir = moduleRoot
		output, err := cmd.CombinedOutput()
		if err != nil {
			buildErr = fmt.Errorf("build bossy: %w: %s", err, strings.TrimSpace(string(output)))
		}
	})

	if buildErr != nil {
		t.Fatalf("%v", buildErr)
	}

	return bossyPath
}

// SetupScriptEnv configures the environment for testscript: a built bossy
// binary in $BOSSY, an isolated home directory, and a running server
// backed by a database under the script's work dir, reachable via
// $BOSSY_ADDR as $BOSSY_USER.
func SetupScriptEnv(t testing.TB, env *testscript.Env) error {
	t.Helper()

	env.Setenv("BOSSY", BuildBossy(t))

	homeDir := filepath.Join(env.WorkDir, "home")
	if err := os.MkdirAll(filepath.Join(homeDir, ".config", "bossy"), 0o755); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)

	srv, err := server.New(server.Options{
		DatabasePath: filepath.Join(env.WorkDir, "bossy.db"),
		Logger:       log.New(io.Discard),
	})
	if err != nil {
		return fmt.Errorf("start script server: %w", err)
	}
	httpServer := httptest.NewServer(srv.Handler())
	env.Setenv("BOSSY_ADDR", httpServer.URL)
	env.Setenv("BOSSY_USER", "user-1")
	env.Defer(func() {
		httpServer.Close()
		_ = srv.Close()
	})
	return nil
}

// CmdToday stores today's date (UTC, YYYY-MM-DD) in an env var, with an
// optional day offset.
func CmdToday(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("today does not support negation")
	}
	if len(args) < 1 || len(args) > 2 {
		ts.Fatalf("usage: today VAR [OFFSET]")
	}

	offset := 0
	if len(args) == 2 {
		parsed, err := strconv.Atoi(args[1])
		if err != nil {
			ts.Fatalf("invalid offset %q", args[1])
		}
		offset = parsed
	}
	ts.Setenv(args[0], time.Now().UTC().AddDate(0, 0, offset).Format(goal.DateFormat))
}

// CmdGoalID finds a goal by title in a JSON goal list and stores its ID
// in an env var.
func CmdGoalID(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("goalid does not support negation")
	}
	if len(args) != 3 {
		ts.Fatalf("usage: goalid FILE TITLE VAR")
	}

	var goals []goal.Goal
	data := ts.ReadFile(args[0])
	if err := json.Unmarshal([]byte(data), &goals); err != nil {
		ts.Fatalf("parse goal list: %v", err)
	}

	title := args[1]
	for _, g := range goals {
		if g.Title == title {
			ts.Setenv(args[2], g.ID)
			return
		}
	}

	ts.Fatalf("goal with title %q not found", title)
}

// CmdTaskID finds a task by date in a JSON task list and stores its ID in
// an env var.
func CmdTaskID(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("taskid does not support negation")
	}
	if len(args) != 3 {
		ts.Fatalf("usage: taskid FILE DATE VAR")
	}

	var tasks []goal.DailyTask
	data := ts.ReadFile(args[0])
	if err := json.Unmarshal([]byte(data), &tasks); err != nil {
		ts.Fatalf("parse task list: %v", err)
	}

	date := args[1]
	for _, task := range tasks {
		if task.Date.Format(goal.DateFormat) == date {
			ts.Setenv(args[2], task.ID)
			return
		}
	}

	ts.Fatalf("task on %q not found", date)
}

func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find module root (go.mod)")
		}
		dir = parent
	}
}
