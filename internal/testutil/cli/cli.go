// Package cli runs cobra commands against a test API. It lives apart from
// testutil to avoid import cycles when service tests import testutil.
package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	tablerocli "github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/config"
	"github.com/thenoetrevino/tablero/internal/testutil/apitest"
)

// TestUsuario is the comment author configured for CLI tests
const TestUsuario = "Tester"

// Result is what one command run produced
type Result struct {
	Stdout string
	Stderr string
	Err    error
	// Code is the exit status the binary would return
	Code int
}

// SetupCLITest starts an API over an in-memory database
func SetupCLITest(t *testing.T) *apitest.Env {
	t.Helper()
	return apitest.Start(t)
}

// NewTestCLI builds a CLI pointed at env
func NewTestCLI(env *apitest.Env) *tablerocli.CLI {
	return tablerocli.NewCLI(&config.Config{
		Client: config.ClientConfig{
			APIURL:  env.BaseURL,
			Timeout: 5 * time.Second,
			Usuario: TestUsuario,
		},
	})
}

// ExecuteCommand runs cmd with args against env and captures its output
func ExecuteCommand(t *testing.T, env *apitest.Env, cmd *cobra.Command, args ...string) Result {
	t.Helper()
	return ExecuteCommandWithInput(t, env, cmd, "", args...)
}

// ExecuteCommandWithInput is ExecuteCommand with stdin
func ExecuteCommandWithInput(t *testing.T, env *apitest.Env, cmd *cobra.Command, stdin string, args ...string) Result {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))

	// Disable usage output on error for cleaner test output
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	ctx := tablerocli.WithCLI(context.Background(), NewTestCLI(env))
	err := cmd.ExecuteContext(ctx)

	return Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
		Err:    err,
		Code:   tablerocli.ExitCodeOf(err),
	}
}

// ParseJSON parses JSON output from CLI commands
func ParseJSON(t *testing.T, output string) map[string]any {
	t.Helper()

	var result map[string]any
	if err := sonic.UnmarshalString(output, &result); err != nil {
		t.Fatalf("Failed to parse JSON output: %v\nOutput: %s", err, output)
	}

	return result
}
