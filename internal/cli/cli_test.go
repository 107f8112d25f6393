package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/toybox/internal/sqlite"
	"github.com/mesh-intelligence/toybox/pkg/types"
)

// testEnv points the CLI at throwaway config and data directories.
type testEnv struct {
	configDir string
	dataDir   string
}

func newEnv(t *testing.T) testEnv {
	t.Helper()
	t.Setenv("TOYBOX_BACKEND", "")
	t.Setenv("TOYBOX_REDIS_ADDR", "")
	t.Setenv("TOYBOX_LOG_FORMAT", "")
	return testEnv{configDir: t.TempDir(), dataDir: t.TempDir()}
}

type result struct {
	stdout string
	stderr string
	code   int
}

func (e testEnv) run(t *testing.T, args ...string) result {
	t.Helper()
	full := append([]string{"--config-dir", e.configDir, "--data-dir", e.dataDir}, args...)
	var stdout, stderr bytes.Buffer
	code := Run(full, &stdout, &stderr)
	return result{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

// mustRun runs a command that is expected to succeed.
func (e testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	r := e.run(t, args...)
	require.Equal(t, exitSuccess, r.code, "toybox %s\nstderr: %s", strings.Join(args, " "), r.stderr)
	return r.stdout
}

func decodeJSON[T any](t *testing.T, out string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(out), &v), "output: %s", out)
	return v
}

func (e testEnv) addToy(t *testing.T, args ...string) types.Toy {
	t.Helper()
	return decodeJSON[types.Toy](t, e.mustRun(t, append([]string{"--json", "toy", "add"}, args...)...))
}

func TestVersion(t *testing.T) {
	var stdout bytes.Buffer
	code := Run([]string{"version"}, &stdout, &bytes.Buffer{})
	assert.Equal(t, exitSuccess, code)
	assert.Contains(t, stdout.String(), "toybox v0.1.0")
	assert.Contains(t, stdout.String(), modulePath)
}

func TestToyAddAndList(t *testing.T) {
	env := newEnv(t)

	robot := env.addToy(t, "--name", "Robot", "--category", "Electronics", "--price", "29.99", "--quantity", "5")
	assert.NotEmpty(t, robot.ID)
	assert.Equal(t, "29.99", robot.Price.String())

	toys := decodeJSON[[]types.Toy](t, env.mustRun(t, "--json", "toy", "list"))
	require.Len(t, toys, 1)
	assert.Equal(t, robot.ID, toys[0].ID)
	assert.Equal(t, "Robot", toys[0].Name)
	assert.Equal(t, "Electronics", toys[0].Category)
	assert.True(t, robot.Price.Equal(toys[0].Price))
	assert.Equal(t, 5, toys[0].Quantity)

	table := env.mustRun(t, "toy", "list")
	assert.Contains(t, table, "NAME")
	assert.Contains(t, table, "Robot")
	assert.Contains(t, table, "29.99")

	_, err := os.Stat(filepath.Join(env.dataDir, "toys.json"))
	assert.NoError(t, err)
}

func TestToyAddGating(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "missing name", args: []string{"toy", "add", "--price", "1"}},
		{name: "empty name", args: []string{"toy", "add", "--name", ""}},
		{name: "negative price", args: []string{"toy", "add", "--name", "Ball", "--price", "-1"}},
		{name: "bad price", args: []string{"toy", "add", "--name", "Ball", "--price", "cheap"}},
		{name: "negative quantity", args: []string{"toy", "add", "--name", "Ball", "--quantity", "-2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newEnv(t)
			r := env.run(t, tt.args...)
			assert.Equal(t, exitUserError, r.code)

			toys := decodeJSON[[]types.Toy](t, env.mustRun(t, "--json", "toy", "list"))
			assert.Empty(t, toys)
		})
	}
}

func TestToyUpdateKeepsUnsetFields(t *testing.T) {
	env := newEnv(t)
	ball := env.addToy(t, "--name", "Ball", "--category", "Outdoor", "--price", "3.50", "--quantity", "10")
	kite := env.addToy(t, "--name", "Kite")

	env.mustRun(t, "toy", "update", ball.ID, "--quantity", "7", "--description", "Bouncy")

	toys := decodeJSON[[]types.Toy](t, env.mustRun(t, "--json", "toy", "list"))
	require.Len(t, toys, 2)
	assert.Equal(t, ball.ID, toys[0].ID)
	assert.Equal(t, "Ball", toys[0].Name)
	assert.Equal(t, "Outdoor", toys[0].Category)
	assert.Equal(t, "3.5", toys[0].Price.String())
	assert.Equal(t, 7, toys[0].Quantity)
	assert.Equal(t, "Bouncy", toys[0].Description)
	assert.Equal(t, kite.ID, toys[1].ID)

	r := env.run(t, "toy", "update", ball.ID, "--name", "")
	assert.Equal(t, exitUserError, r.code)
}

func TestShowUnknown(t *testing.T) {
	env := newEnv(t)
	for _, kind := range []string{"toy", "customer", "order"} {
		r := env.run(t, kind, "show", "missing-id")
		assert.Equal(t, exitUserError, r.code, kind)
		assert.Contains(t, r.stderr, "not found", kind)
	}
}

func TestToyShow(t *testing.T) {
	env := newEnv(t)
	robot := env.addToy(t, "--name", "Robot", "--price", "29.99")

	out := env.mustRun(t, "toy", "show", robot.ID)
	assert.Contains(t, out, "Robot")
	assert.Contains(t, out, "29.99")

	got := decodeJSON[types.Toy](t, env.mustRun(t, "--json", "toy", "show", robot.ID))
	assert.Equal(t, robot.ID, got.ID)
}

func TestToyDelete(t *testing.T) {
	env := newEnv(t)
	a := env.addToy(t, "--name", "A")
	env.addToy(t, "--name", "B")
	c := env.addToy(t, "--name", "C")
	d := env.addToy(t, "--name", "D")

	env.mustRun(t, "toy", "delete", "--at", "2")
	env.mustRun(t, "toy", "delete", d.ID)

	toys := decodeJSON[[]types.Toy](t, env.mustRun(t, "--json", "toy", "list"))
	require.Len(t, toys, 2)
	assert.Equal(t, a.ID, toys[0].ID)
	assert.Equal(t, c.ID, toys[1].ID)

	tests := []struct {
		name string
		args []string
	}{
		{name: "neither id nor position", args: []string{"toy", "delete"}},
		{name: "both id and position", args: []string{"toy", "delete", a.ID, "--at", "1"}},
		{name: "position out of range", args: []string{"toy", "delete", "--at", "3"}},
		{name: "position zero", args: []string{"toy", "delete", "--at", "0"}},
		{name: "unknown id", args: []string{"toy", "delete", "missing-id"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := env.run(t, tt.args...)
			assert.Equal(t, exitUserError, r.code)
		})
	}

	toys = decodeJSON[[]types.Toy](t, env.mustRun(t, "--json", "toy", "list"))
	assert.Len(t, toys, 2)
}

func TestCustomerLifecycle(t *testing.T) {
	env := newEnv(t)

	alice := decodeJSON[types.Customer](t, env.mustRun(t, "--json", "customer", "add",
		"--name", "Alice", "--contact", "alice@example.com", "--address", "1 Main St"))
	assert.NotNil(t, alice.OrderHistory)

	env.mustRun(t, "customer", "update", alice.ID, "--address", "2 Side St")

	got := decodeJSON[types.Customer](t, env.mustRun(t, "--json", "customer", "show", alice.ID))
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, "alice@example.com", got.ContactInfo)
	assert.Equal(t, "2 Side St", got.Address)

	assert.Contains(t, env.mustRun(t, "customer", "list"), "Alice")

	env.mustRun(t, "customer", "delete", "--at", "1")
	customers := decodeJSON[[]types.Customer](t, env.mustRun(t, "--json", "customer", "list"))
	assert.Empty(t, customers)

	r := env.run(t, "customer", "add", "--contact", "nobody")
	assert.Equal(t, exitUserError, r.code)
}

func TestOrderLifecycle(t *testing.T) {
	env := newEnv(t)

	o := decodeJSON[types.Order](t, env.mustRun(t, "--json", "order", "add",
		"--toy", "Robot", "--customer", "Alice", "--quantity", "3"))
	assert.Equal(t, "300", o.TotalPrice.String())
	assert.Equal(t, types.StatusPending, o.Status)
	assert.Equal(t, types.PaymentUnpaid, o.PaymentStatus)

	env.mustRun(t, "order", "complete", o.ID)
	env.mustRun(t, "order", "pay", o.ID)
	env.mustRun(t, "order", "update", o.ID, "--quantity", "5")

	got := decodeJSON[types.Order](t, env.mustRun(t, "--json", "order", "show", o.ID))
	assert.Equal(t, types.StatusCompleted, got.Status)
	assert.Equal(t, types.PaymentPaid, got.PaymentStatus)
	assert.Equal(t, 5, got.Quantity)
	assert.Equal(t, "500", got.TotalPrice.String())
	assert.True(t, o.OrderDate.Equal(got.OrderDate), "order date must not change")

	env.mustRun(t, "order", "update", o.ID, "--status", "Pending", "--payment", "Unpaid")
	got = decodeJSON[types.Order](t, env.mustRun(t, "--json", "order", "show", o.ID))
	assert.Equal(t, types.StatusPending, got.Status)
	assert.Equal(t, types.PaymentUnpaid, got.PaymentStatus)

	list := env.mustRun(t, "order", "list")
	assert.Contains(t, list, "Robot")
	assert.Contains(t, list, "500.00")

	env.mustRun(t, "order", "delete", o.ID)
	orders := decodeJSON[[]types.Order](t, env.mustRun(t, "--json", "order", "list"))
	assert.Empty(t, orders)
}

func TestOrderGating(t *testing.T) {
	env := newEnv(t)
	o := decodeJSON[types.Order](t, env.mustRun(t, "--json", "order", "add",
		"--toy", "Robot", "--customer", "Alice"))
	assert.Equal(t, 1, o.Quantity)

	tests := []struct {
		name string
		args []string
	}{
		{name: "zero quantity", args: []string{"order", "add", "--toy", "Robot", "--customer", "Alice", "--quantity", "0"}},
		{name: "missing customer", args: []string{"order", "add", "--toy", "Robot"}},
		{name: "empty toy", args: []string{"order", "add", "--toy", "", "--customer", "Alice"}},
		{name: "unknown status", args: []string{"order", "update", o.ID, "--status", "Shipped"}},
		{name: "unknown payment", args: []string{"order", "update", o.ID, "--payment", "Refunded"}},
		{name: "negative quantity update", args: []string{"order", "update", o.ID, "--quantity", "-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := env.run(t, tt.args...)
			assert.Equal(t, exitUserError, r.code)
		})
	}

	orders := decodeJSON[[]types.Order](t, env.mustRun(t, "--json", "order", "list"))
	require.Len(t, orders, 1)
	assert.Equal(t, o.ID, orders[0].ID)
	assert.Equal(t, types.StatusPending, orders[0].Status)
}

func TestOrderDoesNotRequireKnownToyOrCustomer(t *testing.T) {
	env := newEnv(t)
	env.mustRun(t, "order", "add", "--toy", "Nonexistent", "--customer", "Nobody")

	orders := decodeJSON[[]types.Order](t, env.mustRun(t, "--json", "order", "list"))
	require.Len(t, orders, 1)
	assert.Equal(t, "Nonexistent", orders[0].ToyName)
}

func TestMalformedSlotListsEmpty(t *testing.T) {
	env := newEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(env.dataDir, "toys.json"), []byte("not json"), 0o644))

	toys := decodeJSON[[]types.Toy](t, env.mustRun(t, "--json", "toy", "list"))
	assert.Empty(t, toys)
}

func TestInit(t *testing.T) {
	env := newEnv(t)

	out := env.mustRun(t, "--backend", types.BackendSQLite, "init")
	assert.Contains(t, out, "initialized")

	data, err := os.ReadFile(filepath.Join(env.configDir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "backend: sqlite")
	assert.Contains(t, string(data), "data_dir: "+env.dataDir)

	_, err = os.Stat(filepath.Join(env.dataDir, sqlite.DBFileName))
	assert.NoError(t, err)

	// config.yaml now selects sqlite without the flag.
	env.addToy(t, "--name", "Robot")
	_, err = os.Stat(filepath.Join(env.dataDir, "toys.json"))
	assert.True(t, os.IsNotExist(err), "file backend should not be used")
	toys := decodeJSON[[]types.Toy](t, env.mustRun(t, "--json", "toy", "list"))
	assert.Len(t, toys, 1)

	// A second init leaves config.yaml alone.
	env.mustRun(t, "--backend", types.BackendFile, "init")
	again, err := os.ReadFile(filepath.Join(env.configDir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again))
}

func TestConfigFileSelectsBackend(t *testing.T) {
	env := newEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(env.configDir, "config.yaml"), []byte("backend: memory\n"), 0o644))

	env.addToy(t, "--name", "Robot")

	// The memory backend does not outlive the process.
	toys := decodeJSON[[]types.Toy](t, env.mustRun(t, "--json", "toy", "list"))
	assert.Empty(t, toys)
}

func TestUnknownBackend(t *testing.T) {
	env := newEnv(t)
	r := env.run(t, "--backend", "postgres", "toy", "list")
	assert.Equal(t, exitUserError, r.code)
	assert.Contains(t, r.stderr, "unknown backend")
}

func TestRedisBackendNeedsAddress(t *testing.T) {
	env := newEnv(t)
	r := env.run(t, "--backend", types.BackendRedis, "toy", "list")
	assert.Equal(t, exitUserError, r.code)
}

func TestBackendFromEnv(t *testing.T) {
	env := newEnv(t)
	t.Setenv("TOYBOX_BACKEND", types.BackendSQLite)

	env.addToy(t, "--name", "Robot")

	_, err := os.Stat(filepath.Join(env.dataDir, sqlite.DBFileName))
	assert.NoError(t, err)
}

func TestLogFormat(t *testing.T) {
	env := newEnv(t)
	t.Setenv("TOYBOX_LOG_FORMAT", "json")
	env.mustRun(t, "toy", "list")

	t.Setenv("TOYBOX_LOG_FORMAT", "xml")
	r := env.run(t, "toy", "list")
	assert.Equal(t, exitUserError, r.code)
	assert.Contains(t, r.stderr, "unknown log format")
}
