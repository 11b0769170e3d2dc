package integration_test

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/ganot/grantmap/internal/dataset"
	"github.com/ganot/grantmap/internal/domain/grant"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

func binaryPath(t *testing.T) string {
	t.Helper()
	for _, p := range []string{"./bin/grantmap", "../../bin/grantmap"} {
		if _, err := os.Stat(p); err == nil {
			abs, err := filepath.Abs(p)
			require.NoError(t, err)
			return abs
		}
	}
	t.Skip("grantmap binary not found. Run 'go build -o bin/grantmap ./cmd/grantmap' first.")
	return ""
}

func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port
}

// startHTTPServer runs `grantmap serve` in http mode and returns its base URL.
func startHTTPServer(t *testing.T, datasetPath string) (string, *exec.Cmd) {
	t.Helper()
	binary := binaryPath(t)
	port := freePort(t)

	cmd := exec.Command(binary, "serve",
		"--transport", "http",
		"--host", "127.0.0.1",
		"--port", fmt.Sprint(port),
		"--dataset", datasetPath,
		"--db", filepath.Join(t.TempDir(), "journal.db"),
	)
	cmd.Env = append(os.Environ(), "GRANTMAP_CONFIG_PATH=")
	require.NoError(t, cmd.Start())
	t.Cleanup(func() {
		if cmd.ProcessState == nil {
			_ = cmd.Process.Kill()
			_ = cmd.Wait()
		}
	})

	base := fmt.Sprintf("http://127.0.0.1:%d", port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(base + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 10*time.Second, 50*time.Millisecond, "server did not become healthy")
	return base, cmd
}

func TestHTTPServe(t *testing.T) {
	g := grant.Grantee{
		Name: "Acme News", County: "Essex County", Years: []string{"2024"},
		Amount: grant.Dollars(1500), Status: grant.StatusActive, FocusArea: "Local news",
		Description: "Received funding to cover city hall",
	}
	g.SetLocation(40.7357, -74.1724)
	ds := grant.Dataset{Grantees: []grant.Grantee{g}}
	ds.Refresh(time.Now(), "")
	path := filepath.Join(t.TempDir(), "grantees.json")
	require.NoError(t, dataset.Save(path, ds))

	base, cmd := startHTTPServer(t, path)

	resp, err := http.Get(base + "/data/grantees.json")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	served, err := dataset.Decode(body)
	require.NoError(t, err)
	require.Equal(t, "Acme News", served.Grantees[0].Name)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &sdkmcp.StreamableClientTransport{Endpoint: base + "/mcp"}, nil)
	require.NoError(t, err)

	tools, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	require.Len(t, tools.Tools, 7)

	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: "search_grantees", Arguments: map[string]any{"query": "city hall"}})
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.NoError(t, session.Close())

	require.NoError(t, cmd.Process.Signal(syscall.SIGTERM))
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()
	select {
	case err := <-done:
		require.NoError(t, err, "serve should exit cleanly on SIGTERM")
	case <-time.After(10 * time.Second):
		t.Fatal("server did not exit")
	}
}
