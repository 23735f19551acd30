package integration

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	pgImage    = "postgres:16-alpine"
	pgUser     = "citas"
	pgPassword = "citas"
	pgDatabase = "citas_test"
)

// pgContainer is a throwaway PostgreSQL managed through the docker CLI.
type pgContainer struct {
	id   string
	addr string
}

// runPostgres starts a container with the port published on an ephemeral
// loopback port and blocks until it accepts TCP connections.
func runPostgres(ctx context.Context) (*pgContainer, error) {
	name := "citas-it-" + uuid.NewString()[:8]
	out, err := docker(ctx, "run", "-d", "--rm",
		"--name", name,
		"-p", "127.0.0.1::5432",
		"-e", "POSTGRES_USER="+pgUser,
		"-e", "POSTGRES_PASSWORD="+pgPassword,
		"-e", "POSTGRES_DB="+pgDatabase,
		pgImage,
	)
	if err != nil {
		return nil, err
	}
	pc := &pgContainer{id: out}

	if pc.addr, err = docker(ctx, "port", pc.id, "5432/tcp"); err != nil {
		pc.stop()
		return nil, err
	}
	// Several bindings may be listed; the first one is enough.
	pc.addr = strings.SplitN(pc.addr, "\n", 2)[0]

	if err := pc.awaitReady(ctx, 30*time.Second); err != nil {
		pc.stop()
		return nil, err
	}
	return pc, nil
}

// dsn is the connection string for the published port.
func (pc *pgContainer) dsn() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable", pgUser, pgPassword, pc.addr, pgDatabase)
}

// awaitReady asks pg_isready over TCP. The init-time server the image runs
// first listens on the unix socket only, so a TCP answer means the real one.
func (pc *pgContainer) awaitReady(ctx context.Context, limit time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, limit)
	defer cancel()

	tick := time.NewTicker(250 * time.Millisecond)
	defer tick.Stop()
	for {
		if _, err := docker(ctx, "exec", pc.id, "pg_isready", "-h", "127.0.0.1", "-U", pgUser, "-d", pgDatabase); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("postgres in %s not ready after %s", pc.id[:12], limit)
		case <-tick.C:
		}
	}
}

// stop removes the container; --rm discards its volume.
func (pc *pgContainer) stop() {
	_ = exec.Command("docker", "rm", "-f", pc.id).Run()
}

func docker(ctx context.Context, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, "docker", args...).CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("docker %s: %w: %s", args[0], err, strings.TrimSpace(string(out)))
	}
	return strings.TrimSpace(string(out)), nil
}
