// containers.go
//
// Lead lifecycle and referential-integrity service for the portfolio admin console
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of portfolio-leads.
// portfolio-leads is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// portfolio-leads is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with portfolio-leads.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

// Package devstack starts the service's backing containers (MongoDB, Redis,
// a Mailpit SMTP sink and optionally Authorizer) for integration tests and
// local development.
package devstack

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Default images, overridable by MONGO_IMAGE, REDIS_IMAGE and MAILPIT_IMAGE
const (
	DefaultMongoImage   = "mongo:7"
	DefaultRedisImage   = "redis:7-alpine"
	DefaultMailpitImage = "axllent/mailpit:latest"
)

// Endpoint is a started container and its host-reachable address
type Endpoint struct {
	Container testcontainers.Container
	Host      string
	Port      string
}

// Addr returns host:port
func (e *Endpoint) Addr() string {
	return fmt.Sprintf("%s:%s", e.Host, e.Port)
}

// Stack holds the running development containers
type Stack struct {
	Network    *testcontainers.DockerNetwork
	Mongo      *Endpoint
	Redis      *Endpoint
	Mailpit    *Endpoint
	Authorizer *Endpoint
}

// Env returns the service environment that points at the stack
func (s *Stack) Env() map[string]string {
	env := map[string]string{
		"DB_TYPE":        "mongodb",
		"MONGO_URI":      MongoURI(s.Mongo),
		"MONGO_DATABASE": "portfolio",
		"REDIS_ADDR":     s.Redis.Addr(),
		"SMTP_HOST":      s.Mailpit.Host,
		"SMTP_PORT":      s.Mailpit.Port,
		"MAIL_FROM":      "portfolio@localhost",
		"MAIL_TO":        "owner@localhost",
		"AUTH_ENABLED":   "false",
	}
	if s.Authorizer != nil {
		env["AUTH_ENABLED"] = "true"
		env["AUTHZ_URL"] = "http://" + s.Authorizer.Addr()
		env["AUTHZ_CLIENT_ID"] = os.Getenv("AUTHZ_CLIENT_ID")
	}
	return env
}

// Terminate stops every container and removes the network
func (s *Stack) Terminate(t *testing.T) {
	ctx := context.Background()
	for name, e := range map[string]*Endpoint{
		"Authorizer": s.Authorizer,
		"Mailpit":    s.Mailpit,
		"Redis":      s.Redis,
		"MongoDB":    s.Mongo,
	} {
		if e == nil || e.Container == nil {
			continue
		}
		if err := e.Container.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate %s: %v", name, err)
		}
	}
	if s.Network != nil {
		if err := s.Network.Remove(ctx); err != nil {
			logMessage(t, "Failed to remove network: %v", err)
		}
	}
}

// MongoURI returns the connection string for a MongoDB endpoint
func MongoURI(e *Endpoint) string {
	return fmt.Sprintf("mongodb://%s", e.Addr())
}

// StartStack starts MongoDB, Redis and Mailpit on a shared network. When
// AUTHZ_IMAGE is set an Authorizer backed by the same MongoDB is started too.
func StartStack(ctx context.Context, t *testing.T) (*Stack, error) {
	stack := &Stack{}

	nw, err := network.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create network: %w", err)
	}
	stack.Network = nw
	networks := []string{nw.Name}

	if stack.Mongo, err = start(ctx, containerSpec{
		image:    envOr("MONGO_IMAGE", DefaultMongoImage),
		port:     "27017",
		networks: networks,
		alias:    "mongo",
	}); err != nil {
		stack.Terminate(t)
		return nil, fmt.Errorf("failed to start MongoDB: %w", err)
	}

	if stack.Redis, err = start(ctx, containerSpec{
		image:    envOr("REDIS_IMAGE", DefaultRedisImage),
		port:     "6379",
		networks: networks,
		alias:    "redis",
	}); err != nil {
		stack.Terminate(t)
		return nil, fmt.Errorf("failed to start Redis: %w", err)
	}

	if stack.Mailpit, err = start(ctx, containerSpec{
		image:    envOr("MAILPIT_IMAGE", DefaultMailpitImage),
		port:     "1025",
		extra:    []string{"8025"},
		networks: networks,
		alias:    "mailpit",
		env:      map[string]string{"MP_SMTP_AUTH_ACCEPT_ANY": "1", "MP_SMTP_AUTH_ALLOW_INSECURE": "1"},
	}); err != nil {
		stack.Terminate(t)
		return nil, fmt.Errorf("failed to start Mailpit: %w", err)
	}

	if image := os.Getenv("AUTHZ_IMAGE"); image != "" {
		port := envOr("AUTHZ_PORT", "8080")
		if stack.Authorizer, err = start(ctx, containerSpec{
			image:    image,
			port:     port,
			networks: networks,
			alias:    "authorizer",
			env: map[string]string{
				"ENV":           "production",
				"CLIENT_ID":     os.Getenv("AUTHZ_CLIENT_ID"),
				"PORT":          port,
				"DATABASE_TYPE": "mongodb",
				"DATABASE_NAME": "authorizer",
				"DATABASE_URL":  "mongodb://mongo:27017",
				"ADMIN_SECRET":  os.Getenv("AUTHZ_ADMIN_SECRET"),
				"ROLES":         "admin,user",
				"DEFAULT_ROLES": "user",
			},
			waitLog: "Authorizer running at PORT:",
		}); err != nil {
			stack.Terminate(t)
			return nil, fmt.Errorf("failed to start Authorizer: %w", err)
		}
	}

	logMessage(t, "MONGO_URI=%s", MongoURI(stack.Mongo))
	logMessage(t, "REDIS_ADDR=%s", stack.Redis.Addr())
	logMessage(t, "SMTP=%s", stack.Mailpit.Addr())
	if stack.Authorizer != nil {
		logMessage(t, "AUTHZ_URL=http://%s", stack.Authorizer.Addr())
	}
	return stack, nil
}

// StartMongo starts a standalone MongoDB container
func StartMongo(ctx context.Context) (*Endpoint, error) {
	return start(ctx, containerSpec{
		image: envOr("MONGO_IMAGE", DefaultMongoImage),
		port:  "27017",
	})
}

type containerSpec struct {
	image    string
	port     string
	extra    []string
	networks []string
	alias    string
	env      map[string]string
	waitLog  string
}

func start(ctx context.Context, spec containerSpec) (*Endpoint, error) {
	tcpPort, err := nat.NewPort("tcp", spec.port)
	if err != nil {
		return nil, err
	}
	exposed := []string{string(tcpPort)}
	for _, p := range spec.extra {
		extraPort, err := nat.NewPort("tcp", p)
		if err != nil {
			return nil, err
		}
		exposed = append(exposed, string(extraPort))
	}

	var waitFor wait.Strategy = wait.ForListeningPort(tcpPort).WithStartupTimeout(60 * time.Second)
	if spec.waitLog != "" {
		waitFor = wait.ForLog(spec.waitLog).WithStartupTimeout(30 * time.Second)
	}

	req := testcontainers.ContainerRequest{
		Image:        spec.image,
		ExposedPorts: exposed,
		Env:          spec.env,
		WaitingFor:   waitFor,
		Networks:     spec.networks,
	}
	if spec.alias != "" && len(spec.networks) > 0 {
		req.NetworkAliases = map[string][]string{spec.networks[0]: {spec.alias}}
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, err
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}
	mapped, err := container.MappedPort(ctx, tcpPort)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}
	return &Endpoint{Container: container, Host: host, Port: mapped.Port()}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func logMessage(t *testing.T, format string, args ...any) {
	if t != nil {
		t.Logf(format, args...)
	} else {
		log.Printf(format, args...)
	}
}
