package container

import (
	"context"
	"fmt"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type Endpoint struct {
	Host string
	Port string
}

func (e Endpoint) Addr() string {
	return fmt.Sprintf("%s:%s", e.Host, e.Port)
}

// StartRedis runs a throwaway redis container. The returned closer
// terminates it.
func StartRedis(ctx context.Context) (Endpoint, func(), error) {
	req := testcontainers.ContainerRequest{
		Image:        "redis:8.4-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}

	cont, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return Endpoint{}, nil, fmt.Errorf("start redis container: %w", err)
	}

	closer := func() {
		_ = cont.Terminate(context.Background())
	}

	host, err := cont.Host(ctx)
	if err != nil {
		closer()
		return Endpoint{}, nil, fmt.Errorf("get container host: %w", err)
	}

	port, err := cont.MappedPort(ctx, "6379/tcp")
	if err != nil {
		closer()
		return Endpoint{}, nil, fmt.Errorf("get container port: %w", err)
	}

	return Endpoint{
		Host: host,
		Port: port.Port(),
	}, closer, nil
}
