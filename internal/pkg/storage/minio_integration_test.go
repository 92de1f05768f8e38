//go:build integration

package storage

import (
	"bytes"
	"context"
	"testing"

	"github.com/docker/go-connections/nat"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const minioPort nat.Port = "9000/tcp"

func TestMinIOAdapter_PutObject_Integration(t *testing.T) {
	ctx := context.Background()

	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "minio/minio:RELEASE.2025-04-22T22-12-26Z",
			ExposedPorts: []string{string(minioPort)},
			Env: map[string]string{
				"MINIO_ROOT_USER":     "minioadmin",
				"MINIO_ROOT_PASSWORD": "minioadmin",
			},
			Cmd:        []string{"server", "/data"},
			WaitingFor: wait.ForHTTP("/minio/health/live").WithPort(minioPort),
		},
		Started: true,
	})
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	endpoint, err := ctr.PortEndpoint(ctx, minioPort, "")
	require.NoError(t, err)

	m, err := NewMinIO(MinIOOptions{
		Endpoint:      endpoint,
		AccessKey:     "minioadmin",
		SecretKey:     "minioadmin",
		CreateBuckets: true,
	})
	require.NoError(t, err)

	content := []byte("png-bytes")
	info, err := m.PutObject(ctx, "qrcodes", "Ann_ann@x.com.png", bytes.NewReader(content),
		PutOptions{Size: int64(len(content)), ContentType: "image/png"})
	require.NoError(t, err)
	assert.Equal(t, "minio://qrcodes/Ann_ann@x.com.png", info.Location)

	stat, err := m.client.StatObject(ctx, "qrcodes", "Ann_ann@x.com.png", minio.StatObjectOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), stat.Size)
	assert.Equal(t, "image/png", stat.ContentType)
}
