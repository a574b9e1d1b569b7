package parseworkers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/deadcode/internal/remoteparse"
)

type fakeClient struct {
	endpointsSeen []string
}

func (c *fakeClient) SendChunk(_ context.Context, endpoint string, req remoteparse.ParseChunkRequest) (*remoteparse.Task, error) {
	c.endpointsSeen = append(c.endpointsSeen, endpoint)
	part, err := remoteparse.DataPart(req)
	if err != nil {
		return nil, err
	}
	return remoteparse.HandleParseChunk(remoteparse.Message{
		Role:  remoteparse.RoleClient,
		Parts: []remoteparse.Part{part},
	})
}

func TestRunRemote_RoundRobinsEndpoints(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "a.go", "package main\n")
	writeFixture(t, root, "b.go", "package main\n")
	writeFixture(t, root, "c.go", "package main\n")

	client := &fakeClient{}
	endpoints := []string{"http://worker-1", "http://worker-2"}

	records, stats, err := RunRemote(context.Background(), client, root, []string{"a.go", "b.go", "c.go"}, endpoints, 1, nil)
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Len(t, stats, 3)
	require.Contains(t, client.endpointsSeen, "http://worker-1")
	require.Contains(t, client.endpointsSeen, "http://worker-2")
}
