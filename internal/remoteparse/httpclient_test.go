package remoteparse

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPClient_SendChunk(t *testing.T) {
	srv := httptest.NewServer(Handler())
	defer srv.Close()

	client := NewHTTPClient()
	task, err := client.SendChunk(context.Background(), srv.URL, ParseChunkRequest{
		Paths:    []string{"main.go"},
		Contents: map[string][]byte{"main.go": []byte("package main\n")},
	})
	require.NoError(t, err)
	require.Equal(t, TaskStateCompleted, task.Status.State)

	records, err := DecodeArtifactRecords(task)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "main.go", records[0].RelativePath)
}

func TestHTTPClient_MalformedBodyErrors(t *testing.T) {
	srv := httptest.NewServer(Handler())
	defer srv.Close()

	// Exercise the server's error path directly via a malformed request
	// body (invalid JSON), which Handler reports as a JSON-RPC parse error.
	resp, err := srv.Client().Post(srv.URL, "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, 200, resp.StatusCode)

	var rpcResp JSONRPCResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rpcResp))
	require.NotNil(t, rpcResp.Error)
	require.Equal(t, ErrCodeParse, rpcResp.Error.Code)
}
