package remoteparse

import "context"

// Client dispatches a parse chunk to a remote worker and waits for its
// result, mirroring the teacher's a2a.Client.SendMessage contract (spec §5
// "remote" pool mode).
type Client interface {
	SendChunk(ctx context.Context, endpoint string, req ParseChunkRequest) (*Task, error)
}
