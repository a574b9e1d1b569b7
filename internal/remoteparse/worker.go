package remoteparse

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/dusk-indust/deadcode/internal/model"
	"github.com/dusk-indust/deadcode/internal/parse"
)

// ParseChunk runs the in-process parser adapters (internal/parse) over
// every file in req and returns the resulting FileRecords. This is the
// worker-side half of the remote pool mode: the same parse.File function
// the local errgroup pool calls runs here too, just on a different
// machine, driven by a request that arrived over the wire instead of a
// local file-path slice (spec §5).
func ParseChunk(req ParseChunkRequest) []model.FileRecord {
	records := make([]model.FileRecord, 0, len(req.Paths))
	for _, p := range req.Paths {
		data := req.Contents[p]
		records = append(records, parse.File(p, data, parse.LanguageForPath(p)))
	}
	return records
}

// HandleParseChunk implements the server side of the parse/chunk JSON-RPC
// method: decode the request out of msg's DataPart, run ParseChunk, and
// wrap the results as a completed Task carrying one Artifact.
func HandleParseChunk(msg Message) (*Task, error) {
	var req ParseChunkRequest
	for _, part := range msg.Parts {
		if len(part.Data) == 0 {
			continue
		}
		if err := json.Unmarshal(part.Data, &req); err != nil {
			return nil, err
		}
	}

	records := ParseChunk(req)
	artifactPart, err := DataPart(records)
	if err != nil {
		return nil, err
	}

	return &Task{
		ID:        uuid.NewString(),
		ContextID: msg.ContextID,
		Status:    TaskStatus{State: TaskStateCompleted, Timestamp: time.Now()},
		Artifacts: []Artifact{{
			ArtifactID: uuid.NewString(),
			Name:       "file-records",
			Parts:      []Part{artifactPart},
		}},
	}, nil
}

// DecodeArtifactRecords extracts the []model.FileRecord payload a worker
// returned from a completed Task's first artifact. The client side calls
// this after SendChunk returns (spec §5 "returns FileRecord results as A2A
// artifacts").
func DecodeArtifactRecords(task *Task) ([]model.FileRecord, error) {
	if task == nil || len(task.Artifacts) == 0 {
		return nil, nil
	}
	var records []model.FileRecord
	for _, part := range task.Artifacts[0].Parts {
		if len(part.Data) == 0 {
			continue
		}
		if err := json.Unmarshal(part.Data, &records); err != nil {
			return nil, err
		}
	}
	return records, nil
}
