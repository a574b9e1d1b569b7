// Package remoteparse carries parse-chunk work to remote workers over the
// teacher's Agent2Agent wire protocol (internal/a2a in the teacher repo).
// The Task/Message/Part/Artifact envelope is kept verbatim in shape; only
// the payload carried inside Parts and Artifacts changes, from decomposition
// stage output to ParseChunkRequest/model.FileRecord (spec §5 "remote"
// worker-pool mode).
package remoteparse

import (
	"encoding/json"
	"time"
)

// TaskState is the lifecycle state of a remote parse task.
type TaskState string

const (
	TaskStateUnspecified TaskState = ""
	TaskStateSubmitted   TaskState = "submitted"
	TaskStateWorking     TaskState = "working"
	TaskStateCompleted   TaskState = "completed"
	TaskStateFailed      TaskState = "failed"
	TaskStateCanceled    TaskState = "canceled"
)

// IsTerminal reports whether the state is final.
func (s TaskState) IsTerminal() bool {
	switch s {
	case TaskStateCompleted, TaskStateFailed, TaskStateCanceled:
		return true
	}
	return false
}

// Role identifies the sender of a Message.
type Role string

const (
	RoleClient Role = "client"
	RoleWorker Role = "worker"
)

// Task is the unit of remote work: one parse chunk dispatched to one worker.
type Task struct {
	ID        string          `json:"id"`
	ContextID string          `json:"contextId"`
	Status    TaskStatus      `json:"status"`
	Artifacts []Artifact      `json:"artifacts,omitempty"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
}

// TaskStatus tracks the current state and when it changed.
type TaskStatus struct {
	State     TaskState `json:"state"`
	Message   *Message  `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Message carries a ParseChunkRequest from client to worker, or a
// status/error note from worker back to client.
type Message struct {
	MessageID string `json:"messageId"`
	ContextID string `json:"contextId,omitempty"`
	TaskID    string `json:"taskId,omitempty"`
	Role      Role   `json:"role"`
	Parts     []Part `json:"parts"`
}

// Part carries content within a Message or Artifact. Exactly one of Text
// or Data is set.
type Part struct {
	Text      string          `json:"text,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	MediaType string          `json:"mediaType,omitempty"`
}

// TextPart creates a Part carrying plain text.
func TextPart(text string) Part {
	return Part{Text: text, MediaType: "text/plain"}
}

// DataPart creates a Part carrying structured JSON (a ParseChunkRequest on
// the way out, a []model.FileRecord on the way back).
func DataPart(v any) (Part, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Part{}, err
	}
	return Part{Data: data, MediaType: "application/json"}, nil
}

// Artifact is a worker's output for a task: the parsed FileRecords for the
// chunk it was handed.
type Artifact struct {
	ArtifactID string `json:"artifactId"`
	Name       string `json:"name"`
	Parts      []Part `json:"parts"`
}

// ParseChunkRequest is the payload a client sends a remote worker: a set of
// candidate file paths plus their raw content, addressed by path rather
// than by a separate blob store (the teacher's content-addressed-reference
// idea, simplified since this repo has no object store to reference).
type ParseChunkRequest struct {
	ProjectRoot string            `json:"projectRoot"`
	Paths       []string          `json:"paths"`
	Contents    map[string][]byte `json:"contents"`
}
