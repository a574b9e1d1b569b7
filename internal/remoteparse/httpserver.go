package remoteparse

import (
	"encoding/json"
	"net/http"
)

// Handler returns an http.Handler exposing the parse/chunk JSON-RPC method
// on POST /, for use as a remote parse worker (spec §5 "remote" pool mode,
// grounded on the teacher's a2a httpserver.go).
func Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var rpcReq JSONRPCRequest
		if err := json.NewDecoder(r.Body).Decode(&rpcReq); err != nil {
			writeRPCError(w, nil, ErrCodeParse, err.Error())
			return
		}
		if rpcReq.Method != MethodParseChunk {
			writeRPCError(w, rpcReq.ID, ErrCodeInternal, "unknown method: "+rpcReq.Method)
			return
		}

		var msg Message
		if err := json.Unmarshal(rpcReq.Params, &msg); err != nil {
			writeRPCError(w, rpcReq.ID, ErrCodeParse, err.Error())
			return
		}

		task, err := HandleParseChunk(msg)
		if err != nil {
			writeRPCError(w, rpcReq.ID, ErrCodeInternal, err.Error())
			return
		}

		result, err := json.Marshal(task)
		if err != nil {
			writeRPCError(w, rpcReq.ID, ErrCodeInternal, err.Error())
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(JSONRPCResponse{JSONRPC: JSONRPCVersion, ID: rpcReq.ID, Result: result})
	})
}

func writeRPCError(w http.ResponseWriter, id any, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(JSONRPCResponse{
		JSONRPC: JSONRPCVersion,
		ID:      id,
		Error:   &JSONRPCError{Code: code, Message: msg},
	})
}
