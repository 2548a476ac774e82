package main

import (
	"encoding/json"
	"io"

	"github.com/avelis/sitescribe"
)

// emitter writes the newline-delimited JSON protocol: any number of
// progress events followed by exactly one terminal result or error.
// Every event is written (and therefore flushed) as its own line.
type emitter struct {
	enc *json.Encoder
}

func newEmitter(w io.Writer) *emitter {
	return &emitter{enc: json.NewEncoder(w)}
}

type progressEvent struct {
	Type string `json:"type"`
	sitescribe.Progress
}

type resultEvent struct {
	Type string `json:"type"`
	*sitescribe.Result
}

type errorEvent struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

func (e *emitter) Progress(p sitescribe.Progress) {
	e.enc.Encode(progressEvent{Type: "progress", Progress: p})
}

func (e *emitter) Result(r *sitescribe.Result) {
	e.enc.Encode(resultEvent{Type: "result", Result: r})
}

func (e *emitter) Error(msg string) {
	e.enc.Encode(errorEvent{Type: "error", Error: msg})
}
