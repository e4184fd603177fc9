// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package security

// Recorder receives pipeline outcomes. The metrics package implements it.
type Recorder interface {
	RecordDecision(stage, outcome string)
	RecordFailOpen(bucket string)
}

type nopRecorder struct{}

func (nopRecorder) RecordDecision(string, string) {}
func (nopRecorder) RecordFailOpen(string)         {}
