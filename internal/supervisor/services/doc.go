// HackHub - Learning Event Discovery and Recommendation
// Copyright 2026 HackHub Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hackhub/hackhub

/*
Package services provides suture.Service wrappers for HackHub components.

This package adapts application components to the suture v4 supervision
model, translating their lifecycles into suture's context-aware Serve pattern.

# Overview

Each wrapper implements the suture.Service interface:

	type Service interface {
	    Serve(ctx context.Context) error
	}

The wrappers handle:
  - Graceful shutdown via context cancellation
  - Error propagation for supervisor restart decisions
  - Service identification via fmt.Stringer

# Available Services

Trainer (TrainerService):
  - Drives the recommendation engine's retraining lifecycle
  - Trains once at startup, then on a fixed interval
  - Bounds each run with a timeout; a failed or skipped run leaves the
    previously published model serving reads
*/
package services
