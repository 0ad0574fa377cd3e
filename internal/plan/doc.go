// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package plan describes a scripted worker: a named list of tasks, each with
// an optional total, a delay and an optional failure message.
//
// Plans are written in YAML or HCL and can be fetched from anywhere
// Hashicorp's go-getter understands. Run drives an interprog.TaskManager
// through the plan so that the resulting NDJSON stream can be observed.
//
// An example YAML plan:
//
//	name: deploy
//	tasks:
//	  - name: fetch
//	    total: 10
//	    delay: 100ms
//	  - name: build
//	    delay: 2s
//	  - name: push
//	    fail: registry unreachable
//
// The same plan in HCL, where the env object holds the environment:
//
//	name = "deploy-${env.USER}"
//
//	task "fetch" {
//	  total = 10
//	  delay = "100ms"
//	}
package plan
