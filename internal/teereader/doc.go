// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package teereader provides a TeeReader that watches a worker's standard
// output while it is read. Each complete line is offered to the snapshot
// decoder: lines that decode become the latest snapshot, anything else is kept
// as the last plain line. All data is also kept so the full output can be
// shown once the worker exits.
package teereader
