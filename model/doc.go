// SPDX-License-Identifier: EPL-2.0

// Package model provides the inference functions a separation pipeline
// runs inside an overlap.Transformer.
//
// Open selects a model by name or path. Built-in models run in-process:
//   - identity returns its window as the single source "mix"
//   - bandsplit splits each window at a crossover frequency into the
//     sources "low" and "high", which sum back to the input
//
// Paths to .pt and .onnx files are recognised but report
// ErrBackendUnavailable. Every error from Open matches
// audio.ErrUnsupportedFormat.
package model
