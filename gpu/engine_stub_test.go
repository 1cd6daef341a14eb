//go:build !cgo

// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

// This file tests pure Go mode (CGO_ENABLED=0), the !cgo counterpart of
// engine_test.go.

package gpu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewReportsUnavailable(t *testing.T) {
	t.Log("Running in Pure Go mode (CGO_ENABLED=0)")

	_, err := New(DefaultConfig())
	require.ErrorIs(t, err, ErrGPUUnavailable)
}
