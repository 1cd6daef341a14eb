// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package ari

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFinalizeARIPerfectAgreement(t *testing.T) {
	require.Equal(t, 1.0, FinalizeARI(2, 0, 0, 2))
}

func TestFinalizeARICompleteDisagreement(t *testing.T) {
	require.InDelta(t, -0.5, FinalizeARI(2, 2, 2, 0), 1e-9)
}

func TestFinalizeARIMiddleGround(t *testing.T) {
	require.InDelta(t, 0.242424, FinalizeARI(8, 1, 4, 2), 1e-5)
}
