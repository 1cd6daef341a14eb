// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package ari

import "fmt"

// InvalidInputError reports a precondition violation in the caller-supplied
// partition tensor (bad shape, negative or out-of-range labels).
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("ari: invalid input: %s", e.Reason)
}

// DeviceError wraps a failure reported by a compute backend (GPU runtime,
// driver, or allocator). The underlying diagnostic is preserved via Unwrap.
type DeviceError struct {
	Op  string
	Err error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("ari: device error during %s: %v", e.Op, e.Err)
}

func (e *DeviceError) Unwrap() error {
	return e.Err
}

// ResourceExceededError is a DeviceError specialized to scratch-memory or
// device-capacity overflow, so callers can distinguish "use a smaller
// label alphabet" (the per-group footprint depends only on K) from a
// generic device failure with errors.As.
type ResourceExceededError struct {
	*DeviceError
	RequestedBytes uint64
	LimitBytes     uint64
}

func newResourceExceeded(op string, requested, limit uint64) *ResourceExceededError {
	return &ResourceExceededError{
		DeviceError: &DeviceError{
			Op:  op,
			Err: fmt.Errorf("scratch footprint %d bytes exceeds limit %d bytes", requested, limit),
		},
		RequestedBytes: requested,
		LimitBytes:     limit,
	}
}
