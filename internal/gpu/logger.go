//go:build !nogpu

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"log/slog"

	"github.com/gogpu/composite"
)

// slogger returns the package logger shared with the root package.
// All logging in internal/gpu goes through this function.
func slogger() *slog.Logger { return composite.Logger() }
