// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

//go:build !linelog_release

package logger

// CompileFloor is the lowest level that survives compilation. Default builds
// keep every level; build with -tags linelog_release to drop TRACE and DEBUG.
const CompileFloor = LevelTrace

const buildMode = "debug"
