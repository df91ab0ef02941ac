// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

//go:build linelog_release

package logger

// CompileFloor is the lowest level that survives compilation. Release builds
// erase TRACE and DEBUG call sites.
const CompileFloor = LevelInfo

const buildMode = "release"
