// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package config loads logger configuration files.

TOML and YAML are supported and chosen by file extension. Keys:

	level           trace | debug | info | warn | error | fatal
	color           auto | always | never
	show_time       bool
	local_time      bool
	show_tid        bool
	show_file_line  bool
	show_group      bool
	target          stdout | stderr | file
	file            path of the log file
	state_file      file name placed under $XDG_STATE_HOME/linelog
	group           default group tag for the linelog CLI
	filter          CEL expression, see package filter
	banner          banner template with {name}, {version} and {mode}

Example:

	level = "debug"
	show_time = true
	state_file = "app.log"
	filter = 'group != "noisy"'

Load validates the file and reports every problem at once as
ValidationErrors. Builder creates a new logger from the config; Apply
updates the runtime settings of an existing one.
*/
package config
