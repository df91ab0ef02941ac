// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package control exposes a logger's runtime settings over HTTP.

	http.Handle("/log/", http.StripPrefix("/log", control.NewRouter(lg)))

	curl localhost:8080/log/settings
	curl -X PATCH -d '{"show_time":true,"color":"never"}' localhost:8080/log/settings
	curl -X PUT -d '{"level":"debug"}' localhost:8080/log/level
	curl -X PUT -d '{"expr":"group != \"noisy\""}' localhost:8080/log/filter

Request bodies are strict JSON: unknown fields and invalid level or color
names are rejected with 400 and an {"error": ...} body. Filter compile
errors also carry line and column details. The output target cannot be
changed at runtime.

The API has no authentication. Bind it to a trusted interface.
*/
package control
