// Copyright (c) 2024 the authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package embedded holds the marker interfaces that close the Content and Tool
// unions to the types declared in this module.
package embedded

type Content interface {
	content()
}

type Tool interface {
	tool()
}
