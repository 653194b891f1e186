// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build mage

// Package main provides build targets for the parlor project using Mage.
//
// Usage:
//
//	mage build       Compile the parlor binary to bin/
//	mage test:all    Run every test
//	mage test:unit   Run tests with the race detector, skipping cmd/
//	mage test:cover  Write coverage.out and print the summary
//	mage lint        Run golangci-lint
//	mage clean       Remove build artifacts
//	mage install     Install parlor to GOPATH/bin
package main

const (
	binGo      = "go"
	binaryName = "parlor"
	binaryDir  = "bin"
	cmdDir     = "./cmd/parlor"
	versionVar = "github.com/mesh-intelligence/parlor/pkg/parlor.Version"
)

// Default target when mage runs without arguments.
var Default = Build
