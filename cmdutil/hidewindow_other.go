//go:build !windows
// +build !windows

// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cmdutil

import "os/exec"

func hideWindow(*exec.Cmd) {}
