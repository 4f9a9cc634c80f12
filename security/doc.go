// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package security validates input that reaches gamebridge from outside the
// process: configuration file paths, executable override names supplied by
// MCP clients, and the permissions of the configuration file itself.
//
// # Example Usage
//
//	if err := security.ValidatePath(configPath); err != nil {
//	    return fmt.Errorf("invalid config path: %w", err)
//	}
//
//	if err := security.ValidateExecutableName(override); err != nil {
//	    return mcp.NewToolResultError(err.Error()), nil
//	}
//
//	if errors.Is(security.ValidateFilePermissions(path), security.ErrInsecureFilePermissions) {
//	    log.Warn("config file is world-writable", "path", path)
//	}
package security
