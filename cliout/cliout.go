// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cliout

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/term"
)

// Format represents the output format.
type Format string

const (
	// FormatDefault is the default human-readable format.
	FormatDefault Format = "default"
	// FormatJSON is JSON format.
	FormatJSON Format = "json"
)

// EnvNoColor disables color when set to any non-empty value.
const EnvNoColor = "NO_COLOR"

// ANSI color codes
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	Cyan         = "\033[36m"
	BrightRed    = "\033[91m"
	BrightGreen  = "\033[92m"
	BrightYellow = "\033[93m"
	BrightBlue   = "\033[94m"
)

const (
	SymbolCheck   = "✓"
	SymbolCross   = "✗"
	SymbolWarning = "⚠"
	SymbolInfo    = "ℹ"
)

// ASCII fallback symbols for terminals that don't support Unicode
const (
	ASCIICheck   = "[+]"
	ASCIICross   = "[-]"
	ASCIIWarning = "[!]"
	ASCIIInfo    = "[i]"
)

var (
	mu           sync.RWMutex
	globalFormat = FormatDefault
	noColor      = detectNoColor()
)

var supportsUnicode = detectUnicodeSupport()

// detectNoColor reports whether stdout should be left uncolored: NO_COLOR is
// set or stdout is not a terminal.
func detectNoColor() bool {
	if os.Getenv(EnvNoColor) != "" {
		return true
	}
	return !term.IsTerminal(int(os.Stdout.Fd())) // #nosec G115 -- file descriptors fit in int
}

func detectUnicodeSupport() bool {
	if runtime.GOOS != "windows" {
		return true
	}
	// Windows Terminal, VS Code, ConEmu and PowerShell all render Unicode.
	// Legacy cmd.exe sets none of these.
	for _, v := range []string{"WT_SESSION", "ConEmuPID", "PSModulePath", "POWERSHELL_DISTRIBUTION_CHANNEL", "TERM"} {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return os.Getenv("TERM_PROGRAM") == "vscode"
}

func getIcon(unicode, ascii string) string {
	if supportsUnicode {
		return unicode
	}
	return ascii
}

// ForceColor enables color output regardless of terminal detection.
func ForceColor() {
	mu.Lock()
	noColor = false
	mu.Unlock()
}

// NoColor disables color output.
func NoColor() {
	mu.Lock()
	noColor = true
	mu.Unlock()
}

func colorDisabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return noColor
}

// paint wraps s in the given ANSI codes unless color is disabled.
func paint(s string, codes ...string) string {
	if colorDisabled() || len(codes) == 0 {
		return s
	}
	return strings.Join(codes, "") + s + Reset
}

// SetFormat sets the global output format.
func SetFormat(format string) error {
	mu.Lock()
	defer mu.Unlock()
	switch format {
	case "default", "":
		globalFormat = FormatDefault
	case "json":
		globalFormat = FormatJSON
	default:
		return fmt.Errorf("invalid output format: %s (valid options: default, json)", format)
	}
	return nil
}

// GetFormat returns the current output format.
func GetFormat() Format {
	mu.RLock()
	defer mu.RUnlock()
	return globalFormat
}

// IsJSON returns true if the output format is JSON.
func IsJSON() bool {
	return GetFormat() == FormatJSON
}

// PrintJSON prints data as indented JSON to stdout.
func PrintJSON(data any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Print outputs data in the configured format. JSON mode marshals data;
// default mode calls formatter.
func Print(data any, formatter func()) error {
	if IsJSON() {
		return PrintJSON(data)
	}
	formatter()
	return nil
}

// Header prints a bold header with an underline.
func Header(text string) {
	fmt.Printf("\n%s\n", paint(text, Bold))
	fmt.Println(strings.Repeat("=", len(text)))
}

// Success prints a success message with a green checkmark.
func Success(format string, args ...any) {
	fmt.Printf("%s %s\n", paint(getIcon(SymbolCheck, ASCIICheck), BrightGreen), fmt.Sprintf(format, args...))
}

// Error prints an error message with a red cross.
func Error(format string, args ...any) {
	fmt.Printf("%s %s\n", paint(getIcon(SymbolCross, ASCIICross), BrightRed), fmt.Sprintf(format, args...))
}

// Warning prints a warning message with a yellow triangle.
func Warning(format string, args ...any) {
	fmt.Printf("%s  %s\n", paint(getIcon(SymbolWarning, ASCIIWarning), BrightYellow), fmt.Sprintf(format, args...))
}

// Info prints an info message with a blue info icon.
func Info(format string, args ...any) {
	fmt.Printf("%s  %s\n", paint(getIcon(SymbolInfo, ASCIIInfo), BrightBlue), fmt.Sprintf(format, args...))
}

// Plain prints plain text without any formatting.
func Plain(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
}

// Label prints a label and value pair.
func Label(label, value string) {
	fmt.Printf("   %s %s\n", paint(fmt.Sprintf("%-16s", label+":"), Dim), value)
}

// Muted returns dim text.
func Muted(format string, args ...any) string {
	return paint(fmt.Sprintf(format, args...), Dim)
}

// Highlight returns bold cyan text.
func Highlight(format string, args ...any) string {
	return paint(fmt.Sprintf(format, args...), Bold, Cyan)
}

// Status returns a status badge colored by its meaning.
func Status(status string) string {
	switch strings.ToLower(status) {
	case "running", "alive", "ok", "closed":
		return paint(status, BrightGreen)
	case "half-open", "pending", "unknown":
		return paint(status, BrightYellow)
	case "not running", "dead", "open", "error":
		return paint(status, BrightRed)
	default:
		return status
	}
}

// TableRow represents a row in a table as a map of column header to value.
type TableRow map[string]string

// Table prints a simple table with the given headers and rows. Nothing is
// printed for an empty row set.
func Table(headers []string, rows []TableRow) {
	if len(rows) == 0 {
		return
	}

	widths := make(map[string]int, len(headers))
	for _, header := range headers {
		widths[header] = len(header)
	}
	for _, row := range rows {
		for _, header := range headers {
			if len(row[header]) > widths[header] {
				widths[header] = len(row[header])
			}
		}
	}

	fmt.Print("   ")
	for _, header := range headers {
		fmt.Printf("%s  ", paint(fmt.Sprintf("%-*s", widths[header], header), Bold))
	}
	fmt.Println()

	fmt.Print("   ")
	for _, header := range headers {
		fmt.Print(strings.Repeat("─", widths[header]) + "  ")
	}
	fmt.Println()

	for _, row := range rows {
		fmt.Print("   ")
		for _, header := range headers {
			fmt.Printf("%-*s  ", widths[header], row[header])
		}
		fmt.Println()
	}
}
