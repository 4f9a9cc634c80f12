// Package shellutil builds command-interpreter invocations.
//
// gamebridge queries the operating system through its native shell:
// Windows PowerShell on Windows and sh elsewhere. Invocation turns a script
// into the program name and argument list expected by each interpreter so
// callers never assemble "-Command" or "-c" by hand.
//
// # Example Usage
//
//	name, args := shellutil.Invocation(shellutil.ShellSh, "ps -eo comm,pid,args")
//	out, err := runner.Output(ctx, name, args...)
package shellutil
