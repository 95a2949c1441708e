// Package sensiscan provides the command-line interface for the sensitive
// information scanner. It configures subcommands (scan, categories,
// completion), parses flags, and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/ccjmqdzj/sensitive-info-scanner/cmd/sensiscan"
//	func main() { sensiscan.Execute() }
package sensiscan
