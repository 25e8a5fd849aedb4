// Package pipeline turns a command line into at most two stages and wires
// their standard input and output to files and pipes.
package pipeline
