// Package main is the entry point for contentgraph.
package main

func main() {
	Execute()
}
