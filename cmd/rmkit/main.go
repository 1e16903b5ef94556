// Package main implements the rmkit keyboard firmware project tool.
package main

import "github.com/HaoboGu/rmkit/cmd/rmkit/cmd"

func main() {
	cmd.Execute()
}
