package main

import "github.com/nikogura/resume-builder/cmd"

func main() {
	cmd.Execute()
}
