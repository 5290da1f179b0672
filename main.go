package main

import "github.com/tayjaybabee/mididiff/cmd"

func main() {
	cmd.Execute()
}
