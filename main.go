package main

import "sitebid.com/sitebid/cmd"

func main() {
	cmd.Execute()
}
