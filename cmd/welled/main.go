package main

import "github.com/deepak75500/welledapp-freelance/cmd/welled/root"

func main() {
	root.Execute()
}
