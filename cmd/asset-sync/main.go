package main

import "github.com/oshokin/asset-sync/cmd/asset-sync/cmd"

func main() {
	cmd.Execute()
}
