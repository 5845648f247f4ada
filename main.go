package main

import "breeder-site-backend/cmd"

func main() {
	cmd.Execute()
}
