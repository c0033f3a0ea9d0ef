package main

import "github.com/MeKo-Tech/iris/internal/cmd"

func main() {
	cmd.Execute()
}
