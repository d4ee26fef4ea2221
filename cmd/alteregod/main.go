/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/alterego-vtt/alterego/cmd/alteregod/cmd"

func main() {
	cmd.Execute()
}
