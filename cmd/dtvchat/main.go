// Command dtvchat is a terminal client for the Thailand DTV visa
// consulting assistant.
package main

import "github.com/diogo/dtvchat/internal/commands"

func main() {
	commands.Execute()
}
