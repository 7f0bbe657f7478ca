package main

import "Blogicum/cmd/blogadmin/commands"

func main() {
	commands.Execute()
}
