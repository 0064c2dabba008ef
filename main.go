// Command argus annotates a stream of media view items with
// cross-referenced third-party ratings.
package main

import "github.com/lepinkainen/argus/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
