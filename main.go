// Command ntfsview reads, caches, and searches NTFS Master File Tables.
package main

import "github.com/ntfsview/ntfsview/cmd"

func main() {
	cmd.Execute()
}
