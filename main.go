// Command linkrank estimates PageRank over web-link graphs.
package main

import "github.com/papapumpkin/linkrank/cmd"

func main() {
	cmd.Execute()
}
