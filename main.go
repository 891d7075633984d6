// Command withpost runs the main or post command of a two-phase CI step.
package main

import "withpost/internal/cli"

func main() {
	cli.Execute()
}
