package main

import (
	"meetingreel/cmd"
)

func main() {
	cmd.Execute()
	// If Execute() had a problem, Cobra already called os.Exit with a
	// non-zero status. Reaching here means the command ran to completion.
}
