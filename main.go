package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"postboard/service"
)

const cliVersion = "1.0.0"

var exit = os.Exit

func main() {
	exit(run(os.Args[1:], os.Stdout))
}

// run dispatches the top-level command and returns the process exit code.
func run(args []string, out io.Writer) int {
	if len(args) < 1 {
		return service.HandleCommand(nil)
	}

	switch strings.ToLower(args[0]) {
	case "version", "--version", "-v":
		fmt.Fprintf(out, "postboard version %s\n", cliVersion)
		return 0
	case "help", "--help", "-h":
		return service.HandleCommand([]string{"help"})
	default:
		args[0] = strings.ToLower(args[0])
		return service.HandleCommand(args)
	}
}
