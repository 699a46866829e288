// Command cpuctrlsim drives a CPU controller with a synthetic access stream
// and reports what the controller did.
package main

import "github.com/tebeka/atexit"

func main() {
	Execute()
	atexit.Exit(0)
}
