// README: matchctl; command-line views over a running marketplace API.
package main

func main() {
	Execute()
}
