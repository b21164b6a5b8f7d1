// Command symcore manipulates symbolic expressions given in their JSON
// encoding.
package main

func main() {
	Execute()
}
