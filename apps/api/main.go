package main

// TODO: serve the browser frontend's static build from the same server.
func main() {
	startWithDig()
}
