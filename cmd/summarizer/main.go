// Command summarizer runs the content-acquisition HTTP API and exposes the
// browse, fetch and search pipelines on the command line.
package main

func main() {
	Execute()
}
