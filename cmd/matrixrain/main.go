package main

import "matrixrain/internal/rain"

func main() {
	rain.Run()
}
