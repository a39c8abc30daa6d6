package main

import "github.com/cmake-checker/cmake-checker/cmd/cmakecheck"

func main() { cmakecheck.Execute() }
