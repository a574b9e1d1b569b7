package main

func unused() int {
	return 42
}
