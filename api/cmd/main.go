package main

import (
	api "Litfeed/api"
)

func main() {
	api.Run()
}
