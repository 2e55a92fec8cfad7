package main

import "lms/internal/app/server"

func main() {
	server.Run()
}
