package main

import (
	"log"
	"roamsync/server"
)

func main() {

	syncSystem, err := server.NewSyncSystem()
	if err != nil {
		log.Println("sync system initialization failed", err)
		return
	}
	syncSystem.Start()

}
