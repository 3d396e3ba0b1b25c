// SPDX-FileCopyrightText: 2024 Tony Germaneri
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"

	"github.com/TonyGermaneri/genesis-sub003/server"
)

func main() {
	var (
		configPath string
		port       int
		seed       int64
	)

	flag.StringVar(&configPath, "config", "", "yaml config file")
	flag.IntVar(&port, "port", 0, "http service port (overrides config)")
	flag.Int64Var(&seed, "seed", 0, "world seed (overrides config)")
	flag.Parse()

	config, err := server.Load(configPath)
	if err != nil {
		log.Fatal("config: ", err)
	}
	if port != 0 {
		config.Port = port
	}
	if seed != 0 {
		config.Seed = seed
	}
	if err = config.Validate(); err != nil {
		log.Fatal("config: ", err)
	}

	hub := server.NewHub(config)
	go hub.Run()

	log.Println("server started on port", config.Port)

	http.HandleFunc("/", hub.ServeIndex)
	http.HandleFunc("/ws", hub.ServeSocket)
	log.Fatal("ListenAndServe: ", http.ListenAndServe(fmt.Sprint(":", config.Port), nil))
}
