// Command admin creates or promotes an ADMIN account in the configured
// store. It reads the same configuration as the server.
//
//	admin -username root -d postgres://...
package main

import (
	"bufio"
	"context"
	"flag"
	"io"
	"log"
	"os"

	"github.com/dmitrijs2005/resumekeeper/internal/admin"
	"github.com/dmitrijs2005/resumekeeper/internal/flagx"
	"github.com/dmitrijs2005/resumekeeper/internal/server"
	"github.com/dmitrijs2005/resumekeeper/internal/server/config"
)

func main() {
	var username string
	fs := flag.NewFlagSet("admin", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&username, "username", "", "admin username")
	_ = fs.Parse(flagx.FilterArgs(os.Args[1:], []string{"-username", "--username"}))

	ctx := context.Background()
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if cfg.DatabaseDSN == "" {
		log.Fatal("a database DSN is required, the in-memory store does not outlive this command")
	}

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	if err := admin.Bootstrap(ctx, app.AuthService(), username, bufio.NewReader(os.Stdin), os.Stdout); err != nil {
		log.Printf("%v", err)
		app.Close()
		os.Exit(1)
	}
}
