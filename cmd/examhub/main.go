package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	_ "github.com/examhub-lk/examhub-api/api/swagger"
)

// @title ExamHub Document Search API
// @version 1.0.0
// @description Search and ranking for past papers, short notes and books.
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	app := &cli.Command{
		Name:  "examhub",
		Usage: "Document search API for the exam study platform",
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
			subjectsCommand(),
			cacheCommand(),
			pruneCommand(),
		},
		Action: runServe,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
