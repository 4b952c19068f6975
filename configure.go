package main

import (
	"github.com/urfave/cli"
)

func configure(app *cli.App) {
	serveCMD := makeServeCMD()
	importCMD := makeImportCMD()
	migrationCMD := makePGMigrationCMD()
	statsCMD := makeStatsCMD()
	app.Commands = []cli.Command{serveCMD, importCMD, migrationCMD, statsCMD}
}
