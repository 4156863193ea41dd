package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/kibitz/internal/kibitz/cmd"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})
	logrus.SetLevel(logrus.InfoLevel)

	if err := kibitz(); err != nil {
		logrus.Fatal(err)
	}
}

func kibitz() error {
	root := cmd.Root()
	root.SetArgs(os.Args[1:])
	return root.Execute()
}
