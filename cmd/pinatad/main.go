package main

//go-build: CGO_ENABLED=0

import (
	"context"
	"flag"
	"log"

	"github.com/golang/glog"

	"github.com/robotalks/pinata.go/pkg/target/cryp"
	"github.com/robotalks/pinata.go/pkg/target/env"
)

func init() {
	env.SetupFlags()
}

func main() {
	flag.Parse()
	defer glog.Flush()

	conf := env.Default()
	target := conf.MustNewTarget(cryp.NewSoft())
	glog.Infof("target %s ready, trigger %s", conf.ID, conf.Trigger)
	if err := target.Run(context.Background()); err != nil {
		log.Fatalln(err)
	}
}
