// Command pdp11 boots a machine image against an RK11 disk image and
// runs it to completion, in the spirit of original_source's
// single-positional-argument main.rs (cpu::Cpu::new("rk0.img")?;
// core.poweron();).
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"pdp11/internal/cpu"
)

func main() {
	var (
		trace = flag.Bool("trace", false, "log every decoded instruction to stderr")
		debug = flag.Bool("debug", false, "launch the interactive single-step inspector instead of running freely")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] disk-image\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	imagePath := flag.Arg(0)

	c, err := cpu.New(imagePath)
	if err != nil {
		log.Fatalf("pdp11: %v", err)
	}
	c.Trace = *trace

	if *debug {
		if err := runDebugger(c); err != nil {
			log.Fatalf("pdp11: debugger: %v", err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := c.PowerOn(ctx); err != nil {
		log.Fatalf("pdp11: %v", err)
	}
}
