// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/emulator"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: %v [options] <filename>\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	var compile bool
	var save bool
	var verbose bool
	var strict bool
	var flagMode string
	var returnMode string
	var limit int

	log.SetFlags(0)
	log.SetPrefix("ls8: ")

	flag.Usage = usage
	flag.BoolVar(&compile, "c", false, "File is assembly source to compile")
	flag.BoolVar(&save, "s", false, "Write the image to stdout, do not execute")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&strict, "strict", false, "Reject image lines that are not binary bytes")
	flag.StringVar(&flagMode, "flags", cpu.FLAG_MODE_REPLACE.String(), "CMP flag mode: replace or sticky")
	flag.StringVar(&returnMode, "ret", cpu.RETURN_MODE_LINKAGE.String(), "RET mode: linkage or stack")
	flag.IntVar(&limit, "limit", 0, "Maximum instructions to execute, 0 for unlimited")

	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Image.Strict = strict
	emu.Limit = limit

	var err error
	emu.FlagMode, err = cpu.ParseFlagMode(flagMode)
	if err != nil {
		log.Fatalf("-flags %v: %v", flagMode, err)
	}
	emu.ReturnMode, err = cpu.ParseReturnMode(returnMode)
	if err != nil {
		log.Fatalf("-ret %v: %v", returnMode, err)
	}

	if compile {
		inf, err := os.Open(path)
		if err != nil {
			log.Fatalf("%v: %v", path, err)
		}
		err = emu.Assemble(inf)
		inf.Close()
		if err != nil {
			log.Fatalf("%v: %v", path, err)
		}
	} else {
		err = emu.LoadFile(path)
		if err != nil {
			log.Fatal(err)
		}
	}

	if save {
		if emu.Program != nil {
			err = emu.Program.WriteImage(os.Stdout)
		} else {
			err = emu.Image.Write(os.Stdout)
		}
		if err != nil {
			log.Fatal(err)
		}
		return
	}

	err = emu.Reset()
	if err != nil {
		log.Fatalf("%v: %v", path, err)
	}

	reason, err := emu.Run()
	if err != nil {
		log.Fatalf("%v: %v: %v", path, reason, err)
	}
}
