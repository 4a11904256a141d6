package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"gopkg.in/gcfg.v1"

	"github.com/aleksmitov/advanced-hpc/io"
	"github.com/aleksmitov/advanced-hpc/lbm"
	"github.com/aleksmitov/advanced-hpc/sim"
)

// FileGroup contains utility files for logging and writing profiles to.
type FileGroup struct {
	log, prof *os.File
}

// Close closes the files inside FileGroup.
func (fg *FileGroup) Close() {
	if fg.log != nil {
		if err := fg.log.Close(); err != nil {
			log.Fatal(err.Error())
		}
	}

	if fg.prof != nil {
		pprof.StopCPUProfile()
		if err := fg.prof.Close(); err != nil {
			log.Fatal(err.Error())
		}
	}
}

func main() {
	var (
		configFile    string
		exampleConfig bool
	)

	wrap := io.DefaultSimulationWrapper()
	con := &wrap.Simulation

	flag.StringVar(
		&configFile, "Config", "",
		"Configuration file with a [Simulation] section. Replaces the "+
			"positional arguments.",
	)
	flag.BoolVar(
		&exampleConfig, "ExampleConfig", false,
		"Prints an example configuration file to stdout and exits.",
	)
	flag.IntVar(
		&con.Procs, "Procs", 1,
		"Number of ranks the grid is split across.",
	)
	flag.StringVar(
		&con.FinalStateFile, "FinalState", con.FinalStateFile,
		"Location the per-cell final state is written to.",
	)
	flag.StringVar(
		&con.AvVelsFile, "AvVels", con.AvVelsFile,
		"Location the average-velocity trace is written to.",
	)
	flag.StringVar(
		&con.LogFile, "Log", "",
		"Location to write log statements to. Default is stderr.",
	)
	flag.StringVar(
		&con.ProfileFile, "PProf", "",
		"Location to write profile to. Default is no profiling.",
	)
	flag.BoolVar(
		&con.Verbose, "Verbose", false,
		"Log every timestep's velocity sum and strip density.",
	)

	flag.Parse()

	if exampleConfig {
		fmt.Println(io.ExampleSimulationFile)
		return
	}

	if configFile != "" {
		if err := gcfg.ReadFileInto(wrap, configFile); err != nil {
			log.Fatal(err.Error())
		}
	} else {
		args := flag.Args()
		if len(args) != 2 {
			usage()
		}
		con.ParamFile, con.ObstacleFile = args[0], args[1]
	}

	if !con.ValidParamFile() {
		log.Fatal("Invalid/non-existent 'ParamFile' value.")
	} else if !con.ValidObstacleFile() {
		log.Fatal("Invalid/non-existent 'ObstacleFile' value.")
	} else if !con.ValidProcs() {
		log.Fatal("Invalid 'Procs' value.")
	}

	fg := setupFiles(con)
	defer fg.Close()

	params, err := io.ReadParams(con.ParamFile)
	if err != nil {
		log.Fatal(err.Error())
	}

	grid := lbm.NewGrid(params)
	if err := io.ReadObstacles(con.ObstacleFile, grid); err != nil {
		log.Fatal(err.Error())
	}

	sim.Verbose = con.Verbose

	tic := time.Now()
	avVels, err := sim.Run(params, grid, con.Procs)
	if err != nil {
		log.Fatal(err.Error())
	}
	elapsed := time.Since(tic)

	fmt.Printf("==done==\n")
	fmt.Printf("Reynolds number:\t\t%.12E\n", sim.Reynolds(params, avVels))
	fmt.Printf("Elapsed time:\t\t\t%.6f (s)\n", elapsed.Seconds())

	if err := io.WriteFinalState(con.FinalStateFile, params, grid); err != nil {
		log.Fatal(err.Error())
	}
	if err := io.WriteAvVels(con.AvVelsFile, avVels); err != nil {
		log.Fatal(err.Error())
	}
}

// setupFiles redirects logging and starts CPU profiling when the config
// asks for either.
func setupFiles(con *io.SimulationConfig) *FileGroup {
	fg := new(FileGroup)
	var err error

	if con.ValidLogFile() {
		fg.log, err = os.Create(con.LogFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		log.SetOutput(fg.log)
	}

	if con.ValidProfileFile() {
		fg.prof, err = os.Create(con.ProfileFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		if err = pprof.StartCPUProfile(fg.prof); err != nil {
			log.Fatal(err.Error())
		}
	}

	return fg
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] <paramfile> <obstaclefile>\n",
		os.Args[0])
	os.Exit(1)
}
