package io

const (
	ExampleSimulationFile = `[Simulation]

#######################
# Required Parameters #
#######################

# The plain-text parameter file: nx, ny, maxIters, reynolds_dim, density,
# accel, and omega, one value per line.
ParamFile = path/to/input.params

# The obstacle file. Each line is "x y 1" and blocks the cell at column x
# of row y.
ObstacleFile = path/to/obstacles.dat

#######################
# Optional Parameters #
#######################

# Number of ranks the grid is split across. The grid must have at least one
# row per rank. Default is 1.
# Procs = 4

# Where the per-cell final state and the per-timestep average velocities
# are written. Defaults are final_state.dat and av_vels.dat in the working
# directory.
# FinalStateFile = final_state.dat
# AvVelsFile = av_vels.dat

# Log every timestep's velocity sum and strip density. Slow; only useful
# when something has gone wrong.
# Verbose = true

# Output files which are useful for profiling and debugging. Generally,
# there isn't a reason to use these unless something goes wrong.
# LogFile = log.out
# ProfileFile = prof.out`
)

// SimulationConfig mirrors the [Simulation] section of a config file. It is
// an alternative front door to the two positional command-line arguments.
type SimulationConfig struct {
	// Required
	ParamFile, ObstacleFile string

	// Optional
	Procs                      int
	FinalStateFile, AvVelsFile string
	LogFile, ProfileFile       string
	Verbose                    bool
}

func (con *SimulationConfig) ValidParamFile() bool {
	return con.ParamFile != ""
}
func (con *SimulationConfig) ValidObstacleFile() bool {
	return con.ObstacleFile != ""
}
func (con *SimulationConfig) ValidProcs() bool {
	return con.Procs > 0
}
func (con *SimulationConfig) ValidLogFile() bool {
	return con.LogFile != ""
}
func (con *SimulationConfig) ValidProfileFile() bool {
	return con.ProfileFile != ""
}

// SimulationWrapper exists so that gcfg can map the [Simulation] section
// onto SimulationConfig.
type SimulationWrapper struct {
	Simulation SimulationConfig
}

// DefaultSimulationWrapper returns a wrapper with the optional fields set
// to their defaults.
func DefaultSimulationWrapper() *SimulationWrapper {
	con := SimulationConfig{
		Procs:          1,
		FinalStateFile: "final_state.dat",
		AvVelsFile:     "av_vels.dat",
	}
	return &SimulationWrapper{con}
}
