package main

import (
	"flag"
	"log"
	"runtime"
	"time"

	patchepi "github.com/kentwait/patchepi"
)

func main() {
	numCPUPtr := flag.Int("threads", runtime.NumCPU(), "number of CPU threads")
	paddingPtr := flag.Int("padding", 0, "halo width in cells (0 = infection_radius+2, the minimum)")
	loggerType := flag.String("logger", "csv", "output writer type (csv|sqlite)")
	seedPtr := flag.Int64("seed", time.Now().UTC().UnixNano(), "random seed override; 0 keeps the scenario's own seed")
	flag.Parse()

	runtime.GOMAXPROCS(*numCPUPtr)

	scenarioPath := flag.Arg(0)
	if scenarioPath == "" {
		log.Fatal("usage: patchsim [flags] scenario.toml")
	}

	scenario, err := patchepi.LoadScenario(scenarioPath)
	if err != nil {
		log.Fatal(err)
	}
	if *seedPtr != 0 {
		scenario.Parameters.RandomSeed = *seedPtr
	}

	padding := *paddingPtr
	if padding == 0 {
		padding = scenario.Parameters.InfectionRadius + 2
	}

	validator := patchepi.NewLogValidator(nil)

	start := time.Now()
	output, err := patchepi.Launch(scenario, padding, validator, false)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("finished %d ticks over %d patches in %s", scenario.Ticks, scenario.Partition.PatchCount(), time.Since(start))

	switch *loggerType {
	case "csv":
		writer := patchepi.NewCSVWriter(scenarioPath)
		if err := writer.WriteTrace(output); err != nil {
			log.Fatal(err)
		}
		if err := writer.WriteStatistics(output); err != nil {
			log.Fatal(err)
		}
	case "sqlite":
		names := make([]string, 0, len(scenario.Queries))
		for name := range scenario.Queries {
			names = append(names, name)
		}
		writer := patchepi.NewSQLiteWriter(scenarioPath+".db", output.RunID)
		if err := writer.Init(names); err != nil {
			log.Fatal(err)
		}
		if err := writer.WriteTrace(output); err != nil {
			log.Fatal(err)
		}
		if err := writer.WriteStatistics(output); err != nil {
			log.Fatal(err)
		}
	default:
		log.Fatalf("%s is not a valid logger type (csv|sqlite)", *loggerType)
	}
}
