package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/soderasen-au/go-common/loggers"
	"github.com/soderasen-au/go-common/util"

	"github.com/soderasen-au/go-hiertable/job"
)

var (
	configFile = flag.String("config", "script.yaml", "Path to YAML script file")
	help       = flag.Bool("h", false, "Show help message")
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n", "hiertable")
		fmt.Fprintf(flag.CommandLine.Output(), "\nRenders hierarchical tables into spreadsheets via a YAML script.\n\n")
		flag.PrintDefaults()
		fmt.Fprintf(flag.CommandLine.Output(), "\nExamples:\n")
		fmt.Fprintf(flag.CommandLine.Output(), "  # Use default script.yaml\n")
		fmt.Fprintf(flag.CommandLine.Output(), "  ./hiertable\n\n")
		fmt.Fprintf(flag.CommandLine.Output(), "  # Specify custom script file\n")
		fmt.Fprintf(flag.CommandLine.Output(), "  ./hiertable -config nightly.yaml\n\n")
		fmt.Fprintf(flag.CommandLine.Output(), "\nScript Structure:\n")
		fmt.Fprintf(flag.CommandLine.Output(), "  name:             # Script name\n")
		fmt.Fprintf(flag.CommandLine.Output(), "  log_folder:       # Where to write logs\n")
		fmt.Fprintf(flag.CommandLine.Output(), "  output_folder:    # Where to write reports\n")
		fmt.Fprintf(flag.CommandLine.Output(), "  concurrency:      # Render steps run at once\n")
		fmt.Fprintf(flag.CommandLine.Output(), "  vars:             # $(var) values for names and titles\n")
		fmt.Fprintf(flag.CommandLine.Output(), "  steps:            # render, publish or del_file\n")
		fmt.Fprintf(flag.CommandLine.Output(), "    - cmd: render\n")
		fmt.Fprintf(flag.CommandLine.Output(), "      tables:       # csv, yaml or inline sources\n")
		fmt.Fprintf(flag.CommandLine.Output(), "      report:       # name, title, layout options, colors, output_format\n")
		fmt.Fprintf(flag.CommandLine.Output(), "    - cmd: publish\n")
		fmt.Fprintf(flag.CommandLine.Output(), "      publish:      # tus endpoint, token, chunk_size_mb\n\n")
	}
}

func main() {
	flag.Parse()

	if *help {
		flag.Usage()
		return
	}

	script, res := job.LoadScript(*configFile)
	if res != nil {
		fmt.Printf("Error loading script: %v\n", res)
		os.Exit(1)
	}

	_ = util.MaybeCreate(script.LogFolder)
	logFile := filepath.Join(script.LogFolder, fmt.Sprintf("hiertable-%s.log", script.ID))
	logger, err := loggers.GetLogger(logFile)
	if err != nil {
		fmt.Printf("Error creating logger: %v\n", err)
		os.Exit(1)
	}
	logger.Info().
		Str("config", *configFile).
		Str("script", script.Name).
		Int("steps", len(script.Steps)).
		Msg("starting")

	script.CreateExecEnv(logger)
	req, res := script.NewRequest()
	if res != nil {
		logger.Err(res).Msg("NewRequest")
		fmt.Printf("Error: %v\n", res)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ok, results := req.Run(ctx)
	if !ok {
		for _, r := range results {
			if r != nil && r.Code != 0 {
				fmt.Printf("Error: %v\n", r)
			}
		}
		os.Exit(1)
	}

	for _, rr := range script.Env.Reports() {
		fmt.Printf("Report generated: %s\n", util.MaybeNil(rr.ReportFile))
	}
	logger.Info().Msg("done")
}
