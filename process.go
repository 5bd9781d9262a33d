package main

import (
	"flag"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	cmdUtils "scatter-go/pkg/cmd-utils"
)

const defaultInput = "scores.csv"

var (
	verbose     = flag.Bool("v", false, "Turn on verbose output")
	veryVerbose = flag.Bool("vv", false, "Turn on very verbose output")
	configPath  = flag.String("config", "", "YAML file with figure settings")
	cli         cliFlags
)

func init() {
	flag.StringVar(&cli.output, "o", "", "Output file (default <input>-scatter.html, - for stdout)")
	flag.StringVar(&cli.title, "title", "", "Figure title")
	flag.IntVar(&cli.width, "width", 0, "Figure width in pixels (default 800)")
	flag.IntVar(&cli.height, "height", 0, "Figure height in pixels (default 800)")
	flag.StringVar(&cli.diag, "diag", "", "Diagonal tiles: scatter, histogram or box")
	flag.StringVar(&cli.group, "group", "", "Column whose values colour the points")
	flag.IntVar(&cli.bins, "bins", 0, "Histogram bins on the diagonal (default 10)")
	flag.StringVar(&cli.cols, "cols", "", "Comma separated columns to plot (default all)")
	flag.StringVar(&cli.delim, "delim", "", "CSV delimiter (default ,)")
	flag.BoolVar(&cli.noOpen, "no-open", false, "Do not open the result in a browser")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: scatter [flags] [input.csv]\n\nInput defaults to %s, - reads stdin.\n\n", defaultInput)
		flag.PrintDefaults()
	}
}

func setLogLevel() {
	log.SetLevel(log.InfoLevel)

	if *verbose {
		log.SetLevel(log.DebugLevel)
		log.Debug("Set log level to debug")
	}

	if *veryVerbose {
		log.SetLevel(log.TraceLevel)
		log.Debug("Set log level to trace")
	}
}

func explicitFlags() map[string]bool {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

func main() {
	flag.Parse()
	setLogLevel()

	if len(flag.Args()) > 1 {
		flag.Usage()
		os.Exit(2)
	}

	input := defaultInput
	if flag.NArg() == 1 {
		input = flag.Arg(0)
	}

	j, err := newJob(input, *configPath, cli, explicitFlags())
	if err != nil {
		cmdUtils.LogFatalError("invalid settings: ", err)
	}

	log.Infof("Plotting %s", input)
	url, err := j.run()
	if err != nil {
		log.Fatalln(err)
	}

	if url != "" {
		log.Infoln("Wrote", url)
	}
	log.Infoln("Done!")
}
