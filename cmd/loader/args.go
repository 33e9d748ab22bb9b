package main

import (
	"os"

	"github.com/jessevdk/go-flags"
)

type commandOptions struct {
	Host       string   `short:"H" long:"host"          default:"127.0.0.1" description:"Host of the statsd aggregator"        `
	Port       int      `short:"P" long:"port"          default:"8125"      description:"Port of the statsd aggregator"        `
	Protocol   string   `          long:"protocol"      default:"udp"       description:"Protocol to use, 'udp' or 'tcp'"      `
	Prefix     string   `short:"p" long:"metric-prefix" default:"loadtest." description:"Metric name prefix"                   `
	Rate       uint     `short:"r" long:"rate"          default:"1000"      description:"Target metrics per second"            `
	Workers    uint     `short:"w" long:"workers"       default:"1"         description:"Number of parallel workers to use"    `
	SampleRate float64  `          long:"sample-rate"   default:"1"         description:"Sampling rate applied to every metric"`
	Tags       []string `          long:"tag"                               description:"Tag to attach to every metric, may be repeated"`
	Counts     struct {
		Counter   uint64 ` short:"c" long:"counter-count"                   description:"Number of counters to send"           `
		Gauge     uint64 ` short:"g" long:"gauge-count"                     description:"Number of gauges to send"             `
		Set       uint64 ` short:"s" long:"set-count"                       description:"Number of sets to send"               `
		Timer     uint64 ` short:"t" long:"timer-count"                     description:"Number of timers to send"             `
		Histogram uint64 `           long:"histogram-count"                 description:"Number of histograms to send"         `
	} `group:"Metric count"`
	NameCardinality uint `long:"name-cardinality" default:"10" description:"Number of distinct names per metric type"`
	ValueLimit      uint `long:"value-limit"      default:"100" description:"Upper bound on generated metric values"`
}

func parseArgs(args []string) *commandOptions {
	opts := &commandOptions{}
	parser := flags.NewParser(opts, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		os.Exit(1)
	}
	return opts
}
