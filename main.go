/*
 * BigFP - Main process.
 *
 * Copyright 2025, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package main

import (
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"
	parser "github.com/rcornwell/bigfp/command/parser"
	reader "github.com/rcornwell/bigfp/command/reader"
	config "github.com/rcornwell/bigfp/config/calcconfig"
	logger "github.com/rcornwell/bigfp/util/logger"
)

func main() {
	optConfig := getopt.StringLong("config", 'c', "", "Settings file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optPrecision := getopt.IntLong("precision", 'p', 0, "Working precision in bits")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	set := config.Defaults()
	if *optConfig != "" {
		var err error
		set, err = config.LoadConfigFile(*optConfig)
		if err != nil {
			slog.Error(err.Error())
			os.Exit(1)
		}
	}
	if *optLogFile != "" {
		set.LogFile = *optLogFile
	}
	if *optPrecision > 0 {
		set.Precision = *optPrecision
	}

	var file *os.File
	if set.LogFile != "" {
		file, _ = os.Create(set.LogFile)
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	log := slog.New(logger.NewHandler(file, &slog.HandlerOptions{Level: programLevel}))
	slog.SetDefault(log)

	log.Info("BigFP started")
	reader.ConsoleReader(parser.NewState(set))
	log.Info("BigFP done")
}
