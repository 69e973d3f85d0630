/*
 * BigFP - Calculator settings file parser.
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

package calcconfig

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rcornwell/bigfp/fp/defs"
)

/* Settings file format:
 *
 * '#' indicates comment, rest of line is ignored.
 * <line> := 'precision' <bits> |
 *           'rounding' <mode> |
 *           'radix' <bin|oct|dec|hex> |
 *           'logfile' <path>
 */

// Settings collected from a calculator configuration file.
type Settings struct {
	Precision int
	Round     defs.RoundingMode
	Radix     defs.Radix
	LogFile   string
}

// Defaults returns the settings used when no file is given.
func Defaults() *Settings {
	return &Settings{
		Precision: 128,
		Round:     defs.RoundToEven,
		Radix:     defs.Dec,
	}
}

// ParseRounding maps a mode name to its rounding mode.
func ParseRounding(name string) (defs.RoundingMode, error) {
	switch strings.ToLower(name) {
	case "none":
		return defs.RoundNone, nil
	case "up":
		return defs.RoundUp, nil
	case "down":
		return defs.RoundDown, nil
	case "tozero":
		return defs.RoundToZero, nil
	case "fromzero":
		return defs.RoundFromZero, nil
	case "toeven":
		return defs.RoundToEven, nil
	case "toodd":
		return defs.RoundToOdd, nil
	}
	return defs.RoundNone, fmt.Errorf("unknown rounding mode: %s", name)
}

// ParseRadix maps a radix name to its radix.
func ParseRadix(name string) (defs.Radix, error) {
	switch strings.ToLower(name) {
	case "bin", "2":
		return defs.Bin, nil
	case "oct", "8":
		return defs.Oct, nil
	case "dec", "10":
		return defs.Dec, nil
	case "hex", "16":
		return defs.Hex, nil
	}
	return defs.Dec, fmt.Errorf("unknown radix: %s", name)
}

// LoadConfigFile reads a settings file on top of the defaults.
func LoadConfigFile(name string) (*Settings, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	set := Defaults()
	lineNumber := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: expected option and value", lineNumber)
		}
		switch strings.ToLower(fields[0]) {
		case "precision":
			p, err := strconv.Atoi(fields[1])
			if err != nil || p <= 0 {
				return nil, fmt.Errorf("line %d: bad precision: %s", lineNumber, fields[1])
			}
			set.Precision = p
		case "rounding":
			if set.Round, err = ParseRounding(fields[1]); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNumber, err)
			}
		case "radix":
			if set.Radix, err = ParseRadix(fields[1]); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNumber, err)
			}
		case "logfile":
			set.LogFile = fields[1]
		default:
			return nil, fmt.Errorf("line %d: unknown option: %s", lineNumber, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return set, nil
}
