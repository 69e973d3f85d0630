/*
 * BigFP - Calculator command parser.
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

package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/rcornwell/bigfp/config/calcconfig"
	"github.com/rcornwell/bigfp/fp/defs"
	"github.com/rcornwell/bigfp/fp/number"
	"github.com/rcornwell/bigfp/util/digits"
)

// State carries the calculator settings between commands.
type State struct {
	Precision int
	Round     defs.RoundingMode
	Radix     defs.Radix
}

// NewState builds command state from loaded settings.
func NewState(set *calcconfig.Settings) *State {
	return &State{Precision: set.Precision, Round: set.Round, Radix: set.Radix}
}

type cmd struct {
	name    string // Command name.
	min     int    // Minimum match size.
	process func(*cmdLine, *State) (bool, error)
}

type cmdLine struct {
	line string // Current command.
	pos  int    // Position in line.
}

var cmdList = []cmd{
	{name: "add", min: 1, process: add},
	{name: "sub", min: 2, process: sub},
	{name: "mul", min: 1, process: mul},
	{name: "div", min: 1, process: div},
	{name: "conv", min: 1, process: conv},
	{name: "set", min: 3, process: set},
	{name: "show", min: 4, process: show},
	{name: "quit", min: 1, process: quit},
}

// ProcessCommand executes the command line given.
func ProcessCommand(commandLine string, st *State) (bool, error) {
	line := cmdLine{line: commandLine}
	command := line.getWord()
	if command == "" {
		return false, nil
	}

	match := matchList(command)
	if len(match) == 0 {
		return false, errors.New("command not found: " + command)
	}
	if len(match) > 1 {
		return false, errors.New("unique command not found: " + command)
	}
	return match[0].process(&line, st)
}

// CompleteCmd is called to complete a command name during line
// editing.
func CompleteCmd(commandLine string) []string {
	line := cmdLine{line: commandLine}
	name := line.getWord()

	var matches []string
	for _, m := range cmdList {
		if strings.HasPrefix(m.name, name) {
			matches = append(matches, m.name)
		}
	}
	return matches
}

// Check if command matches at least to minimum length.
func matchCommand(match cmd, command string) bool {
	if len(command) > len(match.name) {
		return false
	}
	for l := range len(command) {
		if match.name[l] != command[l] {
			return false
		}
	}
	return len(command) >= match.min
}

// Check if command matches one of the commands.
func matchList(command string) []cmd {
	var match []cmd
	for _, m := range cmdList {
		if matchCommand(m, command) {
			match = append(match, m)
		}
	}
	return match
}

// Skip forward over line until none whitespace character found.
func (line *cmdLine) skipSpace() {
	for line.pos < len(line.line) && unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
}

// Check if at end of line.
func (line *cmdLine) isEOL() bool {
	return line.pos >= len(line.line) || line.line[line.pos] == '#'
}

// Collect the next word of the line.
func (line *cmdLine) getWord() string {
	line.skipSpace()
	start := line.pos
	for !line.isEOL() && !unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
	return line.line[start:line.pos]
}

// Parse a number in the current input radix. The form is an optional
// sign, digits with an optional point, and an optional exponent part
// in decimal. Hexadecimal input uses 'p' to mark the exponent since
// 'e' is a digit there.
func parseNumber(s string, st *State) (*number.Number, error) {
	if s == "" {
		return nil, errors.New("missing number")
	}
	sign := defs.Pos
	i := 0
	if s[0] == '+' || s[0] == '-' {
		if s[0] == '-' {
			sign = defs.Neg
		}
		i++
	}

	expMark := byte('e')
	if st.Radix == defs.Hex {
		expMark = 'p'
	}

	var ds []uint8
	intLen := 0
	seenPoint := false
	exp := 0
	for ; i < len(s); i++ {
		by := s[i]
		if by == '.' {
			if seenPoint {
				return nil, errors.New("bad number: " + s)
			}
			seenPoint = true
			continue
		}
		if by == expMark || by == expMark-'a'+'A' {
			v, err := strconv.Atoi(s[i+1:])
			if err != nil {
				return nil, errors.New("bad exponent: " + s)
			}
			exp = v
			i = len(s)
			break
		}
		d, ok := digits.ParseDigit(by, int(st.Radix))
		if !ok {
			return nil, errors.New("bad digit in: " + s)
		}
		ds = append(ds, d)
		if !seenPoint {
			intLen++
		}
	}
	if len(ds) == 0 {
		return nil, errors.New("bad number: " + s)
	}

	e := int64(intLen) + int64(exp)
	if e < int64(defs.ExponentMin) || e > int64(defs.ExponentMax) {
		return nil, errors.New("exponent out of range: " + s)
	}
	return number.ConvertFromRadix(sign, ds, defs.Exponent(e), st.Radix, st.Precision, st.Round)
}

// FormatNumber renders a value as fraction digits and a radix
// exponent in the given radix.
func FormatNumber(n *number.Number, rdx defs.Radix, rm defs.RoundingMode) (string, error) {
	sign, ds, e, err := n.ConvertToRadix(rdx, rm)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if sign == defs.Neg {
		b.WriteByte('-')
	}
	b.WriteString("0.")
	digits.FormatDigits(&b, ds)
	if rdx == defs.Hex {
		b.WriteByte('p')
	} else {
		b.WriteByte('e')
	}
	fmt.Fprintf(&b, "%+d", e)
	return b.String(), nil
}

// Parse two operands and print the result of op.
func binaryOp(line *cmdLine, st *State,
	op func(*number.Number, *number.Number, int, defs.RoundingMode) (*number.Number, error),
) (bool, error) {
	a, err := parseNumber(line.getWord(), st)
	if err != nil {
		return false, err
	}
	b, err := parseNumber(line.getWord(), st)
	if err != nil {
		return false, err
	}
	r, err := op(a, b, st.Precision, st.Round)
	if err != nil {
		return false, err
	}
	out, err := FormatNumber(r, st.Radix, st.Round)
	if err != nil {
		return false, err
	}
	fmt.Println(out)
	return false, nil
}

func add(line *cmdLine, st *State) (bool, error) {
	return binaryOp(line, st, (*number.Number).Add)
}

func sub(line *cmdLine, st *State) (bool, error) {
	return binaryOp(line, st, (*number.Number).Sub)
}

func mul(line *cmdLine, st *State) (bool, error) {
	return binaryOp(line, st, (*number.Number).Mul)
}

func div(line *cmdLine, st *State) (bool, error) {
	return binaryOp(line, st, (*number.Number).Div)
}

// Re-emit a value in another radix.
func conv(line *cmdLine, st *State) (bool, error) {
	n, err := parseNumber(line.getWord(), st)
	if err != nil {
		return false, err
	}
	rdx, err := calcconfig.ParseRadix(line.getWord())
	if err != nil {
		return false, err
	}
	out, err := FormatNumber(n, rdx, st.Round)
	if err != nil {
		return false, err
	}
	fmt.Println(out)
	return false, nil
}

func set(line *cmdLine, st *State) (bool, error) {
	option := line.getWord()
	value := line.getWord()
	switch option {
	case "precision":
		p, err := strconv.Atoi(value)
		if err != nil || p <= 0 {
			return false, errors.New("bad precision: " + value)
		}
		st.Precision = p
	case "rounding":
		rm, err := calcconfig.ParseRounding(value)
		if err != nil {
			return false, err
		}
		st.Round = rm
	case "radix":
		rdx, err := calcconfig.ParseRadix(value)
		if err != nil {
			return false, err
		}
		st.Radix = rdx
	default:
		return false, errors.New("unknown setting: " + option)
	}
	return false, nil
}

func show(_ *cmdLine, st *State) (bool, error) {
	fmt.Printf("precision %d\nrounding %s\nradix %s\n", st.Precision, st.Round, st.Radix)
	return false, nil
}

func quit(_ *cmdLine, _ *State) (bool, error) {
	return true, nil
}
