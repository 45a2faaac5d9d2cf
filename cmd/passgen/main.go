// Command passgen generates or checks passwords from the terminal.
//
//	passgen -n 3 -length 20 -exclude-ambiguous
//	echo 'hunter2' | passgen -check -
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/5w1tchy/passkit/internal/generator"
	"github.com/5w1tchy/passkit/internal/strength"
	"github.com/5w1tchy/passkit/internal/textfmt"
	"golang.org/x/text/message"
)

// maxLength keeps -length within what a terminal user can mean.
const maxLength = 1024

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("passgen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	def := generator.DefaultConfig()
	var (
		cfg   generator.Config
		n     int
		check string
		lang  string
		quiet bool
	)
	fs.IntVar(&cfg.Length, "length", def.Length, "password length (min 4)")
	fs.BoolVar(&cfg.IncludeUpper, "upper", def.IncludeUpper, "include A-Z")
	fs.BoolVar(&cfg.IncludeLower, "lower", def.IncludeLower, "include a-z")
	fs.BoolVar(&cfg.IncludeDigits, "digits", def.IncludeDigits, "include 0-9")
	fs.BoolVar(&cfg.IncludeSymbols, "symbols", def.IncludeSymbols, "include punctuation")
	fs.BoolVar(&cfg.ExcludeAmbiguous, "exclude-ambiguous", false, "drop l 1 I 0 O")
	fs.IntVar(&n, "n", 1, "how many passwords")
	fs.StringVar(&check, "check", "", "evaluate this password instead (- reads lines from stdin)")
	fs.StringVar(&lang, "lang", os.Getenv("LANG"), "summary language (en, de, es)")
	fs.BoolVar(&quiet, "q", false, "print passwords only")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	p := textfmt.Printer(textfmt.Match(langTag(lang)))

	if check != "" {
		return runCheck(check, stdin, stdout, stderr, p)
	}

	if n < 1 {
		fmt.Fprintln(stderr, "passgen: -n must be >= 1")
		return 2
	}
	if cfg.Length > maxLength {
		fmt.Fprintf(stderr, "passgen: -length must be at most %d\n", maxLength)
		return 2
	}
	for range n {
		pwd, err := generator.Generate(cfg)
		if err != nil {
			var ce *generator.ConfigurationError
			if errors.As(err, &ce) {
				fmt.Fprintf(stderr, "passgen: %v\n", ce)
				return 2
			}
			fmt.Fprintf(stderr, "passgen: %v\n", err)
			return 1
		}
		if quiet {
			fmt.Fprintln(stdout, pwd)
			continue
		}
		fmt.Fprintf(stdout, "%s\t%s\n", pwd, textfmt.Summary(p, strength.Evaluate(pwd)))
	}
	return 0
}

func runCheck(check string, stdin io.Reader, stdout, stderr io.Writer, p *message.Printer) int {
	if check != "-" {
		fmt.Fprintln(stdout, textfmt.Summary(p, strength.Evaluate(check)))
		return 0
	}
	sc := bufio.NewScanner(stdin)
	for sc.Scan() {
		fmt.Fprintln(stdout, textfmt.Summary(p, strength.Evaluate(sc.Text())))
	}
	if err := sc.Err(); err != nil {
		fmt.Fprintf(stderr, "passgen: %v\n", err)
		return 1
	}
	return 0
}

// langTag turns a POSIX locale like de_DE.UTF-8 into a BCP 47 tag.
func langTag(s string) string {
	s, _, _ = strings.Cut(s, ".")
	s, _, _ = strings.Cut(s, "@")
	if s == "C" || s == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(s, "_", "-")
}
