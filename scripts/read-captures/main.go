package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/wcharczuk/localsqs/internal/spy"
)

var (
	flagAction = pflag.String("action", "", "Only print captures of this action, e.g. ReceiveMessage")
	flagLimit  = pflag.Int("limit", 0, "The number to print in total (0 prints every capture)")
)

// summary is the part of a capture worth reading when comparing wire formats.
type summary struct {
	Action       string
	Path         string
	StatusCode   int
	Form         map[string]string
	ResponseBody string
}

func main() {
	pflag.Parse()

	var input io.Reader = os.Stdin
	switch len(pflag.Args()) {
	case 0:
	case 1:
		f, err := os.Open(pflag.Args()[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "read-captures; unable to open source file: %+v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		input = f
	default:
		fmt.Fprintln(os.Stderr, "read-captures; provide at most one filename, or pipe sqsspy output to stdin")
		os.Exit(1)
	}

	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	jsonEncoder := json.NewEncoder(os.Stdout)
	jsonEncoder.SetIndent("", "  ")
	jsonEncoder.SetEscapeHTML(false)

	var count int
	for scanner.Scan() {
		var req spy.Request
		if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
			fmt.Fprintf(os.Stderr, "read-captures; unable to deserialize capture: %+v\n", err)
			os.Exit(1)
		}
		if *flagAction != "" && req.Action != *flagAction {
			continue
		}
		if err := jsonEncoder.Encode(summary{
			Action:       req.Action,
			Path:         req.Path,
			StatusCode:   req.StatusCode,
			Form:         req.Form,
			ResponseBody: req.ResponseBody,
		}); err != nil {
			fmt.Fprintf(os.Stderr, "read-captures; unable to serialize capture: %+v\n", err)
			os.Exit(1)
		}
		count++
		if *flagLimit > 0 && count >= *flagLimit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "read-captures; unable to read captures: %+v\n", err)
		os.Exit(1)
	}
}
