package main

/*
	vcf-filter streams a VCF from a file or stdin, applies a filter
	expression, and writes the rows that pass back out as a valid VCF.
	Header lines pass through untouched and the pass/read tally lands
	on stderr, so stdout stays pipeable into downstream tools.
*/

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	filterService "varsift/api/services/filter"
	"varsift/api/services/presets"

	"github.com/klauspost/compress/gzip"
)

func main() {
	filterText := flag.String("filter", "", "filter expression to apply")
	presetName := flag.String("preset", "", "named preset to apply instead of -filter")
	presetsFile := flag.String("presets-file", "", "YAML catalogue of named presets")
	inputPath := flag.String("input", "", "VCF to read, gzipped if it ends in .gz (default stdin)")
	statsOnly := flag.Bool("stats", false, "suppress the filtered VCF and report the tally only")
	flag.Parse()

	if err := run(*filterText, *presetName, *presetsFile, *inputPath, *statsOnly); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(filterText string, presetName string, presetsFile string, inputPath string, statsOnly bool) error {
	switch {
	case filterText == "" && presetName == "":
		return errors.New("provide a -filter expression or a -preset name")
	case filterText != "" && presetName != "":
		return errors.New("provide either -filter or -preset, not both")
	}

	if presetName != "" {
		if presetsFile == "" {
			return errors.New("-preset requires a -presets-file catalogue")
		}
		preset, found := presets.NewPresetService(presetsFile).GetPresetByName(presetName)
		if !found {
			return fmt.Errorf("no preset named %q in %s", presetName, presetsFile)
		}
		filterText = preset.Filter
	}

	// reject a bad expression before any input is read
	expression, parseErr := filterService.ParseFilterExpression(filterText)
	if parseErr != nil {
		return parseErr
	}
	compiled := &filterService.CompiledFilter{Expression: expression, Source: filterText}

	input, closeInput, err := openInput(inputPath)
	if err != nil {
		return err
	}
	defer closeInput()

	out := bufio.NewWriter(os.Stdout)

	scanner := bufio.NewScanner(input)
	// annotation-heavy rows overflow the default split buffer
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var engine *filterService.FilterEngine
	var headerLines []string

	var (
		rowsRead   uint64
		rowsPassed uint64
	)

	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "#") {
			if !statsOnly {
				fmt.Fprintln(out, line)
			}
			if engine == nil {
				headerLines = append(headerLines, line)
				if strings.HasPrefix(line, "#CHROM") {
					engine = filterService.NewFilterEngine(strings.Join(headerLines, "\n"))
				}
			}
			continue
		}

		if engine == nil {
			return errors.New("No VCF header found before data rows")
		}

		rowsRead++

		// unlike the API's ingestion runs, the command line is strict: a
		// row that fails to decode or evaluate aborts the whole stream
		passed, matchErr := engine.MatchLine(compiled, line)
		if matchErr != nil {
			return matchErr
		}
		if passed {
			rowsPassed++
			if !statsOnly {
				fmt.Fprintln(out, line)
			}
		}
	}

	if scanErr := scanner.Err(); scanErr != nil {
		return scanErr
	}
	if flushErr := out.Flush(); flushErr != nil {
		return flushErr
	}

	fmt.Fprintf(os.Stderr, "vcf-filter: %d/%d variants passed filter\n", rowsPassed, rowsRead)

	return nil
}

func openInput(inputPath string) (io.Reader, func(), error) {
	if inputPath == "" {
		return os.Stdin, func() {}, nil
	}

	f, err := os.Open(inputPath)
	if err != nil {
		return nil, nil, err
	}

	if strings.HasSuffix(inputPath, ".gz") {
		gr, gzErr := gzip.NewReader(f)
		if gzErr != nil {
			f.Close()
			return nil, nil, gzErr
		}
		return gr, func() { gr.Close(); f.Close() }, nil
	}

	return f, func() { f.Close() }, nil
}
