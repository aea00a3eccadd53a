// Command schema writes the JSON schema of the aidigest configuration file
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/aidigest/pkg/config"
)

type options struct {
	Output string `short:"o" long:"output" default:"config-schema.json" description:"schema file, - for stdout"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Output == "-" {
		if err := writeSchema(os.Stdout); err != nil {
			lgr.Fatalf("[ERROR] %v", err)
		}
		return
	}

	fh, err := os.Create(opts.Output) //nolint:gosec // path comes from CLI flag
	if err != nil {
		lgr.Fatalf("[ERROR] can't create %s: %v", opts.Output, err)
	}
	if err = writeSchema(fh); err != nil {
		_ = fh.Close()
		lgr.Fatalf("[ERROR] %v", err)
	}
	if err = fh.Close(); err != nil {
		lgr.Fatalf("[ERROR] can't close %s: %v", opts.Output, err)
	}
	fmt.Printf("config schema written to %s\n", opts.Output)
}

// writeSchema renders indented config schema followed by a newline
func writeSchema(w io.Writer) error {
	data, err := json.MarshalIndent(config.GenerateSchema(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	if _, err = w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write schema: %w", err)
	}
	return nil
}
