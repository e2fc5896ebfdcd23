// Command insetxml computes guidance-swath insets for the fields in an
// ISO 11783-10 TASKDATA document (§6/§9): InsetXml [options], with the
// required -d/--inset and -o/--output flags, reading a TASKDATA.XML (or a zip carrying one at
// TASKDATA/TASKDATA.XML) and writing either another TASKDATA.XML or a
// tab-separated WKT dump.
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/isoagro/fieldinset/geos"
	"github.com/isoagro/fieldinset/internal/archive"
	"github.com/isoagro/fieldinset/internal/farmdb"
	"github.com/isoagro/fieldinset/internal/ferrors"
	"github.com/isoagro/fieldinset/internal/geo"
	"github.com/isoagro/fieldinset/internal/isoxml"
	"github.com/isoagro/fieldinset/internal/wkt"
)

type options struct {
	input   string
	insetFt float64
	name    string
	output  string
	verbose bool
}

func main() {
	opts := &options{}
	cmd := newRootCmd(opts)

	err := cmd.Execute()
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(exitCode(err))
}

// exitCode implements Supplement C's mapping. A cobra-level failure
// (missing required flag, unknown flag, unparseable flag value) never
// reaches run(), so it never gets wrapped as a *ferrors.Error; every
// error run() returns is already ferrors-kinded. An unrecognized error
// is therefore a cobra argument error, which §6/§7 map to exit 2 same
// as InvalidInput.
func exitCode(err error) int {
	kind, ok := ferrors.KindOf(err)
	if !ok || kind == ferrors.InvalidInput {
		return 2
	}
	return 1
}

func newRootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insetxml",
		Short: "Compute guidance-swath insets for TASKDATA field boundaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.input, "input", "i", "TASKDATA.XML", "input TASKDATA document or zip archive")
	flags.Float64VarP(&opts.insetFt, "inset", "d", 0, "inset distance in feet, must be > 0.5 ft (required)")
	flags.StringVarP(&opts.name, "name", "n", "Inset", "base name for generated swaths")
	flags.StringVarP(&opts.output, "output", "o", "", "output path (required)")
	flags.BoolVar(&opts.verbose, "verbose", false, "enable development-mode (human-readable, debug-level) logging")
	cmd.MarkFlagRequired("inset")
	cmd.MarkFlagRequired("output")

	return cmd
}

func run(opts *options) (err error) {
	log, err := newLogger(opts.verbose)
	if err != nil {
		return ferrors.Wrap(ferrors.InvalidInput, err, "insetxml: constructing logger")
	}
	defer log.Sync()

	defer func() {
		if r := recover(); r != nil {
			log.DPanic("unrecovered internal invariant violation", zap.Any("panic", r))
			err = ferrors.Errorf(ferrors.Bug, "insetxml: internal invariant violated: %v", r)
		}
	}()

	if opts.insetFt <= 0.5 {
		return ferrors.Errorf(ferrors.InvalidInput, "insetxml: --inset must be > 0.5 ft, got %v", opts.insetFt)
	}
	if err := validateExtension(opts.input, []string{".xml", ".zip"}); err != nil {
		return err
	}
	if err := validateExtension(opts.output, []string{".xml", ".wkt", ".zip"}); err != nil {
		return err
	}

	data, err := readInput(opts.input)
	if err != nil {
		return err
	}

	rd := isoxml.NewReader(log)
	td, err := rd.Read(bytes.NewReader(data))
	if err != nil {
		return err
	}

	db, err := isoxml.ToFarmDb(td)
	if err != nil {
		return err
	}

	svc, err := geos.NewService()
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := db.Inset(svc, opts.name, geo.NewFeet(opts.insetFt)); err != nil {
		return err
	}

	return writeOutput(opts.output, db)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func validateExtension(path string, allowed []string) error {
	ext := strings.ToLower(filepath.Ext(path))
	for _, a := range allowed {
		if ext == a {
			return nil
		}
	}
	return ferrors.Errorf(ferrors.InvalidInput, "insetxml: %s has extension %q, expected one of %v", path, filepath.Ext(path), allowed)
}

func readInput(path string) ([]byte, error) {
	if strings.ToLower(filepath.Ext(path)) == ".zip" {
		return archive.ExtractEntry(path, archive.TaskDataEntryPath)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ferrors.Wrapf(ferrors.IoError, err, "insetxml: reading %s", path)
	}
	return data, nil
}

func writeOutput(path string, db *farmdb.FarmDb) error {
	ext := strings.ToLower(filepath.Ext(path))

	var buf bytes.Buffer
	switch ext {
	case ".wkt":
		if err := wkt.NewWriter().Write(&buf, db); err != nil {
			return err
		}
	case ".xml", ".zip":
		td := isoxml.FromFarmDb(db)
		if err := isoxml.NewWriter().Write(&buf, td); err != nil {
			return err
		}
	default:
		return ferrors.Errorf(ferrors.InvalidInput, "insetxml: %s has unsupported output extension", path)
	}

	if ext == ".zip" {
		return archive.WriteEntry(path, archive.TaskDataEntryPath, buf.Bytes())
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return ferrors.Wrapf(ferrors.IoError, err, "insetxml: writing %s", path)
	}
	return nil
}
