// Command deepluna is the CLI front end for the translation
// toolchain: extract, import, inject, export and lint subcommands over
// a translation database file (§A.3, §6).
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"seehuhn.de/go/deepluna/internal/logging"
	"seehuhn.de/go/deepluna/rewrite"
	"seehuhn.de/go/deepluna/tldb"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	log := logging.New()
	var err error

	switch os.Args[1] {
	case "extract":
		err = runExtract(log, os.Args[2:])
	case "import":
		err = runImport(log, os.Args[2:])
	case "inject":
		err = runInject(log, os.Args[2:])
	case "export":
		err = runExport(log, os.Args[2:])
	case "lint":
		err = runLint(log, os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <subcommand> [options] ...\n", filepath.Base(os.Args[0]))
	fmt.Fprintln(os.Stderr, "Subcommands: extract, import, inject, export, lint")
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

func loadDB(path string) (*tldb.DB, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	db, err := tldb.FromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("loading database %s: %w", path, err)
	}
	return db, nil
}

func writeDB(db *tldb.DB, path string) error {
	data, err := db.AsJSON()
	if err != nil {
		return fmt.Errorf("serializing database: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// runExtract bootstraps a fresh database from the raw allscr and
// script_text archives (§4.5 from_mrg) and writes it out as JSON.
func runExtract(log *logging.Logger, args []string) error {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: deepluna extract <allscr> <script_text> <out-db.json>")
		fs.PrintDefaults()
	}
	fs.Parse(args)
	if fs.NArg() != 3 {
		fs.Usage()
		os.Exit(1)
	}

	allscr, err := readFile(fs.Arg(0))
	if err != nil {
		return err
	}
	scriptText, err := readFile(fs.Arg(1))
	if err != nil {
		return err
	}

	db, warnings, err := tldb.FromMRG(allscr, scriptText)
	if err != nil {
		return fmt.Errorf("extracting: %w", err)
	}
	for _, w := range warnings {
		log.Warn("%v", w)
	}

	if err := writeDB(db, fs.Arg(2)); err != nil {
		return err
	}
	log.Info("extracted %d scenes, %.1f%% translated", len(db.SceneNames(false)), db.TranslatedPercent())
	return nil
}

// runImport applies a pre-parsed Diff (the readable-text grammar's
// parser is an external collaborator, §1) onto a database and writes
// the result back out. With -strict, any skipped conflict is a
// non-zero exit.
func runImport(log *logging.Logger, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	strict := fs.Bool("strict", false, "fail if any diff entry is a conflict")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: deepluna import [-strict] <db.json> <diff.json> <out-db.json>")
		fs.PrintDefaults()
	}
	fs.Parse(args)
	if fs.NArg() != 3 {
		fs.Usage()
		os.Exit(1)
	}

	db, err := loadDB(fs.Arg(0))
	if err != nil {
		return err
	}

	diffData, err := readFile(fs.Arg(1))
	if err != nil {
		return err
	}
	var diff tldb.Diff
	if err := json.Unmarshal(diffData, &diff); err != nil {
		return fmt.Errorf("parsing diff %s: %w", fs.Arg(1), err)
	}

	applied, skipped := db.ApplyDiff(diff)
	log.Info("import: %d applied, %d skipped", applied, skipped)

	if err := writeDB(db, fs.Arg(2)); err != nil {
		return err
	}
	if *strict && skipped > 0 {
		return fmt.Errorf("import: %d conflicting entries skipped in strict mode", skipped)
	}
	return nil
}

// runInject rewrites every scene's translations (§4.6) and packs the
// result into a new script_text container image.
func runInject(log *logging.Logger, args []string) error {
	fs := flag.NewFlagSet("inject", flag.ExitOnError)
	charswap := fs.Bool("charswap", true, "apply the character swap map")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: deepluna inject [-charswap] <db.json> <out-script_text>")
		fs.PrintDefaults()
	}
	fs.Parse(args)
	if fs.NArg() != 2 {
		fs.Usage()
		os.Exit(1)
	}

	db, err := loadDB(fs.Arg(0))
	if err != nil {
		return err
	}

	image, err := rewrite.Generate(db, *charswap)
	if err != nil {
		return fmt.Errorf("rewriting: %w", err)
	}
	if err := os.WriteFile(fs.Arg(1), image, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", fs.Arg(1), err)
	}
	log.Info("wrote %d bytes to %s", len(image), fs.Arg(1))
	return nil
}

// runExport writes one readable-text file per scene (§6) for a human
// translator or the external editor to work against.
func runExport(log *logging.Logger, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: deepluna export <db.json> <out-dir>")
		fs.PrintDefaults()
	}
	fs.Parse(args)
	if fs.NArg() != 2 {
		fs.Usage()
		os.Exit(1)
	}

	db, err := loadDB(fs.Arg(0))
	if err != nil {
		return err
	}

	outDir := fs.Arg(1)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", outDir, err)
	}

	scenes := db.SceneNames(false)
	for _, scene := range scenes {
		path := filepath.Join(outDir, scene+".txt")
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		err = tldb.WriteReadableText(f, db, scene)
		closeErr := f.Close()
		if err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		if closeErr != nil {
			return fmt.Errorf("closing %s: %w", path, closeErr)
		}
	}
	log.Info("exported %d scenes to %s", len(scenes), outDir)
	return nil
}

// runLint runs the observable-property checks (§8, SPEC_FULL.md §C)
// and reports every finding; a non-empty finding list is a non-zero
// exit.
func runLint(log *logging.Logger, args []string) error {
	fs := flag.NewFlagSet("lint", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: deepluna lint <db.json>")
		fs.PrintDefaults()
	}
	fs.Parse(args)
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(1)
	}

	db, err := loadDB(fs.Arg(0))
	if err != nil {
		return err
	}

	findings := tldb.Lint(db)
	for _, f := range findings {
		fmt.Printf("%s: scene=%q offset=%d: %s\n", f.Rule, f.Scene, f.Offset, f.Detail)
	}
	log.Info("lint: %d findings", len(findings))
	if len(findings) > 0 {
		return fmt.Errorf("lint: %d findings", len(findings))
	}
	return nil
}
