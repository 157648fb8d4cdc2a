package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"pathway/api"
	"pathway/config"
	"pathway/editor"
	"pathway/export"
	"pathway/graph"
	"pathway/importer"
	"pathway/logging"
	"pathway/terminal"
	"pathway/validation"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// errInvalid is returned after validation findings have been printed.
var errInvalid = errors.New("pathway has validation errors")

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("pathway", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		configFile  = fs.String("config", "", "Config file (.yaml, .yml or .toml)")
		envFile     = fs.String("env", ".env", "Environment file loaded before PATHWAY_* variables")
		interactive = fs.Bool("i", false, "Edit the pathway in the terminal")
		serve       = fs.String("serve", "", "Serve the editor over HTTP on this address (\"config\" uses the configured one)")
		format      = fs.String("format", "json", "Export format: json, yaml, mermaid, dot")
		outputFile  = fs.String("o", "", "Output file (default: stdout); also the save target when editing")
		validate    = fs.Bool("validate", false, "Report validation findings and exit")
		strict      = fs.Bool("strict", false, "Treat validation warnings as errors")
		tidy        = fs.Bool("tidy", false, "Arrange nodes with the configured layout before exporting or editing")
		name        = fs.String("name", "", "Pathway name (overrides the file and config)")
	)

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: pathway [options] [pathway.json]\n\n")
		fmt.Fprintf(stderr, "Edit, validate and convert conversation pathways.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  pathway -i support.json                 # Edit in the terminal\n")
		fmt.Fprintf(stderr, "  pathway -format mermaid support.json    # Export to Mermaid\n")
		fmt.Fprintf(stderr, "  pathway -tidy -o tidy.yaml flow.mmd     # Import, arrange, save as YAML\n")
		fmt.Fprintf(stderr, "  pathway -validate -strict support.json\n")
		fmt.Fprintf(stderr, "  pathway -serve :8080 support.json       # Serve to a browser canvas\n")
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configFile, *envFile)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer logger.Sync()

	var filename string
	if fs.NArg() > 0 {
		filename = fs.Arg(0)
	}

	if *validate {
		return runValidate(filename, cfg.Name, *name, *strict, stdout)
	}

	p, err := loadPathway(filename, cfg.Name)
	if err != nil {
		return err
	}
	if *name != "" {
		p.Name = *name
	}
	logger.Debug("pathway loaded",
		zap.String("file", filename),
		zap.String("name", p.Name),
		zap.Int("nodes", p.Document.NodeCount()),
		zap.Int("edges", p.Document.EdgeCount()),
	)

	savePath := *outputFile
	if savePath == "" {
		savePath = filename
	}

	vp := terminal.NewViewport()
	opts := []editor.Option{
		editor.WithLayout(cfg.Engine()),
		editor.WithPlacement(cfg.NewPlacement()),
		editor.WithLogger(logger),
		editor.WithViewport(vp),
	}
	if savePath != "" {
		opts = append(opts, editor.WithSaver(export.NewFileSaver(savePath)))
	}
	ed := editor.NewEditor(p.Name, p.Document, cfg.History.Capacity, opts...)
	ed.Session().SetActive(p.Active)

	if *tidy {
		if err := ed.Dispatch(editor.TidyUp{}); err != nil {
			return err
		}
	}

	switch {
	case *serve != "":
		addr := *serve
		if addr == "config" {
			addr = cfg.Server.Address
		}
		server := api.NewServer(ed, logger, api.Options{
			EnableCORS:     cfg.Server.EnableCORS,
			AllowedOrigins: cfg.Server.AllowedOrigins,
		})
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return server.ListenAndServe(ctx, addr)

	case *interactive:
		return runInteractive(ed, vp, logger)
	}

	f, err := export.ParseFormat(*format)
	if err != nil {
		return err
	}
	exporter, err := export.NewExporter(f)
	if err != nil {
		return err
	}
	out, err := exporter.Export(export.Pathway{
		Name:     ed.Session().Name(),
		Active:   ed.Session().IsActive(),
		Document: ed.CurrentDocument(),
	})
	if err != nil {
		return err
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, []byte(out), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		fmt.Fprintf(stderr, "Exported %s to %s\n", exporter.GetFormatName(), *outputFile)
		return nil
	}
	fmt.Fprint(stdout, out)
	return nil
}

// loadPathway imports filename, or returns the starter template when no file
// is given.
func loadPathway(filename, defaultName string) (export.Pathway, error) {
	if filename == "" {
		return export.Pathway{Name: defaultName, Document: graph.Starter()}, nil
	}
	p, err := importer.NewImporterRegistry().ImportFile(filename)
	if err != nil {
		return export.Pathway{}, fmt.Errorf("failed to load %s: %w", filename, err)
	}
	if p.Name == "" {
		p.Name = defaultName
	}
	return p, nil
}

// runValidate lints the file as written, so integrity problems that would
// stop it loading are reported as findings.
func runValidate(filename, defaultName, name string, strict bool, stdout io.Writer) error {
	var (
		f   export.File
		err error
	)
	if filename == "" {
		f, err = export.NewFile(export.Pathway{Name: defaultName, Document: graph.Starter()})
	} else {
		f, err = importer.NewImporterRegistry().DecodeFile(filename)
	}
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", filename, err)
	}
	switch {
	case name != "":
		f.Name = name
	case f.Name == "":
		f.Name = defaultName
	}

	v := validation.NewDocumentValidator()
	v.SetStrictMode(strict)
	findings := v.Validate(f.Record)
	for _, finding := range findings {
		fmt.Fprintln(stdout, finding.String())
	}
	if validation.HasErrors(findings) {
		return errInvalid
	}
	fmt.Fprintf(stdout, "%s: %d nodes, %d edges, %d findings\n", f.Name, len(f.Nodes), len(f.Edges), len(findings))
	return nil
}

func runInteractive(ed *editor.Dispatcher, vp *terminal.Viewport, logger *zap.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	return terminal.Run(screen, ed, terminal.Options{
		Viewport:  vp,
		AltIsMeta: true,
		Logger:    logger,
	})
}
