package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"struct-update/internal/analyze"
	"struct-update/internal/diagnostic"
	"struct-update/internal/gen"
	"struct-update/internal/plan"
)

// ErrDiagnostics is returned when at least one annotated struct failed with
// diagnostics. The diagnostics themselves have already been printed.
var ErrDiagnostics = errors.New("annotated structs have errors")

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	codeColor    = color.New(color.FgYellow)
	posColor     = color.New(color.Bold)
)

// Runner drives a generation run: load, plan, render, write.
type Runner struct {
	cfg *Config
	log *zap.Logger

	// Dir is the directory patterns are resolved in. Empty means the
	// current directory.
	Dir string

	out    io.Writer
	errOut io.Writer
}

// NewRunner creates a runner. Generated code (dry run) and inspect output go
// to out, diagnostics to errOut.
func NewRunner(cfg *Config, log *zap.Logger, out, errOut io.Writer) *Runner {
	return &Runner{
		cfg:    cfg,
		log:    log,
		out:    out,
		errOut: errOut,
	}
}

// Plan loads the packages matched by patterns and resolves each of them.
// Diagnostics are printed; a fatal error aborts and is returned.
func (r *Runner) Plan(ctx context.Context, patterns ...string) ([]*plan.PackagePlan, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	a := analyze.NewAnalyzer(r.Dir, r.cfg.Tags...)

	r.log.Debug("loading packages", zap.Strings("patterns", patterns), zap.Strings("tags", r.cfg.Tags))

	pkgs, err := a.LoadPackages(ctx, patterns...)
	if err != nil {
		return nil, err
	}

	plans := make([]*plan.PackagePlan, 0, len(pkgs))
	for _, pkg := range pkgs {
		r.log.Debug("resolving package",
			zap.String("package", pkg.Path),
			zap.Int("annotated", len(pkg.Structs)))

		pp, err := plan.Resolve(pkg)
		if err != nil {
			return nil, fmt.Errorf("package %s: %w", pkg.Name, err)
		}

		for _, sp := range pp.Structs {
			r.log.Debug("planned struct",
				zap.String("type", sp.Decl.Name),
				zap.String("method", sp.MethodName),
				zap.Int("updates", len(sp.Updates)))
		}

		for _, name := range pp.Failed {
			r.log.Warn("skipping struct with errors", zap.String("package", pkg.Path), zap.String("type", name))
		}

		r.printDiagnostics(pp.Diagnostics)
		plans = append(plans, pp)
	}

	return plans, nil
}

// Generate runs a full generation over the packages matched by patterns.
//
// A fatal error writes nothing. Diagnostics write nothing either unless
// KeepGoing is set, in which case the remaining structs are written and
// ErrDiagnostics is still returned.
func (r *Runner) Generate(ctx context.Context, patterns ...string) error {
	plans, err := r.Plan(ctx, patterns...)
	if err != nil {
		return err
	}

	failed := false
	for _, pp := range plans {
		if !pp.OK() {
			failed = true
		}
	}

	if failed && !r.cfg.KeepGoing {
		return ErrDiagnostics
	}

	g := gen.NewGenerator(gen.GeneratorConfig{
		OutputName: r.cfg.Output,
		DebugDir:   r.cfg.Dir,
	})

	files, err := g.GenerateAll(plans)
	if err != nil {
		return err
	}

	if err := gen.CheckTargets(files, r.cfg.Dir); err != nil {
		return err
	}

	if r.cfg.DryRun {
		for _, f := range files {
			fmt.Fprintf(r.out, "// %s\n", f.Target(r.cfg.Dir))

			if _, err := r.out.Write(f.Content); err != nil {
				return fmt.Errorf("writing %s: %w", f.Filename, err)
			}
		}
	} else {
		if err := gen.WriteFiles(files, r.cfg.Dir); err != nil {
			return err
		}

		for _, f := range files {
			r.log.Info("wrote file", zap.String("path", f.Target(r.cfg.Dir)))
		}
	}

	if err := r.removeStale(g.Stale(plans, files, r.cfg.Dir)); err != nil {
		return err
	}

	if failed {
		return ErrDiagnostics
	}

	return nil
}

// Inspect prints the plans of the packages matched by patterns as YAML.
func (r *Runner) Inspect(ctx context.Context, patterns ...string) error {
	plans, err := r.Plan(ctx, patterns...)
	if err != nil {
		return err
	}

	data, err := plan.ExportYAML(plans)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	_, err = r.out.Write(data)

	return err
}

// removeStale deletes generated files left behind by packages that no
// longer produce one. In dry-run mode it only reports them.
func (r *Runner) removeStale(paths []string) error {
	for _, path := range paths {
		if r.cfg.DryRun {
			generated, err := gen.IsGenerated(path)
			if err != nil {
				return err
			}

			if generated {
				fmt.Fprintf(r.out, "// remove %s\n", path)
			}

			continue
		}

		removed, err := gen.RemoveStale(path)
		if err != nil {
			return err
		}

		if removed {
			r.log.Info("removed stale file", zap.String("path", path))
		}
	}

	return nil
}

func (r *Runner) printDiagnostics(diags diagnostic.Diagnostics) {
	for _, d := range diags.All() {
		sev := warningColor
		if d.Severity == diagnostic.DiagnosticError {
			sev = errorColor
		}

		fmt.Fprintf(r.errOut, "%s: %s %s %s: %s\n",
			posColor.Sprint(d.Pos),
			sev.Sprint(d.Severity),
			codeColor.Sprintf("[%s]", d.Code),
			d.TypeName,
			d.Message)
	}
}
