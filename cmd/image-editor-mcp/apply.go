package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/image-editor-mcp/internal/imaging"
	"github.com/ironsheep/image-editor-mcp/internal/ops"
	"github.com/ironsheep/image-editor-mcp/internal/raster"
)

type applyFlags struct {
	value         string
	ratio         string
	level         string
	order         string
	sigma         string
	kernel        string
	requireBinary bool
	with          string
	outDir        string
	format        string
}

// rawParams converts the string flags. Numbers keep their text so that
// imaging.ParseParams applies the same rules as the MCP tools, including
// comma decimal separators.
func (f *applyFlags) rawParams() (imaging.RawParams, error) {
	raw := imaging.RawParams{
		Value:         imaging.Number(f.value),
		Ratio:         imaging.Number(f.ratio),
		Level:         imaging.Number(f.level),
		Order:         imaging.Number(f.order),
		Sigma:         imaging.Number(f.sigma),
		RequireBinary: f.requireBinary,
	}
	if f.kernel != "" {
		if err := json.Unmarshal([]byte(f.kernel), &raw.Kernel); err != nil {
			return raw, raster.InvalidParameter("convolve", "kernel must be a JSON array of rows: %v", err)
		}
	}
	return raw, nil
}

func newApplyCommand(opts *globalOptions) *cobra.Command {
	f := &applyFlags{}

	cmd := &cobra.Command{
		Use:   "apply OPERATION FILE...",
		Short: "Apply one operation to each file",
		Long: `Apply runs OPERATION on every FILE and writes one result per file,
named <file>_<operation>.<format>. Files are processed concurrently.

Two-input operations (add, blend, difference, ...) combine each FILE with
the image given by --with.`,
		Example: `  image-editor-mcp apply threshold --level 100 scan.png
  image-editor-mcp apply gaussian --sigma 1,5 --out-dir blurred *.jpg
  image-editor-mcp apply convolve --kernel '[[0,-1,0],[-1,5,-1],[0,-1,0]]' photo.png
  image-editor-mcp apply difference --with reference.png frame1.png frame2.png`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			log, err := cfg.NewLogger()
			if err != nil {
				return err
			}

			op, err := ops.Lookup(args[0])
			if err != nil {
				return err
			}
			raw, err := f.rawParams()
			if err != nil {
				return err
			}
			p, err := imaging.ParseParams(op, raw)
			if err != nil {
				return err
			}
			if op.Name == "threshold" && !raw.Level.Set() {
				p.Level = cfg.Threshold
			}
			if op.Inputs == 2 && f.with == "" {
				return fmt.Errorf("operation %s needs a second image: --with", op.Name)
			}

			outDir := f.outDir
			if outDir == "" {
				outDir = cfg.OutputDir
			}
			ext := "." + strings.TrimPrefix(strings.ToLower(f.format), ".")

			files := lo.Uniq(args[1:])
			outputs, err := outputPaths(files, outDir, op.Name, ext)
			if err != nil {
				return err
			}
			cache := imaging.NewImageCache()

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(cfg.WorkerCount())
			for i, file := range files {
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					start := time.Now()

					inputs := []string{file}
					if op.Inputs == 2 {
						inputs = append(inputs, f.with)
					}
					grids := make([]*raster.Grid, 0, len(inputs))
					for _, path := range inputs {
						grid, err := cache.Load(path)
						if err != nil {
							return err
						}
						grids = append(grids, grid)
					}

					out, err := op.Apply(grids, p)
					if err != nil {
						return fmt.Errorf("%s: %w", file, err)
					}

					dest := outputs[i]
					if err := imaging.Save(out, dest); err != nil {
						return err
					}

					log.Info("apply", "wrote result", map[string]interface{}{
						"operation":   op.Name,
						"input":       file,
						"output":      dest,
						"duration_ms": time.Since(start).Milliseconds(),
					})
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			for _, dest := range outputs {
				fmt.Fprintln(cmd.OutOrStdout(), dest)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.value, "value", "", "scalar operand (add_value, subtract_value, multiply, divide)")
	flags.StringVar(&f.ratio, "ratio", "", "blend weight of the first image, 0..1 (default 0.5)")
	flags.StringVar(&f.level, "level", "", "threshold level, 0..255 (default from config)")
	flags.StringVar(&f.order, "order", "", "order filter rank, 0..8 (default 4)")
	flags.StringVar(&f.sigma, "sigma", "", "gaussian standard deviation (default 1)")
	flags.StringVar(&f.kernel, "kernel", "", "convolution kernel as JSON rows")
	flags.BoolVar(&f.requireBinary, "require-binary", false, "reject non-binary input to morphology")
	flags.StringVar(&f.with, "with", "", "second image for two-input operations")
	flags.StringVarP(&f.outDir, "out-dir", "o", "", "output directory (default: config output_dir, else next to each file)")
	flags.StringVar(&f.format, "format", "png", "output format: png, jpg, bmp, tif, gif or qoi")
	return cmd
}

// outputPaths names the result of each file. An empty outDir puts each result
// next to its input. Two inputs that would write the same result are an error.
func outputPaths(files []string, outDir, opName, ext string) ([]string, error) {
	outputs := make([]string, len(files))
	seen := make(map[string]string, len(files))
	for i, file := range files {
		dir := outDir
		if dir == "" {
			dir = filepath.Dir(file)
		}
		dest := imaging.OutputPath(dir, file, opName, ext)
		if prev, ok := seen[filepath.Clean(dest)]; ok {
			return nil, fmt.Errorf("%s and %s would both be written to %s", prev, file, dest)
		}
		seen[filepath.Clean(dest)] = file
		outputs[i] = dest
	}
	return outputs, nil
}

func newOpsCommand() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "ops",
		Short: "List available operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list := lo.Filter(ops.All(), func(op ops.Operation, _ int) bool {
				return category == "" || string(op.Category) == category
			})
			if len(list) == 0 {
				return fmt.Errorf("unknown category: %s", category)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCATEGORY\tINPUTS\tPARAMS\tDESCRIPTION")
			for _, op := range list {
				params := "-"
				if len(op.Params) > 0 {
					params = strings.Join(op.Params, ",")
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", op.Name, op.Category, op.Inputs, params, op.Description)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only list this category")
	return cmd
}
