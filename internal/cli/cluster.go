// SPDX-License-Identifier: MIT

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/balclust/csr"
	"github.com/katalvlaran/balclust/internal/config"
	"github.com/katalvlaran/balclust/internal/graphio"
	"github.com/katalvlaran/balclust/lloyd"
	"github.com/katalvlaran/balclust/metrics"
)

// clusterFlags are the command-line overrides of config.Config.
type clusterFlags struct {
	configPath  string
	output      string
	metricsPath string
	check       bool
	cfg         config.Config
}

// clusterCommand creates the "cluster" command.
func (c *CLI) clusterCommand() *cobra.Command {
	f := clusterFlags{cfg: config.Default()}

	cmd := &cobra.Command{
		Use:   "cluster [file.mtx]",
		Short: "Partition a Matrix Market graph into balanced clusters",
		Example: `  balclust cluster --centers 1,7,8 p9.mtx
  balclust cluster --clusters 16 --seed 3 --abs laplacian.mtx
  balclust cluster --config run.toml --metrics run.prom`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.resolve(cmd, args)
			if err != nil {
				return err
			}

			return c.runCluster(cmd, cfg, f)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.configPath, "config", "c", "", "TOML run configuration")
	fl.StringVarP(&f.output, "output", "o", "", "write the assignment to a file instead of stdout")
	fl.StringVar(&f.metricsPath, "metrics", "", "write Prometheus metrics in text format to this file")
	fl.BoolVar(&f.check, "check", false, "validate the cluster forest after every step")
	fl.IntVarP(&f.cfg.Clusters, "clusters", "k", 0, "number of random centers")
	fl.IntSliceVar(&f.cfg.Centers, "centers", nil, "explicit center vertex ids (0-based)")
	fl.Int64Var(&f.cfg.Seed, "seed", 0, "seed for random centers")
	fl.IntVar(&f.cfg.MaxIterations, "max-iterations", f.cfg.MaxIterations, "maximum Relax + Recenter rounds")
	fl.IntVar(&f.cfg.RebalanceIterations, "rebalance-iterations", f.cfg.RebalanceIterations, "maximum rebalance passes (0 disables)")
	fl.IntVar(&f.cfg.ScratchSize, "scratch-size", 0, "largest cluster Recenter accepts (0 = 4·⌈n/k⌉)")
	fl.BoolVar(&f.cfg.Symmetrize, "symmetrize", false, "mirror every matrix entry")
	fl.BoolVar(&f.cfg.AbsWeights, "abs", false, "use absolute values of matrix entries")

	return cmd
}

// resolve merges the config file (if any) with explicitly set flags; flags win.
func (f *clusterFlags) resolve(cmd *cobra.Command, args []string) (config.Config, error) {
	cfg := f.cfg
	if f.configPath != "" {
		fileCfg, err := config.Decode(f.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = fileCfg

		fl := cmd.Flags()
		override := func(name string, apply func()) {
			if fl.Changed(name) {
				apply()
			}
		}
		override("clusters", func() { cfg.Clusters, cfg.Centers = f.cfg.Clusters, nil })
		override("centers", func() { cfg.Centers, cfg.Clusters = f.cfg.Centers, 0 })
		override("seed", func() { cfg.Seed = f.cfg.Seed })
		override("max-iterations", func() { cfg.MaxIterations = f.cfg.MaxIterations })
		override("rebalance-iterations", func() { cfg.RebalanceIterations = f.cfg.RebalanceIterations })
		override("scratch-size", func() { cfg.ScratchSize = f.cfg.ScratchSize })
		override("symmetrize", func() { cfg.Symmetrize = f.cfg.Symmetrize })
		override("abs", func() { cfg.AbsWeights = f.cfg.AbsWeights })
	}
	if len(args) == 1 {
		cfg.Input = args[0]
	}
	if cfg.Input == "" {
		return config.Config{}, errors.New("no input file: pass it as an argument or set input in the config")
	}

	return cfg, cfg.Validate()
}

// runCluster loads the graph, runs the clustering and writes the outputs.
func (c *CLI) runCluster(cmd *cobra.Command, cfg config.Config, f clusterFlags) error {
	ctx := cmd.Context()
	start := time.Now()

	// 1) Graph.
	var readOpts []graphio.ReadOption
	if cfg.Symmetrize {
		readOpts = append(readOpts, graphio.WithSymmetrize())
	}
	if cfg.AbsWeights {
		readOpts = append(readOpts, graphio.WithAbsWeights())
	}
	g, err := graphio.ReadFile(cfg.Input, readOpts...)
	if err != nil {
		return err
	}
	_, components := csr.ConnectedComponents(g)
	c.Logger.Debug("graph loaded", "file", cfg.Input, "vertices", g.Order(), "arcs", g.Size(), "components", components)

	// 2) Centers.
	centers := cfg.Centers
	if len(centers) == 0 {
		centers, err = lloyd.RandomCenters(g.Order(), cfg.Clusters, rand.New(rand.NewSource(cfg.Seed)))
		if err != nil {
			return err
		}
		c.Logger.Debug("random centers", "seed", cfg.Seed, "centers", centers)
	}
	if components > len(centers) {
		c.Logger.Warn("fewer centers than connected components; some vertices will stay unassigned",
			"components", components, "centers", len(centers))
	}
	if err = ctx.Err(); err != nil {
		return err
	}

	// 3) Clustering.
	reg := prometheus.NewRegistry()
	opts := append(cfg.Options(),
		lloyd.WithLogger(c.Logger),
		lloyd.WithObserver(metrics.NewCollector(reg)),
	)
	if f.check {
		opts = append(opts, lloyd.WithInvariantChecks())
	}
	res, err := lloyd.Cluster(g, centers, opts...)
	if err != nil {
		return err
	}

	// 4) Outputs.
	if err = c.writeAssignment(cmd, f.output, res); err != nil {
		return err
	}
	if f.metricsPath != "" {
		if err = prometheus.WriteToTextfile(f.metricsPath, reg); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	c.Logger.Infof("clustered %d vertices into %d clusters (%s)",
		g.Order(), len(res.Centers), time.Since(start).Round(time.Millisecond))

	return nil
}

// writeAssignment writes the result to path, or to the command's stdout.
func (c *CLI) writeAssignment(cmd *cobra.Command, path string, res *lloyd.Result) (err error) {
	var w io.Writer = cmd.OutOrStdout()
	if path != "" {
		file, ferr := os.Create(path)
		if ferr != nil {
			return fmt.Errorf("create output: %w", ferr)
		}
		defer func() {
			if cerr := file.Close(); err == nil {
				err = cerr
			}
		}()
		w = file
	}

	return WriteResult(w, res)
}

// WriteResult prints a header with the centers followed by one
// "vertex cluster" line per vertex; unassigned vertices get -1.
func WriteResult(w io.Writer, res *lloyd.Result) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# clusters=%d iterations=%d converged=%t unassigned=%d\n",
		len(res.Centers), res.Iterations, res.Converged, res.Unassigned)
	fmt.Fprint(bw, "# centers")
	for _, v := range res.Centers {
		fmt.Fprintf(bw, " %d", v)
	}
	fmt.Fprintln(bw)
	for v, m := range res.Membership {
		fmt.Fprintf(bw, "%d %d\n", v, m)
	}

	return bw.Flush()
}
