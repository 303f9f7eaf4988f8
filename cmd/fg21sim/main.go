package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ChenxiSSS/FG21SimPlus/internal/config"
	"github.com/ChenxiSSS/FG21SimPlus/internal/cosmo"
	"github.com/ChenxiSSS/FG21SimPlus/internal/export"
	"github.com/ChenxiSSS/FG21SimPlus/internal/halo"
	"github.com/ChenxiSSS/FG21SimPlus/internal/storage"
	"github.com/ChenxiSSS/FG21SimPlus/internal/tui"
)

var (
	dataDir    string
	configFile string
	preset     string
	verbose    bool
	// merger parameters
	mObs    float64
	zObs    float64
	mMain   float64
	mSub    float64
	zMerger float64
	// batch
	workers int
	// export
	outPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fg21sim",
		Short: "radio halo electron spectrum simulator",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fg21sim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "evolve one halo and store the spectrum",
		RunE:  runHalo,
	}
	addHaloFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	batchCmd := &cobra.Command{
		Use:   "batch [halos.yaml]",
		Short: "evolve a list of halos in parallel",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	batchCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	batchCmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (0 = NumCPU)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored spectrum in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	plotPNGCmd := &cobra.Command{
		Use:   "plot-png [run_id]",
		Short: "render a stored spectrum to a PNG file",
		Args:  cobra.ExactArgs(1),
		RunE:  plotPNG,
	}
	plotPNGCmd.Flags().StringVarP(&outPath, "out", "o", "spectrum.png", "output file")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a stored spectrum to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available configuration presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPOINTS\tGAMMA_MAX\tTIMESTEP")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%.0e\t%.3f\n",
					name, p.Halo.GammaNp, p.Halo.GammaMax, p.Halo.TimeStep)
			}
			return w.Flush()
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "evolve one halo with a live spectrum view",
		RunE:  runLive,
	}
	addHaloFlags(liveCmd)
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	rootCmd.AddCommand(runCmd, batchCmd, listCmd, plotCmd, plotPNGCmd,
		exportCSVCmd, exportJSONCmd, presetsCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addHaloFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&mObs, "m-obs", 1.2e15, "observed cluster mass [Msun]")
	cmd.Flags().Float64Var(&zObs, "z-obs", 0.1, "observation redshift")
	cmd.Flags().Float64Var(&mMain, "m-main", 8e14, "main cluster mass at merger [Msun]")
	cmd.Flags().Float64Var(&mSub, "m-sub", 3e14, "sub cluster mass at merger [Msun]")
	cmd.Flags().Float64Var(&zMerger, "z-merger", 0.3, "merger redshift")
}

func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	return cfg, nil
}

func buildHalo(cfg *config.Config) (*halo.RadioHalo, error) {
	params := halo.Params{
		MObs:    mObs,
		ZObs:    zObs,
		MMain:   mMain,
		MSub:    mSub,
		ZMerger: zMerger,
	}
	c := cosmo.New(cfg.Cosmology.H0, cfg.Cosmology.OmegaM)
	return halo.New(params, cfg.Halo, c)
}

func runHalo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	h, err := buildHalo(cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("evolving halo from z=%.3f to z=%.3f...\n", zMerger, zObs)
	start := time.Now()

	spectrum, err := h.ComputeSpectrum()
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(h, spectrum)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("halo radius: %.1f kpc\n", h.RadiusHalo())
	fmt.Printf("magnetic field: %.2f uG\n", h.MagneticField())
	fmt.Printf("crossing time: %.2f Gyr\n", h.TimeCrossing())
	fmt.Println()
	printSpectrumChart(spectrum)

	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	halos, err := config.LoadHaloList(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	if workers == 0 {
		workers = cfg.Workers
	}
	c := cosmo.New(cfg.Cosmology.H0, cfg.Cosmology.OmegaM)
	ens := halo.NewEnsemble(cfg.Halo, c, workers)

	fmt.Printf("evolving %d halos...\n", len(halos))
	start := time.Now()

	results, err := ens.Run(context.Background(), halos)
	if err != nil {
		return err
	}

	saved := 0
	for _, res := range results {
		if res.Err != nil {
			logrus.WithError(res.Err).WithField("m_obs", res.Params.MObs).Warn("halo failed")
			continue
		}
		if _, err := st.Save(res.Halo, res.Spectrum); err != nil {
			return err
		}
		saved++
	}

	fmt.Printf("completed in %v: %d of %d halos stored\n", time.Since(start), saved, len(results))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tM_OBS\tZ_OBS\tZ_MERGER\tR_HALO\tB")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.2e\t%.3f\t%.3f\t%.0f kpc\t%.2f uG\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Params.MObs,
			run.Params.ZObs,
			run.Params.ZMerger,
			run.RadiusHalo,
			run.MagneticField,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	_, spectrum, err := st.LoadSpectrum(runID)
	if err != nil {
		return err
	}
	if len(spectrum) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("m_obs: %.2e Msun, z: %.3f -> %.3f\n\n",
		meta.Params.MObs, meta.Params.ZMerger, meta.Params.ZObs)

	printSpectrumChart(spectrum)
	return nil
}

// printSpectrumChart draws log10 of the spectrum against grid index;
// the grid itself is logarithmic so the chart reads as log-log.
func printSpectrumChart(spectrum []float64) {
	data := make([]float64, 0, len(spectrum))
	for _, v := range spectrum {
		if v > 0 {
			data = append(data, math.Log10(v))
		}
	}
	if len(data) < 2 {
		fmt.Println("spectrum has no positive values to plot")
		return
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("log10 n(gamma) over the energy grid"),
	)
	fmt.Println(graph)
}

func plotPNG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	gamma, spectrum, err := st.LoadSpectrum(runID)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("M=%.2e Msun, z=%.3f", meta.Params.MObs, meta.Params.ZObs)
	if err := export.PlotSpectrum(outPath, title, gamma, spectrum); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outPath)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	gamma, spectrum, err := st.LoadSpectrum(runID)
	if err != nil {
		return err
	}
	if len(gamma) == 0 {
		return fmt.Errorf("no data to export")
	}

	if outPath != "" {
		return export.ExportCSV(outPath, gamma, spectrum)
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"gamma", "density"}); err != nil {
		return err
	}
	for i := range gamma {
		row := []string{
			strconv.FormatFloat(gamma[i], 'e', 8, 64),
			strconv.FormatFloat(spectrum[i], 'e', 8, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	gamma, spectrum, err := st.LoadSpectrum(runID)
	if err != nil {
		return err
	}

	if outPath != "" {
		return export.ExportJSON(outPath, meta, gamma, spectrum)
	}
	return export.ExportJSONStdout(meta, gamma, spectrum)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	h, err := buildHalo(cfg)
	if err != nil {
		return err
	}

	spectrum, err := tui.RunLive(h)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(h, spectrum)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	return nil
}
