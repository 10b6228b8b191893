package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"gomgca/adapters/chemistry"
	"gomgca/adapters/excel"
	"gomgca/adapters/modelparams"
	"gomgca/adapters/postgres"
	"gomgca/adapters/postgres/migrations"
	"gomgca/adapters/rng"
	"gomgca/app"
	"gomgca/domain/calibration"
	"gomgca/domain/mgca"
	"gomgca/internal"
	"gomgca/internal/config"
	"gomgca/ports"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "gomgca",
		Short: "Mg/Ca prediction from sea temperature and carbonate chemistry",
	}

	rootCmd.AddCommand(
		newSpeciesCmd(),
		newPredictCmd(),
		newRunCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newSpeciesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "species",
		Short: "List the canonical calibration species",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, sp := range calibration.CanonicalSpecies() {
				fmt.Println(sp)
			}
			return nil
		},
	}
}

func newPredictCmd() *cobra.Command {
	var (
		seatemp, cleaning   []float64
		salinity, ph, omega []float64
		species             string
		age                 float64
		seed                int64
	)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict an Mg/Ca ensemble for the given covariates",
		Long: `Predict an Mg/Ca ensemble from sea temperature, cleaning protocol,
salinity, pH and bottom-water saturation state. Scalar covariates broadcast
over the temperature series. Pass --age to apply the seawater Mg/Ca
correction for deep-time samples.

Example: gomgca predict --seatemp 24,26 --cleaning 0 --salinity 35.2 --ph 8.1 --omega 3.8 --species ruber --age 2.5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var agePtr *float64
			if cmd.Flags().Changed("age") {
				agePtr = &age
			}
			return runPredict(cmd.Context(), app.PredictRequest{
				SeaTemp:  seatemp,
				Cleaning: cleaning,
				Salinity: salinity,
				PH:       ph,
				Omega:    omega,
				Species:  species,
				Age:      agePtr,
				Seed:     seed,
			})
		},
	}

	cmd.Flags().Float64SliceVar(&seatemp, "seatemp", nil, "Sea temperatures in degrees C")
	cmd.Flags().Float64SliceVar(&cleaning, "cleaning", []float64{0}, "Cleaning protocol flags (1 reductive, 0 oxidative)")
	cmd.Flags().Float64SliceVar(&salinity, "salinity", nil, "Salinity in psu")
	cmd.Flags().Float64SliceVar(&ph, "ph", nil, "Sea surface pH")
	cmd.Flags().Float64SliceVar(&omega, "omega", nil, "Bottom-water calcite saturation state")
	cmd.Flags().StringVar(&species, "species", "all", "Calibration species (canonical id or legacy name)")
	cmd.Flags().Float64Var(&age, "age", 0, "Sample age in Ma; enables the seawater correction")
	cmd.Flags().Int64Var(&seed, "seed", 1, "Random seed for residual sampling")
	cobra.CheckErr(cmd.MarkFlagRequired("seatemp"))
	cobra.CheckErr(cmd.MarkFlagRequired("salinity"))
	cobra.CheckErr(cmd.MarkFlagRequired("ph"))
	cobra.CheckErr(cmd.MarkFlagRequired("omega"))

	return cmd
}

func newRunCmd() *cobra.Command {
	var (
		species    string
		seed       int64
		reportPath string
	)

	cmd := &cobra.Command{
		Use:   "run [sites-file]",
		Short: "Predict a batch of sites from a CSV or XLSX table",
		Long: `Predict Mg/Ca for every site in a table. Sites missing pH or omega are
filled from the modern ocean chemistry lookup; sites too far from gridded
chemistry are skipped and reported. Each site is corrected for its age.

Example: gomgca run sites.csv --species ruber --seed 42 --report report.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd.Context(), args[0], species, seed, reportPath)
		},
	}

	cmd.Flags().StringVar(&species, "species", "all", "Calibration species (canonical id or legacy name)")
	cmd.Flags().Int64Var(&seed, "seed", 1, "Base random seed; per-site streams derive from it")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write an HTML run report to this path")

	return cmd
}

func newService() (*app.PredictionService, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	store, err := buildDrawStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	svc := app.NewPredictionService(
		store,
		chemistry.NewLookup(),
		rng.NewStreamAdapter(),
		internal.NewDefaultLogger(),
		cfg.Chemistry.DistanceThresholdKm,
	)
	return svc, cfg, nil
}

func buildDrawStore(cfg *config.Config) (ports.DrawStorePort, error) {
	if cfg.Store.Backend == "embedded" {
		return modelparams.NewStore(), nil
	}
	db, err := sqlx.Connect("postgres", cfg.Store.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := migrations.Run(db); err != nil {
		return nil, err
	}
	return postgres.NewDrawStore(db), nil
}

func runPredict(ctx context.Context, req app.PredictRequest) error {
	svc, _, err := newService()
	if err != nil {
		return err
	}

	res, err := svc.Predict(ctx, req)
	if err != nil {
		return err
	}

	fmt.Printf("Species: %s\n", res.Prediction.Species())
	fmt.Printf("Draws:   %d\n", res.Prediction.DrawCount())
	fmt.Println()

	fmt.Printf("%-6s", "T")
	for _, q := range mgca.DefaultPercentiles {
		fmt.Printf("  %8s", fmt.Sprintf("P%g", q))
	}
	fmt.Println()
	for i, row := range res.Percentiles {
		fmt.Printf("%-6.2f", req.SeaTemp[i])
		for _, v := range row {
			fmt.Printf("  %8.3f", v)
		}
		fmt.Println()
	}
	return nil
}

func runBatch(ctx context.Context, sitesFile, species string, seed int64, reportPath string) error {
	svc, cfg, err := newService()
	if err != nil {
		return err
	}

	sites, err := excel.NewSiteReader().ReadSites(ctx, sitesFile)
	if err != nil {
		return fmt.Errorf("failed to read sites: %w", err)
	}
	fmt.Printf("Predicting %d sites with species %q...\n", len(sites), species)

	res, err := svc.Run(ctx, sites, species, seed, cfg.Run.Concurrency)
	if err != nil {
		return err
	}

	md, err := app.RenderReport(res)
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	fmt.Println()
	fmt.Println(md)

	if reportPath != "" {
		htmlOut, err := app.RenderReportHTML(res)
		if err != nil {
			return fmt.Errorf("failed to render HTML report: %w", err)
		}
		if err := os.WriteFile(reportPath, htmlOut, 0644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Printf("Report written to %s\n", reportPath)
	}
	return nil
}
