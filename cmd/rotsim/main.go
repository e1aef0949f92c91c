package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/sbremner/RsOptimizer/internal/loader"
	"github.com/sbremner/RsOptimizer/internal/models"
	"github.com/sbremner/RsOptimizer/internal/sim"
)

var (
	dataDir    string
	configFile string
	style      string
	seconds    float64
	adrenaline float64
	usePRNG    bool
	seed       int64
	useRoV     bool
	useASR     bool
	quiet      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rotsim",
		Short: "Greedy ability rotation optimizer",
		Long: `Simulates a greedy ability rotation over a fixed time horizon:
cooldowns, adrenaline, and temporary damage modifiers, tick by tick.`,
		Run: runRotation,
	}

	rootCmd.PersistentFlags().StringVarP(&dataDir, "data", "d", "data", "Path to data directory")
	rootCmd.PersistentFlags().StringVarP(&style, "style", "s", "melee_2h", "Ability style key from the catalog")
	rootCmd.PersistentFlags().Float64Var(&seconds, "seconds", 60, "Simulation horizon in seconds")
	rootCmd.PersistentFlags().Float64VarP(&adrenaline, "adrenaline", "a", 0, "Initial adrenaline balance")
	rootCmd.PersistentFlags().BoolVar(&usePRNG, "prng", false, "Draw values uniformly instead of averaging")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "Random seed for reproducible prng runs")
	rootCmd.PersistentFlags().BoolVar(&useRoV, "ring-of-vigour", false, "Reduce ultimate costs by 10 adrenaline")
	rootCmd.PersistentFlags().BoolVar(&useASR, "asr", false, "10% chance threshold costs are waived (needs --prng)")
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to YAML run config file")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Minimal output")

	rootCmd.AddCommand(newSweepCmd(), newCatalogCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func resolveConfig() (*loader.SimConfig, error) {
	config := &loader.SimConfig{
		Style:           style,
		HorizonSeconds:  seconds,
		Adrenaline:      adrenaline,
		UsePRNG:         usePRNG,
		Seed:            seed,
		UseRingOfVigour: useRoV,
		UseASR:          useASR,
	}

	if configFile != "" {
		loaded, err := loader.LoadSimConfig(configFile)
		if err != nil {
			return nil, err
		}
		config = loaded
	}

	if err := loader.ValidateSimConfig(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

func loadRoster(styleKey string) ([]*models.Action, error) {
	catalog, err := loader.LoadCatalog(filepath.Join(dataDir, "abilities.yaml"))
	if err != nil {
		return nil, err
	}
	return catalog.Actions(styleKey, "")
}

func runRotation(cmd *cobra.Command, args []string) {
	titleColor := color.New(color.FgCyan, color.Bold)
	successColor := color.New(color.FgGreen, color.Bold)
	infoColor := color.New(color.FgYellow)

	if !quiet {
		titleColor.Println("\n╭───────────────────────────╮")
		titleColor.Println("│  Rotation Optimizer       │")
		titleColor.Println("│  Greedy Simulation        │")
		titleColor.Println("╰───────────────────────────╯")
		fmt.Println()
	}

	config, err := resolveConfig()
	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}

	actions, err := loadRoster(config.Style)
	if err != nil {
		color.Red("Error loading catalog: %v", err)
		os.Exit(1)
	}

	if !quiet {
		infoColor.Printf("📦 Loaded %d abilities for style %s\n\n", len(actions), config.Style)
	}

	state := sim.New(actions, sim.Options{
		Adrenaline:      config.Adrenaline,
		UsePRNG:         config.UsePRNG,
		Seed:            config.Seed,
		UseRingOfVigour: config.UseRingOfVigour,
		UseASR:          config.UseASR,
	})

	horizon := loader.ToTicks(config.HorizonSeconds)
	planner := sim.NewPlanner(state)
	rotation := planner.Run(horizon)
	summary := planner.Summarize(rotation)

	if !quiet {
		printRotation(rotation)
	}

	successColor.Printf("\n✓ Simulated %d ticks (%0.f seconds), %d actions taken\n",
		horizon, config.HorizonSeconds, summary.ActionsTaken)

	printSummary(summary)
	printUsage(summary)
}

func printRotation(rotation *sim.Rotation) {
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Tick", "Adren", "Action", "Ticks", "Value/Tick", "Active Mods"}),
	)

	for _, d := range rotation.Decisions {
		name := d.Action
		if d.Skip() {
			name = "SKIP"
		}
		_ = table.Append([]string{
			fmt.Sprintf("%d", d.Tick+1),
			fmt.Sprintf("%.0f%%", d.Adrenaline),
			name,
			fmt.Sprintf("%d", d.Ticks),
			fmt.Sprintf("%.2f", d.Value),
			strings.Join(d.ActiveMods, " | "),
		})
	}

	_ = table.Render()
}

func printSummary(summary *sim.Summary) {
	fmt.Println()
	fmt.Println("Damage Summary:")
	fmt.Printf("| Run ID:          %s\n", summary.RunID)
	fmt.Printf("| Execution Ticks: %d\n", summary.Horizon)
	fmt.Printf("| Rotation Total:  %.2f%% ability dmg\n", summary.TotalValue)
	fmt.Printf("| Average Action:  %.2f%% dpt\n", summary.AverageValue)
	fmt.Println()
	fmt.Println("Frequency & Value:")
	fmt.Printf("| Most used action:  %s (%dx)\n", summary.MostUsed, summary.MostUsedCount)
	fmt.Printf("| Most value action: %s (~%.2f%% of total)\n", summary.MostValuable, summary.MostValuableAt*100)
	fmt.Println()
	fmt.Println("Adrenaline Info:")
	fmt.Printf("| Total adrenaline gained:  %.0f\n", summary.GainedAdrenaline)
	fmt.Printf("| Total adrenaline spent:   %.0f\n", summary.SpentAdrenaline)
	fmt.Printf("| Excess adrenaline wasted: %.0f\n", summary.ExcessAdrenaline)
	fmt.Printf("| Dmg per spent adrenaline: %.2f\n", summary.ValuePerAdrenaline)

	if summary.FailedEffects > 0 {
		color.Yellow("| Activation effects failed: %d (see log)", summary.FailedEffects)
	}
}

func printUsage(summary *sim.Summary) {
	fmt.Println()
	fmt.Printf("Usage by action (%d actions):\n", summary.ActionsTaken)

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Action", "Uses", "Total Value"}),
	)
	for _, entry := range summary.Usage {
		_ = table.Append([]string{
			entry.Name,
			fmt.Sprintf("%dx", entry.TimesUsed),
			fmt.Sprintf("%.2f", entry.TotalValue),
		})
	}
	_ = table.Render()
}

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Compare passive/randomization configurations",
		Run:   runSweep,
	}
	return cmd
}

func runSweep(cmd *cobra.Command, args []string) {
	infoColor := color.New(color.FgYellow)
	successColor := color.New(color.FgGreen, color.Bold)

	actions, err := loadRoster(style)
	if err != nil {
		color.Red("Error loading catalog: %v", err)
		os.Exit(1)
	}

	base := sim.Options{Adrenaline: adrenaline, Seed: seed}
	variants := []sim.Variant{
		{Name: "baseline", Options: base},
		{Name: "ring-of-vigour", Options: withRoV(base)},
		{Name: "prng", Options: withPRNG(base)},
		{Name: "prng+asr", Options: withASR(withPRNG(base))},
		{Name: "all-passives", Options: withASR(withPRNG(withRoV(base)))},
	}

	horizon := loader.ToTicks(seconds)
	infoColor.Printf("🔄 Sweeping %d configurations over %d ticks...\n\n", len(variants), horizon)

	results, best, err := sim.Sweep(actions, variants, horizon)
	if err != nil {
		color.Red("Sweep failed: %v", err)
		os.Exit(1)
	}

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"", "Variant", "Total Value", "Avg/Tick", "Spent Adren", "Wasted Adren"}),
	)
	for i, r := range results {
		marker := ""
		if i == best {
			marker = "✓"
		}
		_ = table.Append([]string{
			marker,
			r.Variant.Name,
			fmt.Sprintf("%.2f", r.Summary.TotalValue),
			fmt.Sprintf("%.2f", r.Summary.AverageValue),
			fmt.Sprintf("%.0f", r.Summary.SpentAdrenaline),
			fmt.Sprintf("%.0f", r.Summary.ExcessAdrenaline),
		})
	}
	_ = table.Render()

	successColor.Printf("\n✓ Best configuration: %s\n", results[best].Variant.Name)
}

func withRoV(o sim.Options) sim.Options  { o.UseRingOfVigour = true; return o }
func withPRNG(o sim.Options) sim.Options { o.UsePRNG = true; return o }
func withASR(o sim.Options) sim.Options  { o.UseASR = true; return o }

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the abilities loaded for a style",
		Run:   runCatalog,
	}
	return cmd
}

func runCatalog(cmd *cobra.Command, args []string) {
	catalog, err := loader.LoadCatalog(filepath.Join(dataDir, "abilities.yaml"))
	if err != nil {
		color.Red("Error loading catalog: %v", err)
		os.Exit(1)
	}

	actions, err := catalog.Actions(style, "")
	if err != nil {
		color.Red("Error: %v (available styles: %s)", err, strings.Join(catalog.StyleNames(), ", "))
		os.Exit(1)
	}

	fmt.Printf("📋 %s (%d abilities):\n", style, len(actions))

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Ability", "Value", "CD (ticks)", "Ticks", "Hits", "Adren", "Modable", "Grants"}),
	)
	for _, a := range actions {
		grants := ""
		if a.Mod != nil {
			grants = a.Mod.Name
		}
		_ = table.Append([]string{
			a.Name,
			fmt.Sprintf("%.0f-%.0f", a.Min, a.Max),
			fmt.Sprintf("%d", a.Cooldown),
			fmt.Sprintf("%d", a.Ticks),
			fmt.Sprintf("%d", a.NumberOfHits),
			fmt.Sprintf("%+.0f", a.AdrenalineChange),
			fmt.Sprintf("%t", a.Modable),
			grants,
		})
	}
	_ = table.Render()
}
