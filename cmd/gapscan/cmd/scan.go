package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/rustyeddy/gapscan/broker"
	"github.com/rustyeddy/gapscan/config"
	"github.com/rustyeddy/gapscan/market"
	"github.com/rustyeddy/gapscan/pkg/logging"
	"github.com/rustyeddy/gapscan/portfolio"
	"github.com/rustyeddy/gapscan/scanner"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan one session for gap signals",
	Long: `Scan evaluates a single session's bars against the gap rules and prints
the resulting signals. With --execute, signals are submitted to the paper
broker and admitted into a position manager, mirroring the live path:
submit first, book the position only on acknowledgment.

Example:
  gapscan scan -b data/bars.csv --date 2022-03-15 --direction down`,
	RunE: runScan,
}

var (
	scBarsPath  string
	scConfig    string
	scDate      string
	scWindow    int
	scGapPct    float64
	scBudget    float64
	scDirection string
	scCapital   float64
	scSameDay   bool
	scExecute   bool
)

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVarP(&scBarsPath, "bars", "b", "", "path to daily bar CSV (required)")
	scanCmd.Flags().StringVarP(&scConfig, "config", "c", "", "config file (YAML or JSON); explicit flags override its values")
	scanCmd.Flags().StringVar(&scDate, "date", "", "session date YYYY-MM-DD (required)")
	scanCmd.Flags().IntVarP(&scWindow, "window", "w", 20, "moving average window in sessions")
	scanCmd.Flags().Float64VarP(&scGapPct, "gap", "g", 3.0, "gap threshold percent")
	scanCmd.Flags().Float64Var(&scBudget, "budget", 10_000, "fixed dollar budget per signal")
	scanCmd.Flags().StringVar(&scDirection, "direction", "both", "scan direction (down, up, both)")
	scanCmd.Flags().Float64Var(&scCapital, "capital", 100_000, "account capital for admission checks")
	scanCmd.Flags().BoolVar(&scSameDay, "same-day-close", false, "use same-day closes in the moving average (historical parity)")
	scanCmd.Flags().BoolVar(&scExecute, "execute", false, "submit signals to the paper broker")

	scanCmd.MarkFlagRequired("bars")
	scanCmd.MarkFlagRequired("date")
}

func runScan(cmd *cobra.Command, args []string) error {
	if scConfig != "" {
		cfg, err := config.LoadFromFile(scConfig)
		if err != nil {
			return err
		}
		seedScanFlags(cmd, cfg)
	}

	day, err := time.Parse("2006-01-02", scDate)
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}

	dir, err := parseDirection(scDirection)
	if err != nil {
		return err
	}

	hist, err := market.LoadCSV(scBarsPath)
	if err != nil {
		return fmt.Errorf("load bars: %w", err)
	}

	log, err := logging.New()
	if err != nil {
		return err
	}

	sc := scanner.New(scanner.Config{
		Window:          scWindow,
		GapPercent:      scGapPct,
		OrderDollarSize: scBudget,
		Direction:       dir,
		SameDayClose:    scSameDay,
	}, log)

	signals := sc.Scan(hist, day)
	if len(signals) == 0 {
		fmt.Println("No signals.")
		return nil
	}

	for _, sig := range signals {
		fmt.Printf("%-6s %-4s qty=%-5d open=%.2f gap=%+.2f%% ma=%.2f\n",
			sig.Symbol, sig.Action, sig.Quantity, sig.Price, sig.GapPercent, sig.MovingAvg)
	}

	if !scExecute {
		return nil
	}

	return executeSignals(cmd.Context(), signals, day, log)
}

func seedScanFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()

	if !f.Changed("window") {
		scWindow = cfg.Scanner.MovingAverageDays
	}
	if !f.Changed("gap") {
		scGapPct = cfg.Scanner.GapPercent
	}
	if !f.Changed("budget") {
		scBudget = cfg.Scanner.OrderDollarSize
	}
	if !f.Changed("direction") {
		scDirection = cfg.Scanner.Direction
	}
	if !f.Changed("capital") {
		scCapital = cfg.Account.InitialCapital
	}
	if !f.Changed("same-day-close") {
		scSameDay = cfg.Scanner.SameDayClose
	}
}

// executeSignals mirrors the live ordering contract: the portfolio is
// mutated only after the broker acknowledges, and a failed submission
// just skips that signal.
func executeSignals(ctx context.Context, signals []scanner.Signal, day time.Time, log *zap.SugaredLogger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	pm := portfolio.NewManager(scCapital, portfolio.DefaultLimits(), log)
	pb := broker.NewPaper(log)

	for _, sig := range signals {
		if !pm.CanOpen(sig.Symbol, sig.Price, sig.Quantity) {
			continue
		}

		side := broker.Buy
		posSide := portfolio.Long
		if sig.Action == scanner.Sell {
			side = broker.Sell
			posSide = portfolio.Short
		}

		orderID, err := pb.SubmitOrder(ctx, broker.OrderRequest{
			Symbol:   sig.Symbol,
			Quantity: sig.Quantity,
			Side:     side,
			Type:     broker.Market,
		})
		if err != nil {
			log.Warnw("order rejected", "symbol", sig.Symbol, "err", err)
			continue
		}

		ok, err := pm.Open(sig.Symbol, sig.Price, sig.Quantity, posSide, day)
		if err != nil {
			return err
		}
		if ok {
			fmt.Printf("submitted %s: %s x%d @ %.2f (order %s)\n",
				side, sig.Symbol, sig.Quantity, sig.Price, orderID)
		}
	}

	for _, snap := range pm.Summary(day) {
		fmt.Printf("holding %-6s %-5s qty=%-5d entry=%.2f\n",
			snap.Symbol, snap.Side, snap.Quantity, snap.EntryPrice)
	}
	return nil
}
