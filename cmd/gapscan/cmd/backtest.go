package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rustyeddy/gapscan/backtest"
	"github.com/rustyeddy/gapscan/config"
	"github.com/rustyeddy/gapscan/journal"
	"github.com/rustyeddy/gapscan/market"
	"github.com/rustyeddy/gapscan/perf"
	"github.com/rustyeddy/gapscan/pkg/logging"
	"github.com/rustyeddy/gapscan/scanner"
	"github.com/spf13/cobra"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Run the gap strategy over historical daily bars",
	Long: `Backtest replays the gap scanner day by day over a CSV of daily bars
(symbol,date,open,high,low,close,volume), routes the signals through the
position manager, and prints the run's metrics.

Example:
  gapscan backtest -b data/bars.csv --start 2022-01-03 --end 2022-06-30`,
	RunE: runBacktest,
}

var (
	btBarsPath  string
	btConfig    string
	btDBPath    string
	btStart     string
	btEnd       string
	btCapital   float64
	btFrac      float64
	btDailyLoss float64
	btMaxPos    int
	btWindow    int
	btGapPct    float64
	btBudget    float64
	btDirection string
	btSameDay   bool
	btReport    string
	btVerbose   bool
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	backtestCmd.Flags().StringVarP(&btBarsPath, "bars", "b", "", "path to daily bar CSV (symbol,date,open,high,low,close,volume) (required)")
	backtestCmd.Flags().StringVarP(&btConfig, "config", "c", "", "config file (YAML or JSON); explicit flags override its values")
	backtestCmd.Flags().StringVarP(&btDBPath, "db", "d", "", "path to SQLite journal DB (empty disables journaling)")
	backtestCmd.Flags().StringVar(&btStart, "start", "", "start date YYYY-MM-DD")
	backtestCmd.Flags().StringVar(&btEnd, "end", "", "end date YYYY-MM-DD")
	backtestCmd.Flags().Float64Var(&btCapital, "capital", 100_000, "initial capital")
	backtestCmd.Flags().Float64Var(&btFrac, "position-size", 0.1, "position size as fraction of capital")
	backtestCmd.Flags().Float64Var(&btDailyLoss, "max-daily-loss", 0.02, "advisory daily loss limit as fraction of initial capital")
	backtestCmd.Flags().IntVar(&btMaxPos, "max-positions", 5, "max simultaneous open positions")

	backtestCmd.Flags().IntVarP(&btWindow, "window", "w", 20, "moving average window in sessions")
	backtestCmd.Flags().Float64VarP(&btGapPct, "gap", "g", 3.0, "gap threshold percent")
	backtestCmd.Flags().Float64Var(&btBudget, "budget", 10_000, "fixed dollar budget per signal")
	backtestCmd.Flags().StringVar(&btDirection, "direction", "both", "scan direction (down, up, both)")
	backtestCmd.Flags().BoolVar(&btSameDay, "same-day-close", false, "use same-day closes in the moving average (historical parity)")
	backtestCmd.Flags().StringVar(&btReport, "report", "", "write a JSON performance report to this path")
	backtestCmd.Flags().BoolVarP(&btVerbose, "verbose", "v", false, "log signals and position changes")

	backtestCmd.MarkFlagRequired("bars")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	var fileCfg *config.Config
	if btConfig != "" {
		var err error
		if fileCfg, err = config.LoadFromFile(btConfig); err != nil {
			return err
		}
		seedBacktestFlags(cmd, fileCfg)
	}

	if btStart == "" || btEnd == "" {
		return fmt.Errorf("start and end dates are required (set --start/--end or --config)")
	}
	start, err := time.Parse("2006-01-02", btStart)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	end, err := time.Parse("2006-01-02", btEnd)
	if err != nil {
		return fmt.Errorf("end: %w", err)
	}

	dir, err := parseDirection(btDirection)
	if err != nil {
		return err
	}

	// Reach back far enough before the window for moving-average warmup.
	src := market.FileSource{Path: btBarsPath}
	hist, err := src.Bars(cmd.Context(), nil, start.AddDate(0, 0, -2*btWindow), end)
	if err != nil {
		return fmt.Errorf("load bars: %w", err)
	}

	log := logging.Nop()
	if btVerbose {
		if log, err = logging.New(); err != nil {
			return err
		}
	}

	var j journal.Journal
	switch {
	case btDBPath != "":
		sj, err := journal.NewSQLite(btDBPath)
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer sj.Close()
		j = sj
	case fileCfg != nil && fileCfg.Journal.Type == "csv":
		cj, err := journal.NewCSV(fileCfg.Journal.TradesFile, fileCfg.Journal.RunsFile)
		if err != nil {
			return fmt.Errorf("open csv journal: %w", err)
		}
		defer cj.Close()
		j = cj
	}

	strat := scanner.New(scanner.Config{
		Window:          btWindow,
		GapPercent:      btGapPct,
		OrderDollarSize: btBudget,
		Direction:       dir,
		SameDayClose:    btSameDay,
	}, log)

	engine := backtest.NewEngine(hist, strat, backtest.Config{
		Start:            start,
		End:              end,
		InitialCapital:   btCapital,
		PositionFrac:     btFrac,
		MaxDailyLossFrac: btDailyLoss,
		MaxOpenPositions: btMaxPos,
	}, j, log)

	res, err := engine.Run()
	if err != nil {
		return err
	}

	backtest.PrintResult(os.Stdout, res)

	if btReport != "" {
		alerts := perf.CheckRiskLimits(res.Daily, perf.RiskLimits{
			MaxDailyLoss: -btCapital * btDailyLoss,
			MaxDrawdown:  -0.2,
		})
		rep := perf.NewReport(res.Daily, res.Metrics, alerts, end)

		f, err := os.Create(btReport)
		if err != nil {
			return fmt.Errorf("create report: %w", err)
		}
		defer f.Close()

		if err := rep.WriteJSON(f); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Printf("\nReport written to %s\n", btReport)
	}

	return nil
}

// seedBacktestFlags fills every flag the user did not set explicitly from
// the config file, so flags always win over the file.
func seedBacktestFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()

	if !f.Changed("start") {
		btStart = cfg.Backtest.Start
	}
	if !f.Changed("end") {
		btEnd = cfg.Backtest.End
	}
	if !f.Changed("capital") {
		btCapital = cfg.Account.InitialCapital
	}
	if !f.Changed("position-size") {
		btFrac = cfg.Backtest.PositionSize
	}
	if !f.Changed("max-daily-loss") {
		btDailyLoss = cfg.Risk.MaxDailyLoss
	}
	if !f.Changed("max-positions") {
		btMaxPos = cfg.Risk.MaxTotalPositions
	}
	if !f.Changed("window") {
		btWindow = cfg.Scanner.MovingAverageDays
	}
	if !f.Changed("gap") {
		btGapPct = cfg.Scanner.GapPercent
	}
	if !f.Changed("budget") {
		btBudget = cfg.Scanner.OrderDollarSize
	}
	if !f.Changed("direction") {
		btDirection = cfg.Scanner.Direction
	}
	if !f.Changed("same-day-close") {
		btSameDay = cfg.Scanner.SameDayClose
	}
	if !f.Changed("db") && cfg.Journal.Type == "sqlite" {
		btDBPath = cfg.Journal.DBPath
	}
}

func parseDirection(s string) (scanner.Direction, error) {
	switch s {
	case "down":
		return scanner.Down, nil
	case "up":
		return scanner.Up, nil
	case "both":
		return scanner.Both, nil
	default:
		return 0, fmt.Errorf("unknown direction %q (supported: down, up, both)", s)
	}
}
