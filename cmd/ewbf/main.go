package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ewbf/internal/algorithm"
	"ewbf/internal/binpkg"
	"ewbf/internal/capability"
	"ewbf/internal/config"
	"ewbf/internal/gpu"
	"ewbf/internal/launch"
	"ewbf/internal/logging"
	"ewbf/internal/options"
	"ewbf/internal/plugin"
	"ewbf/internal/tui"
)

var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5fd75f")).Bold(true)
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#87d7af"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
)

func main() {
	if len(os.Args) <= 1 {
		runTUI()
		return
	}

	command := strings.ToLower(os.Args[1])
	if handler, ok := commandHandlers()[command]; ok {
		handler()
		return
	}

	fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
	printUsage()
	os.Exit(1)
}

func commandHandlers() map[string]func() {
	return map[string]func(){
		"devices":     runDevices,
		"args":        runArgs,
		"check-bins":  runCheckBins,
		"verify-bins": runVerifyBins,
		"options":     runOptions,
		"config":      runConfig,
		"tui":         runTUI,
		"version":     runVersion,
		"help":        printUsage,
		"--help":      printUsage,
		"-h":          printUsage,
	}
}

// environment is the configuration, logger and initialised plugin every command works on
type environment struct {
	cfg    config.Config
	logger *logging.Logger
	plugin *plugin.Plugin
}

func setup() environment {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)

	p := plugin.New(cfg.PluginsPath, cfg.PluginUUID, logger)
	if err := p.InitInternals(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", failStyle.Render("Warning: plugin settings not loaded, using built-in defaults:"), err)
	}

	return environment{cfg: cfg, logger: logger, plugin: p}
}

func newLogger(cfg config.Config) *logging.Logger {
	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logging.LevelInfo
	}

	if cfg.Logging.File == "" {
		return logging.NewLogger(level)
	}

	logger, err := logging.NewFileLogger(level, cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open log file %s, logging to stderr: %v\n", cfg.Logging.File, err)
		return logging.NewLogger(level)
	}
	return logger
}

// inventory detects devices live and falls back to the last saved report when
// NVML is unavailable. live is false when the saved report was used.
func (env environment) inventory() (report gpu.Report, live bool) {
	report = gpu.NewInventory(env.logger).Detect()
	if report.NVMLOk || env.cfg.ReportPath == "" {
		return report, true
	}

	saved, err := gpu.LoadReport(env.cfg.ReportPath)
	if err != nil {
		return report, true
	}

	env.logger.Info("gpu.report.fallback", "Using saved GPU report", map[string]interface{}{
		"filepath": env.cfg.ReportPath,
	})
	return saved, false
}

func runVersion() {
	fmt.Printf("%s plugin version %d.%d (%s)\n", plugin.Name, plugin.Version.Major, plugin.Version.Minor, plugin.UUID)
}

func runTUI() {
	env := setup()

	startTime := time.Now()
	env.logger.Info("app.started", "Application started", map[string]interface{}{
		"plugin": env.plugin.PluginUUID(),
		"ts":     startTime.UTC().Format(time.RFC3339),
	})

	report, _ := env.inventory()
	model := tui.NewModel(env.plugin, report, env.cfg.Pool, env.logger)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		env.logger.Error("app.error", "Application error", map[string]interface{}{
			"error": err.Error(),
		})
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}

	env.logger.Info("app.exited", "Application exited", map[string]interface{}{
		"ts":       time.Now().UTC().Format(time.RFC3339),
		"duration": time.Since(startTime).String(),
	})
}

func runDevices() {
	env := setup()

	report, live := env.inventory()

	fmt.Println("=== GPU Inventory ===")
	if !live {
		fmt.Printf("%s %s\n", mutedStyle.Render("NVML unavailable, showing saved report:"), env.cfg.ReportPath)
	}
	if !report.NVMLOk {
		fmt.Printf("%s %s\n", failStyle.Render("NVML Status: FAILED"), report.ErrorMessage)
	} else {
		fmt.Println(okStyle.Render("NVML Status: OK"))
	}
	fmt.Printf("%s %s (minimum %s)\n", labelStyle.Render("Driver Version:"), report.DriverVersion, capability.MinimumDriverVersion)
	if report.CUDAVersion > 0 {
		fmt.Printf("%s %d.%d\n", labelStyle.Render("CUDA Version:"), report.CUDAVersion/1000, (report.CUDAVersion%1000)/10)
	}
	fmt.Println()

	supported := env.plugin.GetSupportedAlgorithms(report.DriverVersion, report.Devices)
	for _, d := range report.Devices {
		algos, ok := supported[d]
		if !ok {
			fmt.Printf("  %s %s\n", failStyle.Render("-"), mutedStyle.Render(d.String()+"  unsupported"))
			continue
		}
		fmt.Printf("  %s %s  %s\n", okStyle.Render("+"), d.String(), labelStyle.Render(algorithmNames(algos)))
	}
	fmt.Printf("\nSupported devices: %d of %d\n", len(supported), len(report.Devices))

	if len(os.Args) > 2 && os.Args[2] == "--save" {
		if !live {
			fmt.Fprintln(os.Stderr, failStyle.Render("Not saving: detection failed, keeping the existing report"))
			os.Exit(1)
		}
		if err := gpu.NewInventory(env.logger).SaveReport(report, env.cfg.ReportPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to save report: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Report saved to: %s\n", env.cfg.ReportPath)
	}
}

func algorithmNames(algos []algorithm.Algorithm) string {
	names := make([]string, 0, len(algos))
	for _, a := range algos {
		names = append(names, a.String())
	}
	return strings.Join(names, ", ")
}

// runArgs prints the worker command; extra parameters from the command line
// follow the configured ones, so they win on repeated options
func runArgs() {
	env := setup()

	report, _ := env.inventory()
	supported := env.plugin.GetSupportedAlgorithms(report.DriverVersion, report.Devices)
	if len(supported) == 0 {
		fmt.Fprintln(os.Stderr, failStyle.Render("Warning: no supported devices, command selects none"))
	}

	extra := strings.TrimSpace(env.cfg.ExtraLaunchParameters + " " + launch.JoinArguments(os.Args[2:]))
	algo := algorithm.New(env.plugin.PluginUUID(), algorithm.TypeZHash)
	cmd, err := env.plugin.CreateCommand(algo, supported.Devices(), env.cfg.Pool, extra)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	fmt.Println(cmd.String())
	fmt.Printf("%s %s\n", labelStyle.Render("cwd:"), cmd.Dir)
	for _, kv := range cmd.Env {
		fmt.Printf("%s %s\n", labelStyle.Render("env:"), kv)
	}
}

func runCheckBins() {
	env := setup()

	missing := env.plugin.CheckBinaryPackageMissingFiles()
	fmt.Printf("Binary package: %s\n", env.plugin.BinsPath())
	if len(missing) == 0 {
		fmt.Println(okStyle.Render("All required files present"))
		return
	}

	for _, name := range missing {
		fmt.Printf("  %s %s\n", failStyle.Render("missing:"), name)
	}
	env.logger.Warn("binpkg.missing", "Binary package incomplete", map[string]interface{}{
		"path":    env.plugin.BinsPath(),
		"missing": missing,
	})
	os.Exit(1)
}

func runVerifyBins() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: ewbf verify-bins <manifest.yaml>")
		os.Exit(1)
	}
	env := setup()

	manifest, err := binpkg.LoadManifest(os.Args[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	mismatches, err := env.plugin.VerifyBinaryPackage(manifest)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if len(mismatches) == 0 {
		fmt.Println(okStyle.Render(fmt.Sprintf("All %d files match the manifest", len(manifest))))
		return
	}

	for _, mm := range mismatches {
		if mm.Actual == "" {
			fmt.Printf("  %s %s\n", failStyle.Render("missing:"), mm.Name)
			continue
		}
		fmt.Printf("  %s %s\n    expected %s\n    actual   %s\n", failStyle.Render("mismatch:"), mm.Name, mm.Expected, mm.Actual)
	}
	os.Exit(1)
}

func runOptions() {
	env := setup()
	pkg := env.plugin.Options()

	printOptionGroup("General options:", pkg.General)
	fmt.Println()
	printOptionGroup("Temperature options:", pkg.Temperature)
	fmt.Printf("\n%s %s\n", mutedStyle.Render("Overrides:"), env.plugin.InternalsPath())
}

func printOptionGroup(title string, opts []options.Option) {
	fmt.Println(labelStyle.Render(title))
	for _, opt := range opts {
		def := opt.DefaultValue
		if opt.Delimiter != "" && opt.Kind == options.KindMultiParam {
			def = fmt.Sprintf("%s (per-device delimiter %q)", def, opt.Delimiter)
		}
		fmt.Printf("  %-32s %-12s %-6s %s\n", opt.ID, opt.ShortName, opt.Kind, def)
	}
}

func runConfig() {
	logger := logging.NewLogger(logging.LevelInfo)

	if len(os.Args) < 3 {
		fmt.Fprintf(os.Stderr, "Usage: ewbf config <subcommand>\n")
		fmt.Fprintf(os.Stderr, "Subcommands:\n")
		fmt.Fprintf(os.Stderr, "  test [path]  Test configuration file for validity\n")
		os.Exit(1)
	}

	subcommand := strings.ToLower(os.Args[2])

	switch subcommand {
	case "test":
		runConfigTest(logger)
	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", subcommand)
		fmt.Fprintf(os.Stderr, "Valid subcommands: test\n")
		os.Exit(1)
	}
}

func runConfigTest(logger *logging.Logger) {
	var cfg config.Config
	var configErr error

	if len(os.Args) > 3 {
		path := os.Args[3]
		fmt.Printf("Testing configuration file: %s\n", path)
		cfg, configErr = config.LoadFrom(path)
	} else {
		fmt.Println("Testing configuration (system + user merge):")
		fmt.Printf("  System config: %s\n", config.SystemConfigPath())
		if userPath := config.UserConfigPath(); userPath != "" {
			fmt.Printf("  User config:   %s\n", userPath)
		}
		fmt.Println()

		cfg, configErr = config.Load()
	}

	if configErr != nil {
		fmt.Fprintf(os.Stderr, "%s\n", failStyle.Render("Configuration validation FAILED:"))
		fmt.Fprintf(os.Stderr, "   %v\n", configErr)

		logger.Error("config.validation.error", "Configuration validation failed", map[string]interface{}{
			"error": configErr.Error(),
		})
		os.Exit(1)
	}

	fmt.Println(okStyle.Render("Configuration is VALID"))
	fmt.Println()
	fmt.Println("Configuration Summary:")
	fmt.Printf("  Plugins Path:         %s\n", cfg.PluginsPath)
	fmt.Printf("  Plugin UUID:          %s\n", cfg.PluginUUID)
	fmt.Printf("  Report Path:          %s\n", cfg.ReportPath)
	fmt.Printf("  Pool:                 %s:%d\n", cfg.Pool.Host, cfg.Pool.Port)
	fmt.Printf("  API Port:             %d\n", cfg.Pool.APIPort)
	fmt.Printf("  Extra Parameters:     %s\n", cfg.ExtraLaunchParameters)
	fmt.Printf("  Log Level:            %s\n", cfg.Logging.Level)

	logger.Info("config.validation.ok", "Configuration validation passed", map[string]interface{}{
		"plugin_uuid": cfg.PluginUUID,
	})
}

func printUsage() {
	fmt.Printf(`ewbf - EWBF miner plugin tool (plugin version %d.%d)

Usage:
  ewbf                             Start the interactive launch-option editor (default)
  ewbf devices [--save]            Detect GPUs and show supported algorithms (--save writes report_path)
  ewbf args [extra params...]      Print the worker command line for the supported devices
  ewbf check-bins                  List required worker files missing from the bins directory
  ewbf verify-bins <manifest.yaml> Compare worker files against BLAKE2b-256 digests
  ewbf options                     Show the active launch option catalogue
  ewbf config test [path]          Test configuration file for validity (defaults to system/user configs)
  ewbf tui                         Start the interactive launch-option editor
  ewbf version                     Print version information
  ewbf help                        Show this help message

Environment:
  EWBF_CONFIG_DIR                  System configuration directory (default /etc/ewbf)
  EWBF_PLUGINS_DIR                 Plugin install root (default /var/lib/ewbf/miner_plugins)
`, plugin.Version.Major, plugin.Version.Minor)
}
