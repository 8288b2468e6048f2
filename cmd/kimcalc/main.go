package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dpalmer-anl/ase/calculator/lammpslib"
	"github.com/dpalmer-anl/ase/calculator/lammpsrun"
	"github.com/dpalmer-anl/ase/internal/browse"
	"github.com/dpalmer-anl/ase/kb"
	"github.com/dpalmer-anl/ase/kim"
)

var (
	kbDir   string
	debug   bool
	backend string
	optArgs []string
)

var (
	title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	label = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	value = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "kimcalc",
		Short: "select and configure calculators for knowledgebase models",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
			kb.SetDefault(kb.NewDirStore(kbDir))
		},
	}

	defaultKB := os.Getenv("KIMCALC_KB")
	if defaultKB == "" {
		defaultKB = "kimkb"
	}
	rootCmd.PersistentFlags().StringVar(&kbDir, "kb", defaultKB, "knowledgebase metadata directory")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "verbose logging")

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list models in the knowledgebase",
		RunE:  listModels,
	}

	describeCmd := &cobra.Command{
		Use:   "describe [model]",
		Short: "show a model's metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  describeModel,
	}

	speciesCmd := &cobra.Command{
		Use:   "species [model]",
		Short: "list the species a model supports",
		Args:  cobra.ExactArgs(1),
		RunE:  listSpecies,
	}

	resolveCmd := &cobra.Command{
		Use:   "resolve [model]",
		Short: "resolve a backend and show its generated configuration",
		Args:  cobra.ExactArgs(1),
		RunE:  resolveModel,
	}
	resolveCmd.Flags().StringVar(&backend, "backend", "", "backend to use (kimmodel, lammpsrun, lammpslib, asap)")
	resolveCmd.Flags().StringArrayVar(&optArgs, "opt", nil, "backend option as key=value (repeatable)")

	browseCmd := &cobra.Command{
		Use:   "browse",
		Short: "browse the knowledgebase interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			return browse.Run(kb.Default())
		},
	}

	rootCmd.AddCommand(modelsCmd, describeCmd, speciesCmd, resolveCmd, browseCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func listModels(cmd *cobra.Command, args []string) error {
	lister, ok := kb.Default().(kb.Lister)
	if !ok {
		return fmt.Errorf("knowledgebase store cannot enumerate models")
	}
	names, err := lister.Names()
	if err != nil {
		return err
	}
	for _, name := range names {
		m, err := kb.Default().Lookup(name)
		if err != nil {
			fmt.Printf("%s  %s\n", value.Render(name), label.Render(err.Error()))
			continue
		}
		fmt.Printf("%s  %s\n", value.Render(name), label.Render(m.Type.String()))
	}
	return nil
}

func describeModel(cmd *cobra.Command, args []string) error {
	m, err := kb.Default().Lookup(args[0])
	if err != nil {
		return err
	}

	fmt.Println(title.Render(m.Name))
	printField("type", m.Type.String())
	printField("species", strings.Join(m.Species, " "))
	if m.Type == kb.ItemSimulatorModel {
		printField("simulator", m.SimulatorName)
		printField("units", m.Units)
		if m.AtomStyle != "" {
			printField("atom style", m.AtomStyle)
		}
		for _, line := range m.ModelDefn {
			printField("model defn", line)
		}
	}
	return nil
}

func listSpecies(cmd *cobra.Command, args []string) error {
	species, err := kim.SupportedSpecies(args[0])
	if err != nil {
		return err
	}
	fmt.Println(strings.Join(species, " "))
	return nil
}

func resolveModel(cmd *cobra.Command, args []string) error {
	options, err := parseOptions(optArgs)
	if err != nil {
		return err
	}

	calc, err := kim.NewCalculator(args[0], &kim.Params{
		Backend: backend,
		Options: options,
		Debug:   debug,
	})
	if err != nil {
		return err
	}

	fmt.Println(title.Render(args[0]))
	printField("backend", calc.Name())

	switch c := calc.(type) {
	case *lammpsrun.Calculator:
		for _, line := range c.Parameters.ModelInit {
			printField("init", line)
		}
		printField("interactions", c.Parameters.KimInteractions)
		for _, line := range c.Parameters.Masses {
			printField("mass", line)
		}
		printField("units", c.Parameters.Units)
	case *lammpslib.Calculator:
		for _, line := range c.Config.LammpsHeader {
			printField("header", line)
		}
		for _, line := range c.Config.Cmds {
			printField("cmd", line)
		}
	}
	return nil
}

func printField(name, v string) {
	fmt.Printf("  %s %s\n", label.Render(fmt.Sprintf("%-12s", name)), value.Render(v))
}

// parseOptions turns repeated key=value flags into typed option values.
func parseOptions(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	options := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("option %q is not key=value", pair)
		}
		switch {
		case raw == "true" || raw == "false":
			options[key] = raw == "true"
		default:
			if n, err := strconv.Atoi(raw); err == nil {
				options[key] = n
			} else if f, err := strconv.ParseFloat(raw, 64); err == nil {
				options[key] = f
			} else {
				options[key] = raw
			}
		}
	}
	return options, nil
}
