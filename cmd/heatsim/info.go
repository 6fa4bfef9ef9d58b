package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/heatsim/internal/colormap"
	"github.com/san-kum/heatsim/internal/config"
	"github.com/san-kum/heatsim/internal/material"
	"github.com/san-kum/heatsim/internal/viz"
)

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tTICKS\tPAIRS\tPARTICLES\tWALLS\tCONDUCTANCE")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%s\n",
			name, cfg.Ticks, cfg.PairsPerTick, cfg.TotalParticles(), cfg.Walls, cfg.Contact.Conductance)
	}
	return w.Flush()
}

func listMaterials(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MATERIAL\tK\tC\tRHO\tBASE")
	for _, kind := range material.Kinds() {
		m := material.Preset(kind)
		fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%s\n",
			kind, m.Conductivity(), m.SpecificHeat(), m.Density(), colormap.Display(m.BaseColor()))
	}
	return w.Flush()
}

func showColors(cmd *cobra.Command, args []string) error {
	for _, arg := range args {
		k, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("invalid temperature %q: %w", arg, err)
		}
		fmt.Println(viz.ColorLine(k))
	}
	return nil
}
