package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/samdwyer/pokebattle/internal/element"
)

var (
	chartAttack string
	chartDefend string
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Print the type-effectiveness chart",
	Long: `Print the full attacker-by-defender chart, or a single composed
multiplier with --attack and --defend:

  pokebattle chart --attack fire --defend grass,bug`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if chartAttack == "" && chartDefend == "" {
			printChart(out)
			return nil
		}

		attack, err := element.Parse(chartAttack)
		if err != nil {
			return err
		}
		defend, err := element.ParseList(chartDefend)
		if err != nil {
			return err
		}
		if len(defend) == 0 || len(defend) > 2 {
			return fmt.Errorf("--defend takes one or two types")
		}
		printMatchup(out, attack, defend)
		return nil
	},
}

func init() {
	chartCmd.Flags().StringVar(&chartAttack, "attack", "", "Attacking type")
	chartCmd.Flags().StringVar(&chartDefend, "defend", "", "Defending types, comma-separated")
}

// printChart writes the 18x18 grid, attackers down the side.
func printChart(w io.Writer) {
	types := element.All()

	var b strings.Builder
	b.WriteString("ATK\\DEF ")
	for _, d := range types {
		fmt.Fprintf(&b, "%4s", abbrev(d))
	}
	b.WriteString("\n")

	for _, a := range types {
		fmt.Fprintf(&b, "%-8s", abbrev(a))
		for _, d := range types {
			fmt.Fprintf(&b, "%4s", cell(element.Multiplier(a, d)))
		}
		b.WriteString("\n")
	}
	fmt.Fprint(w, b.String())
}

func printMatchup(w io.Writer, attack element.Type, defend []element.Type) {
	names := make([]string, len(defend))
	for i, d := range defend {
		names[i] = d.DisplayName()
	}
	m := element.Effectiveness(attack, defend)
	fmt.Fprintf(w, "%s vs %s: x%g", attack.DisplayName(), strings.Join(names, "/"), m)
	if msg := element.TierOf(m).Message(); msg != "" {
		fmt.Fprintf(w, "  %s", msg)
	}
	fmt.Fprintln(w)
}

func abbrev(t element.Type) string {
	return strings.ToUpper(t.String()[:3])
}

func cell(m float64) string {
	switch m {
	case 0:
		return "0"
	case 0.5:
		return "½"
	case 2:
		return "2"
	default:
		return "."
	}
}
