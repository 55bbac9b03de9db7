package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/raphaelgruber/daskindex/internal/prompt"
)

var (
	pickLabel    string
	pickValidate bool
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Interactive selection helpers",
	Long: `Interactive helpers for picking a value on the terminal.

Subcommands:
  list      Show options and read a free-text selection
  key       Show the keys of a key=value mapping, print the chosen value
  dropdown  Full-screen dropdown, arrow keys + enter

Examples:
  daskindex pick list --label "available pools" small medium large
  daskindex pick key region=eu-west-1 backup=us-east-1
  daskindex pick dropdown csv parquet orc`,
}

var pickListCmd = &cobra.Command{
	Use:   "list [items...]",
	Short: "Show options and read a free-text selection",
	Long: `Show the items under a label and read the operator's answer.

By default the answer is returned verbatim, even when it is not one of
the listed items. Pass --validate to reject answers outside the list.`,
	RunE: runPickList,
}

var pickKeyCmd = &cobra.Command{
	Use:   "key key=value [key=value...]",
	Short: "Pick a value by its key",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPickKey,
}

var pickDropdownCmd = &cobra.Command{
	Use:   "dropdown [options...]",
	Short: "Pick an option from a dropdown",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPickDropdown,
}

func init() {
	pickCmd.PersistentFlags().StringVarP(&pickLabel, "label", "l", "the available options", "label shown above the options")
	pickListCmd.Flags().BoolVar(&pickValidate, "validate", false, "reject answers that are not listed")

	pickCmd.AddCommand(pickListCmd)
	pickCmd.AddCommand(pickKeyCmd)
	pickCmd.AddCommand(pickDropdownCmd)
}

func requireTerminal() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("pick requires an interactive terminal")
	}
	return nil
}

func runPickList(cmd *cobra.Command, args []string) error {
	if err := requireTerminal(); err != nil {
		return err
	}

	p := prompt.New(os.Stdin, os.Stdout)

	var selection string
	var err error
	if pickValidate {
		selection, err = p.SelectFromList(pickLabel, args)
	} else {
		selection, err = p.PrintList(pickLabel, args)
	}
	if err != nil {
		return err
	}

	if selection != "" {
		fmt.Println(selection)
	}
	return nil
}

func runPickKey(cmd *cobra.Command, args []string) error {
	if err := requireTerminal(); err != nil {
		return err
	}

	m := make(map[string]string, len(args))
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("invalid mapping %q, expected key=value", arg)
		}
		m[k] = v
	}

	value, err := prompt.New(os.Stdin, os.Stdout).SelectFromMap(pickLabel, m)
	if err != nil {
		return err
	}

	fmt.Println(value)
	return nil
}

func runPickDropdown(cmd *cobra.Command, args []string) error {
	if err := requireTerminal(); err != nil {
		return err
	}

	d, err := prompt.NewDropdown(args, pickLabel, func(value string) {
		logger.Debug("dropdown selection changed", "value", value)
	})
	if err != nil {
		return err
	}

	value, err := d.Run()
	if err != nil {
		return err
	}

	fmt.Println(value)
	return nil
}
