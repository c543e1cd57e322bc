package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"bookstore-manager/bookstore"

	"github.com/spf13/cobra"
)

var errNoInput = errors.New("no input")

// text returns the flag's value when it was given, otherwise prompts with
// label. Required values are asked for again until a non-empty line arrives.
func (a *app) text(cmd *cobra.Command, flag, label string, required bool) (string, error) {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetString(flag)
		return v, nil
	}
	for {
		v, err := a.readLine(label)
		if err != nil {
			return "", err
		}
		if v != "" || !required {
			return v, nil
		}
		fmt.Fprintln(a.out, "Error: a value is required.")
	}
}

// price reads a price flag or prompt. An empty optional value yields 0.
func (a *app) price(cmd *cobra.Command, flag, label string, required bool) (bookstore.Cents, error) {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetString(flag)
		if v == "" && !required {
			return 0, nil
		}
		return bookstore.ParsePrice(v)
	}
	for {
		v, err := a.readLine(label)
		if err != nil {
			return 0, err
		}
		if v == "" && !required {
			return 0, nil
		}
		p, err := bookstore.ParsePrice(v)
		if err == nil {
			return p, nil
		}
		fmt.Fprintf(a.out, "Error: %v\n", err)
	}
}

// quantity reads an integer flag or prompt.
func (a *app) quantity(cmd *cobra.Command, flag, label string) (int, error) {
	if cmd.Flags().Changed(flag) {
		return cmd.Flags().GetInt(flag)
	}
	for {
		v, err := a.readLine(label)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(v)
		if err == nil {
			return n, nil
		}
		fmt.Fprintf(a.out, "Error: %q is not a valid integer.\n", v)
	}
}

func (a *app) readLine(label string) (string, error) {
	fmt.Fprintf(a.out, "%s: ", label)
	if !a.in.Scan() {
		if err := a.in.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("%s: %w", strings.ToLower(label), errNoInput)
	}
	return strings.TrimSpace(a.in.Text()), nil
}
