package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jub0bs/helmet"
	"github.com/jub0bs/helmet/cfgfile"
)

func newCompileCmd() *cobra.Command {
	var configPath string
	var format string

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Print the header instructions that a configuration file results in",
		RunE: func(cmd *cobra.Command, args []string) error {
			ins, err := compileFile(configPath)
			if err != nil {
				return err
			}
			return writeInstructions(cmd.OutOrStdout(), ins, format)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (.yaml, .yml, .json, or .toml)")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, json, or yaml")

	return cmd
}

func loadConfig(path string) (*helmet.Config, error) {
	if path == "" {
		return nil, errors.New("config path is required")
	}
	return cfgfile.Load(path)
}

func compileFile(path string) ([]helmet.Instruction, error) {
	cfg, err := loadConfig(path)
	if err != nil {
		return nil, err
	}
	return helmet.Compile(cfg)
}

// instruction is the serialized form of a helmet.Instruction.
type instruction struct {
	Op    string `json:"op" yaml:"op"`
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}

func toSerializable(ins []helmet.Instruction) []instruction {
	res := make([]instruction, len(ins))
	for i, in := range ins {
		res[i] = instruction{Name: in.Name, Value: in.Value}
		switch in.Op {
		case helmet.OpSet:
			res[i].Op = "set"
		case helmet.OpRemove:
			res[i].Op = "remove"
		}
	}
	return res
}

func writeInstructions(w io.Writer, ins []helmet.Instruction, format string) error {
	switch format {
	case "text":
		for _, in := range ins {
			var err error
			if in.Op == helmet.OpRemove {
				_, err = fmt.Fprintf(w, "remove %s\n", in.Name)
			} else {
				_, err = fmt.Fprintf(w, "set    %s: %s\n", in.Name, in.Value)
			}
			if err != nil {
				return err
			}
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(toSerializable(ins))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(toSerializable(ins)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
