package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/aeriform/protodispatch"
	"github.com/aeriform/protodispatch/swiftgen"
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "protodispatch",
		Short:         "Extract command/event dispatch models from schema files and generate glue code",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(
		newGenerateCommand(),
		newDumpCommand(),
	)
	return cmd
}

func newGenerateCommand() *cobra.Command {
	var infile, outdir string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the Swift extension file for a schema file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return generate(infile, outdir)
		},
	}
	cmd.Flags().StringVarP(&infile, "infile", "i", "in.proto", "path to the schema file")
	cmd.Flags().StringVarP(&outdir, "outdir", "o", ".", "output directory")
	return cmd
}

func newDumpCommand() *cobra.Command {
	var infile string
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the extracted model of a schema file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return dump(infile)
		},
	}
	cmd.Flags().StringVarP(&infile, "infile", "i", "in.proto", "path to the schema file")
	return cmd
}

func buildModel(infile string) (protodispatch.Model, error) {
	sf, err := protodispatch.ParseFile(infile)
	if err != nil {
		return protodispatch.Model{}, fmt.Errorf("parsing %v: %w", infile, err)
	}
	return protodispatch.BuildModel(sf), nil
}

func generate(infile, outdir string) error {
	model, err := buildModel(infile)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outdir, 0o755); err != nil {
		return err
	}
	base := strings.TrimSuffix(filepath.Base(infile), filepath.Ext(infile))
	outpath := filepath.Join(outdir, swiftgen.FileName(base))
	if err := os.WriteFile(outpath, []byte(swiftgen.Generate(model)), 0o644); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"messages": len(model.Messages),
		"command":  model.Command != nil,
		"event":    model.Event != nil,
		"out":      outpath,
	}).Info("generated")
	return nil
}

func dump(infile string) error {
	model, err := buildModel(infile)
	if err != nil {
		return err
	}

	for _, m := range model.Messages {
		fmt.Println(m.ID)
		for _, f := range fieldsByNumber(m) {
			fmt.Printf("  %v = %v\n", f.name, f.number)
		}
	}
	dumpCommand(model.Command)
	dumpCommand(model.Event)
	return nil
}

func dumpCommand(cmd *protodispatch.Command) {
	if cmd == nil {
		return
	}
	fmt.Println(cmd.CommandID)
	fmt.Println(cmd.ServiceID)
	for _, c := range cmd.OneOf {
		fmt.Printf("  %v: %v = %v\n", c.ID, c.Type, c.Number)
	}
}

type dumpField struct {
	name   string
	number string
}

func fieldsByNumber(m protodispatch.Message) []dumpField {
	fields := make([]dumpField, 0, len(m.Fields))
	for name, number := range m.Fields {
		fields = append(fields, dumpField{name: name, number: number})
	}
	sort.Slice(fields, func(i, j int) bool {
		ni, _ := strconv.Atoi(fields[i].number)
		nj, _ := strconv.Atoi(fields[j].number)
		return ni < nj
	})
	return fields
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.WithError(err).Fatal("command failed")
	}
}
