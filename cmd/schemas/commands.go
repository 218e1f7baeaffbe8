package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoregistry"
	"gopkg.in/yaml.v3"

	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/entities"
	"github.com/light-bringer/dealmarket-service/internal/pkg/schema"
)

const (
	descriptorPath    = "dealmarket/v1/variants.proto"
	descriptorPackage = "dealmarket.v1"
)

// Output formats.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

var errInvalidPayload = errors.New("payload rejected")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "schemas",
		Short:        "Inspect marketplace schema variants",
		SilenceUsage: true,
	}
	root.AddCommand(newListCmd(), newShowCmd(), newValidateCmd(), newDescriptorCmd())
	return root
}

func newListCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every variant and its fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			variants := entities.Variants()
			summaries := make([]schema.Summary, len(variants))
			for i, s := range variants {
				summaries[i] = s.Summary()
			}

			out := cmd.OutOrStdout()
			if format != formatTable {
				return encode(out, format, summaries)
			}

			t := newTable(out)
			t.AppendHeader(table.Row{"Variant", "Entity", "Fields"})
			for _, s := range variants {
				t.AppendRow(table.Row{s.Name(), s.Entity().Name(), strings.Join(s.FieldNames(), ", ")})
			}
			t.Render()
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "o", formatTable, "output format: table, json or yaml")
	return cmd
}

func newShowCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show <variant>",
		Short: "Show the fields and constraints of one variant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := entities.Variant(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format != formatTable {
				return encode(out, format, s.Summary())
			}

			t := newTable(out)
			t.SetTitle(s.Name())
			t.AppendHeader(table.Row{"Field", "Kind", "Max", "Required", "Unique", "Nullable", "Read-only", "Default"})
			for _, f := range s.Summary().Fields {
				t.AppendRow(table.Row{
					f.Name, kindLabel(f), lengthLabel(f.MaxLength),
					mark(f.Required), mark(f.Unique), mark(f.Nullable), mark(f.ReadOnly), f.Default,
				})
			}
			t.Render()
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "o", formatTable, "output format: table, json or yaml")
	return cmd
}

func newValidateCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "validate <variant>",
		Short: "Validate a JSON object against a variant",
		Long:  "Reads a JSON object from --file (or stdin) and reports every field that violates the variant.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := entities.Variant(args[0])
			if err != nil {
				return err
			}

			in := cmd.InOrStdin()
			if file != "" && file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			dec := json.NewDecoder(in)
			dec.UseNumber()
			var payload map[string]any
			if err := dec.Decode(&payload); err != nil {
				return fmt.Errorf("failed to decode payload: %w", err)
			}

			out := cmd.OutOrStdout()
			var verr *schema.ValidationError
			if err := s.Validate(payload); errors.As(err, &verr) {
				t := newTable(out)
				t.AppendHeader(table.Row{"Field", "Problem"})
				for _, fe := range verr.Errors {
					t.AppendRow(table.Row{fe.Field, strings.TrimPrefix(fe.Error(), fe.Field+": ")})
				}
				t.Render()
				return fmt.Errorf("%w: %d field(s) invalid for %s", errInvalidPayload, len(verr.Errors), s.Name())
			} else if err != nil {
				return err
			}

			fmt.Fprintf(out, "valid %s payload\n", s.Name())
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "JSON file to read, - for stdin")
	return cmd
}

func newDescriptorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "descriptor",
		Short: "Print every variant as a protobuf file descriptor (protojson)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fdp := schema.FileDescriptor(descriptorPath, descriptorPackage, entities.Variants()...)

			// Resolve it to catch descriptors protoc would reject.
			if _, err := protodesc.NewFile(fdp, protoregistry.GlobalFiles); err != nil {
				return fmt.Errorf("invalid descriptor: %w", err)
			}

			body, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(fdp)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(body))
			return err
		},
	}
}

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	return t
}

func encode(out io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func kindLabel(f schema.FieldSummary) string {
	switch {
	case f.Kind == "decimal":
		return fmt.Sprintf("decimal(%d,%d)", f.Digits, f.Places)
	case f.References != "":
		return "→ " + f.References
	case len(f.Enum) > 0:
		return fmt.Sprintf("enum[%d]", len(f.Enum))
	}
	return f.Kind
}

func lengthLabel(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func mark(b bool) string {
	if b {
		return "✓"
	}
	return ""
}
