package cmd

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-tagstore/pkg/service"
	"github.com/mattsolo1/grove-tagstore/pkg/settings"
	"github.com/mattsolo1/grove-tagstore/pkg/tag"
	"github.com/mattsolo1/grove-tagstore/pkg/transport"
	"github.com/mattsolo1/grove-tagstore/pkg/value"
)

var settingsLog = logrus.WithField("component", "tagstore.cmd.settings")

const previewWidth = 60

func NewGetCmd(svc **service.Service) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "get <tag>",
		Short: "Print the value stored under a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			t := tag.Generate(args[0])

			v, err := settings.Lookup[value.Value](s.LoadSettings(), t)
			if errors.Is(err, settings.ErrNotFound) {
				return fmt.Errorf("no value stored under %q", t.Name())
			}
			if err != nil {
				return err
			}
			return printValue(cmd, v, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the value as JSON")

	return cmd
}

func NewSetCmd(svc **service.Service) *cobra.Command {
	var rawString bool

	cmd := &cobra.Command{
		Use:   "set <tag> <value>",
		Short: "Store a value under a tag",
		Long: `Store a value under a tag. The value is parsed as JSON unless --string is given.

Examples:
  tagstore set Level 4
  tagstore set Speed 1.5
  tagstore set Schools '["fire", "ice"]'
  tagstore set Title --string "Fire Mage"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			t := tag.Generate(args[0])

			v, err := parseValue(args[1], rawString)
			if err != nil {
				return err
			}
			if err := s.SetSetting(t, v); err != nil {
				return err
			}
			settingsLog.WithFields(logrus.Fields{"tag": t.Name(), "kind": v.Kind()}).Debug("stored value")
			return nil
		},
	}

	cmd.Flags().BoolVar(&rawString, "string", false, "Store the argument as a string without parsing")

	return cmd
}

func NewListCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List every stored tag",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc := (*svc).LoadSettings()
			if doc.Len() == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No settings stored")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TAG\tKIND\tVALUE")
			for _, t := range doc.Tags() {
				v, _ := doc.Value(t)
				fmt.Fprintf(w, "%s\t%s\t%s\n", t.Name(), v.Kind(), preview(v.String()))
			}
			return w.Flush()
		},
	}

	return cmd
}

func NewShowCmd(svc **service.Service) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the whole settings document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := transport.ParseFormat(format)
			if err != nil {
				return err
			}
			return (*svc).LoadSettings().Write(cmd.OutOrStdout(), f)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format (json, yaml)")

	return cmd
}

func NewEvalCmd(svc **service.Service) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "eval <expression>",
		Short: "Evaluate an expression against the settings",
		Long: `Evaluate an expression against the settings. Every tag is available by
name; tags whose names are not identifiers can be read through tags["name"].

Examples:
  tagstore eval 'Level * 2'
  tagstore eval '"ice" in Schools'
  tagstore eval 'tags["Max Health"] > 100'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := (*svc).Evaluate(args[0])
			if err != nil {
				return err
			}
			return printValue(cmd, v, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result as JSON")

	return cmd
}

func NewConvertCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <src-key> <dst-key>",
		Short: "Re-encode a settings document in another format",
		Long: `Re-encode a settings document. The output format follows the destination
key's extension (.yaml/.yml for YAML, anything else for JSON).`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (*svc).Convert(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Converted %s -> %s\n", args[0], args[1])
			return nil
		},
	}

	return cmd
}

func parseValue(arg string, rawString bool) (value.Value, error) {
	if rawString {
		return value.String(arg), nil
	}
	if strings.TrimSpace(arg) == "" {
		return value.Value{}, fmt.Errorf("empty value; use --string to store an empty string")
	}
	e, err := transport.ParseJSON(strings.NewReader(arg))
	if err != nil {
		return value.Value{}, fmt.Errorf("parse value (use --string for plain text): %w", err)
	}
	return value.Decode(e), nil
}

func printValue(cmd *cobra.Command, v value.Value, jsonOutput bool) error {
	if jsonOutput {
		return transport.WriteJSON(cmd.OutOrStdout(), value.Encode(v))
	}
	fmt.Fprintln(cmd.OutOrStdout(), v.String())
	return nil
}

func preview(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if utf8.RuneCountInString(s) <= previewWidth {
		return s
	}
	runes := []rune(s)
	return string(runes[:previewWidth-3]) + "..."
}

func NewDocumentsCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "documents",
		Short: "List stored documents and their revisions",
		Long: `List stored documents. The sqlite backend records a revision id on every
save; the fs backend shows "-" instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := (*svc).Documents()
			if err != nil {
				return err
			}
			if len(docs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No documents stored")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tREVISION")
			for _, d := range docs {
				revision := d.Revision
				if revision == "" {
					revision = "-"
				}
				fmt.Fprintf(w, "%s\t%s\n", d.Key, revision)
			}
			return w.Flush()
		},
	}

	return cmd
}
