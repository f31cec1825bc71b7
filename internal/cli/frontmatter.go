package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aaqilk/forge/internal/dates"
	"github.com/aaqilk/forge/internal/frontmatter"
	"github.com/aaqilk/forge/internal/ui"
	"github.com/aaqilk/forge/internal/vault"
)

var (
	fmWeeklyFlag bool
	fmDateFlag   string
)

var frontmatterCmd = &cobra.Command{
	Use:     "frontmatter",
	Aliases: []string{"fm"},
	Short:   "Read and edit tracked note frontmatter",
	Long: `Daily and weekly notes carry a YAML frontmatter block of tracked
fields (mood, reading hours, prayers). These commands read and edit
that block with validation against the field schema.`,
}

var frontmatterSetCmd = &cobra.Command{
	Use:   "set <field=value>...",
	Short: "Set frontmatter fields on a dated note",
	Long: `Sets one or more frontmatter fields on a daily or weekly note,
creating the note if needed. Values are validated against the field
schema; fields outside the schema are stored as given.

Examples:
  forge frontmatter set morning_mood=7
  forge frontmatter set prayers=5 fajr_sunnah=true -d @yesterday
  forge frontmatter set overall_mood=8 --weekly`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := frontmatterKind()

		updates := make(map[string]any, len(args))
		names := make([]string, 0, len(args))
		for _, arg := range args {
			parts := strings.SplitN(arg, "=", 2)
			if len(parts) != 2 || parts[0] == "" {
				return handleErrorMsg(ErrInvalidInput,
					fmt.Sprintf("invalid field format: %s", arg),
					"Use format: field=value")
			}
			name, raw := parts[0], parts[1]

			if field, known := frontmatter.Lookup(kind, name); known {
				value, err := frontmatter.ParseValue(field, raw)
				if err != nil {
					return handleError(ErrInvalidInput, err,
						fmt.Sprintf("Run 'forge frontmatter fields %s' for the schema", noteKindLabel(kind)))
				}
				updates[name] = value
			} else {
				updates[name] = frontmatter.LooseValue(raw)
			}
			names = append(names, name)
		}

		np, err := resolveFrontmatterNote(kind)
		if err != nil {
			return handleError(ErrInvalidRef, err,
				"Use @YYYY-MM-DD, @MM-DD, @DD, @YYYY-Www or a keyword like @today")
		}
		if err := vault.Ensure(np); err != nil {
			return handleError(ErrVaultWrite, err, "")
		}
		if err := frontmatter.UpdateFile(np.Path, updates); err != nil {
			return handleError(ErrVaultWrite, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"note":   np.Key,
				"path":   np.Path,
				"fields": updates,
			}, &Meta{Count: len(updates)})
			return nil
		}
		fmt.Println(ui.Successf("%s: set %s", np.Key, strings.Join(names, ", ")))
		return nil
	},
}

var frontmatterGetCmd = &cobra.Command{
	Use:   "get [field]",
	Short: "Print frontmatter fields of a dated note",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := frontmatterKind()
		np, err := resolveFrontmatterNote(kind)
		if err != nil {
			return handleError(ErrInvalidRef, err,
				"Use @YYYY-MM-DD, @MM-DD, @DD, @YYYY-Www or a keyword like @today")
		}

		content, err := os.ReadFile(np.Path)
		if err != nil {
			if os.IsNotExist(err) {
				return handleErrorMsg(ErrNoteNotFound,
					fmt.Sprintf("note %s does not exist", np.Key),
					fmt.Sprintf("Run 'forge %s' to create it", noteKindLabel(kind)))
			}
			return handleError(ErrInternal, err, "")
		}

		fields, _, _ := frontmatter.Parse(string(content))

		if len(args) == 1 {
			value, ok := fields[args[0]]
			if !ok {
				return handleErrorMsg(ErrFieldNotFound,
					fmt.Sprintf("field %s is not set on %s", args[0], np.Key), "")
			}
			if isJSONOutput() {
				outputSuccess(map[string]interface{}{"note": np.Key, args[0]: value}, nil)
				return nil
			}
			fmt.Println(formatFieldValue(value))
			return nil
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"note": np.Key, "fields": fields}, &Meta{Count: len(fields)})
			return nil
		}

		fmt.Println(ui.Header(np.Key))
		printed := make(map[string]bool, len(fields))
		for _, section := range frontmatter.Sections(kind) {
			for _, f := range section.Fields {
				if value, ok := fields[f.Name]; ok {
					fmt.Printf("%s: %s\n", f.Name, formatFieldValue(value))
					printed[f.Name] = true
				}
			}
		}
		extras := make([]string, 0, len(fields))
		for name := range fields {
			if !printed[name] {
				extras = append(extras, name)
			}
		}
		sort.Strings(extras)
		for _, name := range extras {
			fmt.Printf("%s: %s\n", name, formatFieldValue(fields[name]))
		}
		return nil
	},
}

var frontmatterFieldsCmd = &cobra.Command{
	Use:   "fields [daily|weekly]",
	Short: "List the tracked field schema",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := frontmatterKind()
		if len(args) == 1 {
			switch args[0] {
			case "daily":
				kind = dates.Day
			case "weekly":
				kind = dates.Week
			default:
				return handleErrorMsg(ErrInvalidInput,
					fmt.Sprintf("unknown note kind: %s", args[0]), "Use daily or weekly")
			}
		}

		if isJSONOutput() {
			type fieldInfo struct {
				Name    string  `json:"name"`
				Type    string  `json:"type"`
				Min     float64 `json:"min"`
				Max     float64 `json:"max"`
				Section string  `json:"section"`
			}
			schema := frontmatter.Schema(kind)
			out := make([]fieldInfo, len(schema))
			for i, f := range schema {
				out[i] = fieldInfo{Name: f.Name, Type: f.Type.String(), Min: f.Min, Max: f.Max, Section: f.Section}
			}
			outputSuccess(out, &Meta{Count: len(out)})
			return nil
		}

		for _, section := range frontmatter.Sections(kind) {
			fmt.Println(ui.Header(section.Name))
			table := ui.NewTable(2)
			for _, f := range section.Fields {
				table.AddRow(f.Name, fieldTypeLabel(f))
			}
			fmt.Print(table.String())
		}
		return nil
	},
}

func frontmatterKind() dates.Kind {
	if fmWeeklyFlag {
		return dates.Week
	}
	return dates.Day
}

func resolveFrontmatterNote(kind dates.Kind) (vault.NotePath, error) {
	ref, err := dates.ParseArg(fmDateFlag, time.Now())
	if err != nil {
		return vault.NotePath{}, err
	}
	return vault.Resolve(getVaultPath(), ref, kind, getVaultConfig().Layout()), nil
}

func formatFieldValue(value any) string {
	return fmt.Sprintf("%v", value)
}

func fieldTypeLabel(f frontmatter.Field) string {
	if f.Type == frontmatter.Bool {
		return "bool"
	}
	return fmt.Sprintf("%s %s-%s", f.Type, formatRange(f.Min), formatRange(f.Max))
}

func formatRange(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

func init() {
	frontmatterCmd.PersistentFlags().BoolVarP(&fmWeeklyFlag, "weekly", "w", false, "Target the weekly note")
	frontmatterCmd.PersistentFlags().StringVarP(&fmDateFlag, "date", "d", "", "Target note date (@token)")
	frontmatterCmd.AddCommand(frontmatterSetCmd)
	frontmatterCmd.AddCommand(frontmatterGetCmd)
	frontmatterCmd.AddCommand(frontmatterFieldsCmd)
	rootCmd.AddCommand(frontmatterCmd)
}
