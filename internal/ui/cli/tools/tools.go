package tools

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mredig/fingerstring-mcp/internal/tool"
	"github.com/mredig/fingerstring-mcp/internal/tools"
)

var outputSchemaFlag bool

var ToolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Display the tools this server publishes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Specs never touch the store until called, so none is opened here.
		registry := tool.NewRegistry(nil)
		if err := registry.Register(tools.All(nil)...); err != nil {
			return err
		}

		out := make(map[string]toolInfo)
		for _, def := range registry.Definitions() {
			info, err := describe(def, outputSchemaFlag)
			if err != nil {
				return err
			}
			out[def.Name] = info
		}

		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("failed to print tools: %w", err)
		}
		return enc.Close()
	},
}

type toolInfo struct {
	Description  string         `yaml:"description"`
	Annotations  []string       `yaml:"annotations,omitempty"`
	InputSchema  map[string]any `yaml:"inputSchema"`
	OutputSchema map[string]any `yaml:"outputSchema,omitempty"`
}

func describe(def tool.Definition, withOutput bool) (toolInfo, error) {
	info := toolInfo{
		Description: def.Description,
		InputSchema: def.InputSchema,
	}
	if def.Annotations.ReadOnly {
		info.Annotations = append(info.Annotations, "readOnly")
	}
	if def.Annotations.Destructive {
		info.Annotations = append(info.Annotations, "destructive")
	}
	if def.Annotations.Idempotent {
		info.Annotations = append(info.Annotations, "idempotent")
	}

	if withOutput && def.OutputType != nil {
		schema, err := outputSchema(def.OutputType)
		if err != nil {
			return toolInfo{}, fmt.Errorf("failed to describe output of %s: %w", def.Name, err)
		}
		info.OutputSchema = schema
	}
	return info, nil
}

func outputSchema(v any) (map[string]any, error) {
	r := &jsonschema.Reflector{
		DoNotReference: true,
		Anonymous:      true,
	}
	schema := r.Reflect(v)
	schema.Version = ""

	data, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func init() {
	ToolsCmd.Flags().BoolVar(&outputSchemaFlag, "output-schema", false, "Include the JSON schema of each tool's output")
}
