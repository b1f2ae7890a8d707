package cmd

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-sessions/internal/entity"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the stored session list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			schema, err := sessionsSchema()
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(schema))

			return err
		},
	}
}

func sessionsSchema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
		Mapper:                    boardSchema,
	}

	schema := reflector.Reflect([]*entity.Session{})

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("could not encode schema: %w", err)
	}

	return data, nil
}

// boardSchema - boards hold "X", "O" or null per cell.
func boardSchema(t reflect.Type) *jsonschema.Schema {
	if t != reflect.TypeFor[entity.Board]() {
		return nil
	}

	return &jsonschema.Schema{
		Type: "array",
		Items: &jsonschema.Schema{
			AnyOf: []*jsonschema.Schema{
				{Type: "null"},
				{Type: "string", Enum: []any{entity.PlayerX, entity.PlayerO}},
			},
		},
	}
}
