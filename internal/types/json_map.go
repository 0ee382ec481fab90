package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// JSONMap is a free-form JSON object stored in a single column.
type JSONMap map[string]any

// MarshalJSON renders a nil map as an empty object.
func (m JSONMap) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}

	return json.Marshal(map[string]any(m))
}

// Scan writes the value from the database.
func (m *JSONMap) Scan(value any) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*m = JSONMap{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into a JSON object", value)
	}

	if len(data) == 0 {
		*m = JSONMap{}
		return nil
	}

	result := JSONMap{}
	if err := json.Unmarshal(data, &result); err != nil {
		return err
	}

	*m = result
	return nil
}

// Value returns the value for the SQL driver to write to the database.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}

	b, err := json.Marshal(map[string]any(m))
	if err != nil {
		return nil, err
	}

	return string(b), nil
}

// GormDataType defines the data type used by gorm the type.
func (JSONMap) GormDataType() string {
	return "json"
}

// GormDBDataType picks the column type per dialect.
func (JSONMap) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "JSONB"
	}

	return "JSON"
}
