package resource

import (
	"fmt"

	"github.com/jmrodas/parkings-api/models"
)

// FieldError describes a single validation failure on one field.
type FieldError struct {
	Campo   string `json:"campo"`
	Mensaje string `json:"mensaje"`
}

// Validate checks row against the descriptor and returns the cleaned row
// alongside any field errors. Unknown columns and the primary key are dropped
// silently. When partial is true (updates), required fields may be absent;
// fields that ARE present are still type-checked.
//
// JSON numbers arrive as float64; whole floats destined for int fields are
// converted to int64.
func Validate(d Descriptor, row models.Row, partial bool) (models.Row, []FieldError) {
	cleaned := make(models.Row, len(row))
	var errs []FieldError

	for name, value := range row {
		field, ok := d.Field(name)
		if !ok {
			// Unknown columns and "id" are not writable.
			continue
		}

		converted, err := checkType(field, value)
		if err != nil {
			errs = append(errs, FieldError{Campo: name, Mensaje: err.Error()})
			continue
		}
		cleaned[name] = converted
	}

	if !partial {
		for _, field := range d.Fields {
			if !field.Required {
				continue
			}
			if v, ok := cleaned[field.Name]; !ok || isEmpty(v) {
				errs = append(errs, FieldError{Campo: field.Name, Mensaje: "es requerido"})
			}
		}
	}

	return cleaned, errs
}

func checkType(field Field, value any) (any, error) {
	if value == nil {
		return nil, nil
	}

	switch field.Type {
	case TypeString:
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("debe ser una cadena")
		}
		return s, nil
	case TypeInt:
		switch v := value.(type) {
		case float64:
			if v != float64(int64(v)) {
				return nil, fmt.Errorf("debe ser un número entero")
			}
			return int64(v), nil
		case int64:
			return v, nil
		case int:
			return int64(v), nil
		default:
			return nil, fmt.Errorf("debe ser un número entero")
		}
	case TypeFloat:
		switch v := value.(type) {
		case float64:
			return v, nil
		case int64:
			return float64(v), nil
		case int:
			return float64(v), nil
		default:
			return nil, fmt.Errorf("debe ser un número")
		}
	case TypeBool:
		b, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("debe ser booleano")
		}
		return b, nil
	}

	return value, nil
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return s == ""
	}

	return false
}
