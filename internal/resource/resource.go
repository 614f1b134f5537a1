// Package resource defines the table-driven schema registry that drives the
// generic CRUD engine. Each Descriptor declares a resource's columns, typing
// and validation rules; the store, service and handler layers consult the
// registry instead of hard-coding per-table logic.
package resource

// FieldType enumerates the column types the validation layer understands.
type FieldType string

const (
	TypeString FieldType = "string"
	TypeInt    FieldType = "int"
	TypeFloat  FieldType = "float"
	TypeBool   FieldType = "bool"
)

// Transform enumerates write-time transformations applied to a field value
// before it reaches the database.
type Transform string

const (
	// TransformNone stores the value as provided.
	TransformNone Transform = ""
	// TransformPasswordHash replaces the plaintext value with a bcrypt hash.
	TransformPasswordHash Transform = "password_hash"
)

// Field describes a single column of a resource.
type Field struct {
	// Name is the column name as it appears in both the database and the
	// JSON payloads.
	Name string
	// Type constrains the values accepted for this field.
	Type FieldType
	// Required makes the field mandatory on create.
	Required bool
	// Transform is applied to the value before persisting.
	Transform Transform
	// Hidden excludes the field from all responses.
	Hidden bool
}

// Descriptor declares a resource exposed by the API: its table name, columns
// and default text-search columns.
type Descriptor struct {
	// Name is the resource (and table) name used in URLs and queries.
	Name string
	// Fields lists every writable column. The primary key "id" is implicit
	// and never writable.
	Fields []Field
	// SearchFields are the columns searched when a request does not name any.
	SearchFields []string
}

// Field returns the descriptor's field with the given name.
func (d Descriptor) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}

	return Field{}, false
}

// Columns returns the names of all declared fields.
func (d Descriptor) Columns() []string {
	cols := make([]string, 0, len(d.Fields))
	for _, f := range d.Fields {
		cols = append(cols, f.Name)
	}

	return cols
}

// HasColumn reports whether name is a declared field or the primary key.
func (d Descriptor) HasColumn(name string) bool {
	if name == "id" {
		return true
	}
	_, ok := d.Field(name)

	return ok
}

// SearchDefaults returns the columns to search when the caller names none.
func (d Descriptor) SearchDefaults() []string {
	if len(d.SearchFields) > 0 {
		return d.SearchFields
	}

	return []string{"nombre"}
}

// Registry holds the descriptors of all exposed resources, preserving
// registration order.
type Registry struct {
	byName map[string]Descriptor
	order  []string
}

// NewRegistry builds a Registry from the given descriptors.
func NewRegistry(descriptors ...Descriptor) *Registry {
	r := &Registry{byName: make(map[string]Descriptor, len(descriptors))}
	for _, d := range descriptors {
		r.byName[d.Name] = d
		r.order = append(r.order, d.Name)
	}

	return r
}

// Lookup returns the descriptor registered under name.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	d, ok := r.byName[name]

	return d, ok
}

// Names returns the registered resource names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)

	return names
}

// Defaults returns the registry of resources served by the application.
func Defaults() *Registry {
	return NewRegistry(
		Descriptor{
			Name: "parkings",
			Fields: []Field{
				{Name: "nombre", Type: TypeString, Required: true},
				{Name: "direccion", Type: TypeString, Required: true},
				{Name: "capacidad_total", Type: TypeInt, Required: true},
				{Name: "plazas_ocupadas", Type: TypeInt},
				{Name: "activo", Type: TypeBool},
			},
			SearchFields: []string{"nombre", "direccion"},
		},
		Descriptor{
			Name: "carteles",
			Fields: []Field{
				{Name: "nombre", Type: TypeString, Required: true},
				{Name: "ubicacion", Type: TypeString, Required: true},
				{Name: "tipo", Type: TypeString},
				{Name: "parking_id", Type: TypeInt},
				{Name: "activo", Type: TypeBool},
			},
			SearchFields: []string{"nombre", "ubicacion"},
		},
		Descriptor{
			Name: "usuarios",
			Fields: []Field{
				{Name: "nombre", Type: TypeString, Required: true},
				{Name: "usuario", Type: TypeString, Required: true},
				{Name: "password", Type: TypeString, Required: true, Transform: TransformPasswordHash, Hidden: true},
				{Name: "email", Type: TypeString},
				{Name: "rol", Type: TypeString},
			},
			SearchFields: []string{"nombre", "usuario", "email"},
		},
	)
}
